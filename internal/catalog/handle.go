package catalog

import (
	"errors"
	"sync/atomic"
)

// ErrNotReady is returned by operations that need a populated catalog
// before one has been loaded.
var ErrNotReady = errors.New("catalog not ready: no types loaded")

var empty = New()

// Handle publishes a Catalog to concurrent readers. Readers take a
// snapshot with Load and keep using it for the whole operation; a reload
// swaps in a new catalog without disturbing snapshots already taken.
type Handle struct {
	current atomic.Pointer[Catalog]
}

// NewHandle returns a handle holding c, or an empty catalog when c is nil.
func NewHandle(c *Catalog) *Handle {
	h := &Handle{}
	h.Store(c)
	return h
}

// Load returns the current catalog. It never returns nil.
func (h *Handle) Load() *Catalog {
	if c := h.current.Load(); c != nil {
		return c
	}
	return empty
}

// Store replaces the current catalog.
func (h *Handle) Store(c *Catalog) {
	if c == nil {
		c = empty
	}
	h.current.Store(c)
}

// Ready reports whether the current catalog holds at least one type.
func (h *Handle) Ready() bool {
	return h.Load().Len() > 0
}

// Snapshot returns the current catalog, or ErrNotReady if it is empty.
func (h *Handle) Snapshot() (*Catalog, error) {
	c := h.Load()
	if c.Len() == 0 {
		return nil, ErrNotReady
	}
	return c, nil
}
