package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/vk/pipeconf/internal/catalog"
	"github.com/vk/pipeconf/internal/catalog/discover"
	"github.com/vk/pipeconf/internal/ctxlog"
	"github.com/vk/pipeconf/internal/resolver"
)

// ErrNoCatalog is returned when no catalog path is configured.
var ErrNoCatalog = errors.New("no catalog configured: set catalog.path in pipeconf.hcl or pass --catalog")

// LoadCatalog reads the configured catalog file and publishes it. A file
// that fails to read or parse leaves the current catalog in place. A file
// with an unrecognized version publishes an empty catalog.
func (a *App) LoadCatalog(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	path := a.settings.Catalog.Path
	if path == "" {
		return ErrNoCatalog
	}

	cat, err := catalog.LoadFile(ctx, a.fs, path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if cat == nil {
		logger.Warn("Catalog version not recognized, catalog is now empty.", "path", path, "want", catalog.FormatVersion)
	}
	a.catalog.Store(cat)
	logger.Info("Catalog loaded.", "path", path, "types", a.catalog.Load().Len())
	return nil
}

// snapshot returns the current catalog, loading it first if nothing has
// been loaded yet.
func (a *App) snapshot(ctx context.Context) (*catalog.Catalog, error) {
	if !a.catalog.Ready() {
		if err := a.LoadCatalog(ctx); err != nil {
			return nil, err
		}
	}
	return a.catalog.Snapshot()
}

// Resolve resolves a field expression on a type.
func (a *App) Resolve(ctx context.Context, typeName, expr string) (*catalog.FieldInfo, error) {
	if _, err := a.snapshot(ctx); err != nil {
		return nil, err
	}
	field, ok := resolver.New(a.catalog).Resolve(typeName, expr)
	if !ok {
		return nil, fmt.Errorf("field expression %q does not resolve on type %q", expr, typeName)
	}
	return field, nil
}

// Fields lists the fields of a type including inherited ones.
func (a *App) Fields(ctx context.Context, typeName string) ([]*catalog.FieldInfo, error) {
	cat, err := a.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := cat.Type(typeName); !ok {
		return nil, fmt.Errorf("unknown type %q", typeName)
	}
	var out []*catalog.FieldInfo
	for f := range cat.EnumerateFields(typeName, true) {
		out = append(out, f)
	}
	return out, nil
}

// ImportCatalog queries the configured tool and writes the discovered
// catalog to outPath as JSON.
func (a *App) ImportCatalog(ctx context.Context, outPath string) (*catalog.File, error) {
	logger := ctxlog.FromContext(ctx)

	f, err := discover.Discover(ctx, discover.Options{
		Tool:      a.settings.Catalog.Tool,
		BaseTypes: a.settings.Catalog.BaseTypes,
	})
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(outPath); dir != "" {
		if err := a.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	out, err := a.fs.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog file: %w", err)
	}
	defer out.Close()

	if err := catalog.WriteFile(out, f); err != nil {
		return nil, err
	}
	logger.Info("Catalog written.", "path", outPath, "components", len(f.Components), "objects", len(f.Objects))
	return f, nil
}

// WriteCatalog writes the current catalog to w as JSON.
func (a *App) WriteCatalog(ctx context.Context, w io.Writer) error {
	cat, err := a.snapshot(ctx)
	if err != nil {
		return err
	}
	return catalog.WriteJSON(w, cat)
}
