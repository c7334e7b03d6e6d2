// Package document provides line-addressable configuration documents and
// the loader the parser uses to open included files.
package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Document is a read-only sequence of lines with a source path.
type Document interface {
	Path() string
	LineCount() int
	// LineAt returns line n without its terminator. Out-of-range lines are
	// empty.
	LineAt(n int) string
}

// Loader opens documents by path.
type Loader interface {
	Open(ctx context.Context, path string) (Document, error)
	Exists(ctx context.Context, path string) bool
}

type textDocument struct {
	path  string
	lines []string
}

// FromString builds a document from in-memory text. Lines are split on
// "\n" and a trailing "\r" is dropped from each.
func FromString(path, text string) Document {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &textDocument{path: path, lines: lines}
}

func (d *textDocument) Path() string   { return d.path }
func (d *textDocument) LineCount() int { return len(d.lines) }

func (d *textDocument) LineAt(n int) string {
	if n < 0 || n >= len(d.lines) {
		return ""
	}
	return d.lines[n]
}

// FSLoader loads documents from an afero filesystem.
type FSLoader struct {
	fs afero.Fs
}

// NewLoader returns a loader reading from fs.
func NewLoader(fs afero.Fs) *FSLoader {
	return &FSLoader{fs: fs}
}

// NewOSLoader returns a loader reading from the host filesystem.
func NewOSLoader() *FSLoader {
	return NewLoader(afero.NewOsFs())
}

// Fs returns the underlying filesystem.
func (l *FSLoader) Fs() afero.Fs {
	return l.fs
}

// Open reads the whole file at path.
func (l *FSLoader) Open(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("opening document %s: %w", path, err)
	}
	return FromString(path, string(data)), nil
}

// Exists reports whether path names a regular file.
func (l *FSLoader) Exists(_ context.Context, path string) bool {
	info, err := l.fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ResolveIncludePath resolves target relative to the directory of the
// including document. Absolute targets are returned cleaned but otherwise
// unchanged.
func ResolveIncludePath(includingDoc, target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(filepath.Dir(includingDoc), target)
}
