package parser

import (
	"context"

	"github.com/vk/pipeconf/internal/ctxlog"
	"github.com/vk/pipeconf/internal/document"
	"github.com/vk/pipeconf/internal/model"
	"github.com/vk/pipeconf/internal/syntax"
)

// Parse walks doc with its includes and groups the tokens into instances.
//
// A section header opens its instance, creating it on first sight with the
// header's type. Field assignments attach to the most recently opened
// instance; assignments before any header are dropped.
func (w *Walker) Parse(ctx context.Context, doc document.Document) (*model.Config, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := model.NewConfig(doc.Path())

	var (
		current *model.Instance
		orphans int
	)
	files := make(map[string]*model.FSInfo)
	fsFor := func(path string) *model.FSInfo {
		if fs, ok := files[path]; ok {
			return fs
		}
		fs := model.NewFSInfo(path)
		files[path] = fs
		return fs
	}

	err := w.Walk(ctx, doc, true, func(d document.Document, tok syntax.Token) {
		switch t := tok.(type) {
		case syntax.SectionHeader:
			current = cfg.Open(&model.SectionHeader{SectionHeader: t, FS: fsFor(d.Path())})
		case syntax.FieldAssignment:
			if current == nil {
				orphans++
				return
			}
			current.Assignments = append(current.Assignments, &model.FieldAssignment{FieldAssignment: t, FS: fsFor(d.Path())})
		}
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Parsed configuration.",
		"path", doc.Path(),
		"instances", len(cfg.Instances),
		"files", len(files),
		"orphanAssignments", orphans,
	)
	return cfg, nil
}

// ParseFile opens path with the walker's loader and parses it.
func (w *Walker) ParseFile(ctx context.Context, path string) (*model.Config, error) {
	doc, err := w.loader.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return w.Parse(ctx, doc)
}

// Open opens path with the walker's loader.
func (w *Walker) Open(ctx context.Context, path string) (document.Document, error) {
	return w.loader.Open(ctx, path)
}
