package parser

import (
	"context"
	"slices"

	"github.com/vk/pipeconf/internal/ctxlog"
	"github.com/vk/pipeconf/internal/document"
	"github.com/vk/pipeconf/internal/syntax"
)

// maxIncludeDepth bounds include nesting.
const maxIncludeDepth = 32

// VisitFunc receives each emitted token with the document it came from.
type VisitFunc func(doc document.Document, tok syntax.Token)

// Walker traverses documents using loader to open includes.
type Walker struct {
	loader document.Loader
}

// NewWalker creates a Walker.
func NewWalker(loader document.Loader) *Walker {
	return &Walker{loader: loader}
}

// Walk visits the tokens of doc in order. Lines inside a block comment are
// not visited; the comment's start and end tokens are. Include directives
// are visited, and with descend the included document is walked right
// after its directive.
func (w *Walker) Walk(ctx context.Context, doc document.Document, descend bool, visit VisitFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.walk(ctx, doc, descend, visit, []string{doc.Path()})
}

func (w *Walker) walk(ctx context.Context, doc document.Document, descend bool, visit VisitFunc, stack []string) error {
	inComment := false
	for n := 0; n < doc.LineCount(); n++ {
		tok := syntax.Classify(doc.LineAt(n), n)

		if inComment {
			if _, ok := tok.(syntax.BlockCommentEnd); ok {
				inComment = false
				visit(doc, tok)
			}
			continue
		}

		switch t := tok.(type) {
		case syntax.BlockCommentStart:
			visit(doc, t)
			inComment = !t.SameLineEnd
		case syntax.IncludeDirective:
			visit(doc, t)
			if descend {
				if err := w.include(ctx, doc, t, visit, stack); err != nil {
					return err
				}
			}
		default:
			visit(doc, tok)
		}
	}
	return nil
}

func (w *Walker) include(ctx context.Context, parent document.Document, d syntax.IncludeDirective, visit VisitFunc, stack []string) error {
	logger := ctxlog.FromContext(ctx)
	if d.Target == "" {
		return nil
	}

	path := document.ResolveIncludePath(parent.Path(), d.Target)
	if slices.Contains(stack, path) {
		logger.Debug("Include cycle detected, skipping.", "path", path, "from", parent.Path(), "line", d.Line)
		return nil
	}
	if len(stack) >= maxIncludeDepth {
		logger.Debug("Include nesting too deep, skipping.", "path", path, "depth", len(stack))
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if !w.loader.Exists(ctx, path) {
		logger.Debug("Include target missing, skipping.", "path", path, "from", parent.Path(), "line", d.Line)
		return nil
	}
	child, err := w.loader.Open(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logger.Debug("Include target unreadable, skipping.", "path", path, "error", err)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Debug("Descending into include.", "path", path, "from", parent.Path())
	return w.walk(ctx, child, true, visit, append(slices.Clip(stack), path))
}

// FindParentSectionHeader returns the nearest section header at or above
// atLine in doc, ignoring headers inside block comments. Includes are not
// followed.
func FindParentSectionHeader(doc document.Document, atLine int) (syntax.SectionHeader, bool) {
	var (
		found     syntax.SectionHeader
		ok        bool
		inComment bool
	)
	last := min(atLine, doc.LineCount()-1)
	for n := 0; n <= last; n++ {
		tok := syntax.Classify(doc.LineAt(n), n)
		if inComment {
			if _, end := tok.(syntax.BlockCommentEnd); end {
				inComment = false
			}
			continue
		}
		switch t := tok.(type) {
		case syntax.BlockCommentStart:
			inComment = !t.SameLineEnd
		case syntax.SectionHeader:
			found, ok = t, true
		}
	}
	return found, ok
}
