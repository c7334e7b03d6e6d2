// Package lint validates configuration files against a type catalog.
//
// Line-level checks look at one file on its own, without following
// includes. Instance-level checks assemble the whole configuration so that
// assignments made in included files count, but only report instances
// whose last section header lives in the checked file.
package lint

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/pipeconf/internal/catalog"
	"github.com/vk/pipeconf/internal/ctxlog"
	"github.com/vk/pipeconf/internal/document"
	"github.com/vk/pipeconf/internal/graph"
	"github.com/vk/pipeconf/internal/model"
	"github.com/vk/pipeconf/internal/parser"
	"github.com/vk/pipeconf/internal/resolver"
	"github.com/vk/pipeconf/internal/syntax"
	"github.com/vk/pipeconf/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Checker runs every rule against documents.
type Checker struct {
	cat    *catalog.Catalog
	loader document.Loader
	walker *parser.Walker
	graph  graph.Options
}

// NewChecker creates a Checker. graphOpts controls how components are
// classified for the dataflow cycle check; collapsing is always applied.
func NewChecker(cat *catalog.Catalog, loader document.Loader, graphOpts graph.Options) *Checker {
	graphOpts.Collapse = true
	return &Checker{
		cat:    cat,
		loader: loader,
		walker: parser.NewWalker(loader),
		graph:  graphOpts,
	}
}

// Check validates doc with the default graph options.
func Check(ctx context.Context, doc document.Document, cat *catalog.Catalog, loader document.Loader) ([]Diagnostic, error) {
	return NewChecker(cat, loader, graph.DefaultOptions()).Check(ctx, doc)
}

// Check runs all rules on doc and returns the diagnostics sorted by
// location. The only errors returned come from the context.
func (c *Checker) Check(ctx context.Context, doc document.Document) ([]Diagnostic, error) {
	logger := ctxlog.FromContext(ctx).With("path", doc.Path())

	var diags []Diagnostic
	report := func(d Diagnostic) {
		diags = append(diags, d)
	}

	err := c.walker.Walk(ctx, doc, false, func(d document.Document, tok syntax.Token) {
		switch t := tok.(type) {
		case syntax.SectionHeader:
			c.checkHeader(d, t, report)
		case syntax.FieldAssignment:
			c.checkAssignment(d, t, report)
		case syntax.IncludeDirective:
			c.checkInclude(ctx, d, t, report)
		}
	})
	if err != nil {
		return nil, err
	}

	cfg, err := c.walker.Parse(ctx, doc)
	if err != nil {
		return nil, err
	}
	for _, inst := range cfg.Instances {
		c.checkInstance(doc.Path(), inst, report)
	}
	c.checkDataflow(ctx, doc.Path(), cfg, report)

	Sort(diags)
	logger.Debug("Checked document.",
		"errors", Count(diags, SeverityError),
		"warnings", Count(diags, SeverityWarning),
	)
	return diags, nil
}

func (c *Checker) checkHeader(doc document.Document, h syntax.SectionHeader, report func(Diagnostic)) {
	if _, ok := c.cat.Type(h.TypeName); ok {
		return
	}
	report(Diagnostic{
		Severity: SeverityError,
		Rule:     RuleUnknownType,
		Message:  fmt.Sprintf("Component with name %q does not exist.", h.TypeName),
		Path:     doc.Path(),
		Span:     h.TypeSpan,
	})
}

func (c *Checker) checkAssignment(doc document.Document, a syntax.FieldAssignment, report func(Diagnostic)) {
	h, ok := parser.FindParentSectionHeader(doc, a.Line)
	if !ok {
		return
	}
	field, ok := resolver.ResolveFieldExpression(c.cat, h.TypeName, a.FieldExpr)
	if !ok {
		if _, known := c.cat.Type(h.TypeName); known {
			report(Diagnostic{
				Severity: SeverityError,
				Rule:     RuleUnknownField,
				Message:  fmt.Sprintf("Field with name %q does not exist for component %q.", a.FieldExpr, h.TypeName),
				Path:     doc.Path(),
				Span:     a.FieldSpan,
			})
		}
		return
	}
	if len(field.AllowedValues) == 0 || isAllowed(field, a.Value) {
		return
	}
	report(Diagnostic{
		Severity: SeverityError,
		Rule:     RuleDisallowedValue,
		Message: fmt.Sprintf("%q is not a valid value for field %q of component %q (allowed: %s).",
			a.Value, a.FieldExpr, h.TypeName, joinValues(field.AllowedValues)),
		Path: doc.Path(),
		Span: a.ValueSpan,
	})
}

// isAllowed compares text against the allowed values of f. String and char
// fields compare text; numeric fields compare the parsed number. Fields of
// other types accept anything.
func isAllowed(f *catalog.FieldInfo, text string) bool {
	switch f.Type {
	case value.TypeString, value.TypeChar:
		for _, v := range f.AllowedValues {
			if value.Text(v) == text {
				return true
			}
		}
		return false
	case value.TypeNumeric:
		n, ok := value.ParseScalar(text, value.TypeNumeric)
		if !ok {
			return false
		}
		for _, v := range f.AllowedValues {
			if value.Equal(n, v) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func joinValues(vals []cty.Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = value.Text(v)
	}
	return strings.Join(parts, ", ")
}

func (c *Checker) checkInclude(ctx context.Context, doc document.Document, d syntax.IncludeDirective, report func(Diagnostic)) {
	if d.Target == "" {
		return
	}
	path := document.ResolveIncludePath(doc.Path(), d.Target)
	if c.loader.Exists(ctx, path) {
		return
	}
	report(Diagnostic{
		Severity: SeverityWarning,
		Rule:     RuleMissingInclude,
		Message:  fmt.Sprintf("Included file %q does not exist.", d.Target),
		Path:     doc.Path(),
		Span:     d.TargetSpan,
	})
}

func (c *Checker) checkInstance(path string, inst *model.Instance, report func(Diagnostic)) {
	if len(inst.Headers) == 0 {
		return
	}
	anchor := inst.Headers[len(inst.Headers)-1]
	if anchor.Path() != path {
		return
	}
	if _, ok := c.cat.Type(inst.TypeName); !ok {
		return
	}

	for f := range c.cat.EnumerateFields(inst.TypeName, true) {
		if f.Required {
			if _, assigned := inst.LastAssignment(f.Name); !assigned {
				report(Diagnostic{
					Severity: SeverityError,
					Rule:     RuleRequiredField,
					Message:  fmt.Sprintf("Field %q of %s instance %q is required.", f.Name, inst.TypeName, inst.Name),
					Path:     path,
					Span:     anchor.InstanceSpan,
				})
			}
		}

		if f.RecommendedValue == nil {
			continue
		}
		fv, ok := inst.FieldValue(c.cat, f.Name)
		if !ok || value.Equal(fv.Value, *f.RecommendedValue) {
			continue
		}
		d := Diagnostic{
			Severity: SeverityWarning,
			Rule:     RuleRecommendedValue,
			Message: fmt.Sprintf("Field %q of %s instance %q should be set to %q to disable backward-compatibility behavior.",
				f.Name, inst.TypeName, inst.Name, value.Text(*f.RecommendedValue)),
			Path: path,
			Span: anchor.InstanceSpan,
		}
		if a := fv.Assignment; a != nil {
			d.Path = a.Path()
			d.Span = a.ValueSpan
		}
		report(d)
	}
}

func (c *Checker) checkDataflow(ctx context.Context, path string, cfg *model.Config, report func(Diagnostic)) {
	g := graph.Build(ctx, cfg, c.cat, c.graph)
	cycle := g.DataflowCycle()
	if cycle == nil || len(cycle.Path) == 0 {
		return
	}

	names := make([]string, 0, len(cycle.Path))
	for _, id := range cycle.Path {
		if n, ok := g.Node(id); ok {
			names = append(names, n.Instance)
		}
	}

	d := Diagnostic{
		Severity: SeverityWarning,
		Rule:     RuleDataflowCycle,
		Message:  fmt.Sprintf("Data flows in a cycle: %s.", strings.Join(names, " -> ")),
		Path:     path,
	}
	if n, ok := g.Node(cycle.Path[0]); ok && n.Definition != nil && n.Definition.Path() == path {
		d.Span = n.Definition.InstanceSpan
	}
	report(d)
}
