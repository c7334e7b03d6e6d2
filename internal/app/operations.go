package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/pipeconf/internal/ctxlog"
	"github.com/vk/pipeconf/internal/fsutil"
	"github.com/vk/pipeconf/internal/graph"
	"github.com/vk/pipeconf/internal/graph/export"
	"github.com/vk/pipeconf/internal/layout"
	"github.com/vk/pipeconf/internal/lint"
	"github.com/vk/pipeconf/internal/model"
	"github.com/vk/pipeconf/internal/value"
	"golang.org/x/sync/errgroup"
)

// Parse assembles the configuration rooted at path.
func (a *App) Parse(ctx context.Context, path string) (*model.Config, error) {
	cfg, err := a.walker.ParseFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Graph builds the dependency graph of the configuration rooted at path.
func (a *App) Graph(ctx context.Context, path string, opts graph.Options) (*graph.Graph, error) {
	cat, err := a.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := a.Parse(ctx, path)
	if err != nil {
		return nil, err
	}
	return graph.Build(ctx, cfg, cat, opts), nil
}

// Layout asks the configured layout service to position g.
func (a *App) Layout(ctx context.Context, g *graph.Graph) (*layout.Result, error) {
	s := a.settings.Layout
	if s.URL == "" {
		return nil, errors.New("no layout service configured: set layout.url in pipeconf.hcl or pass --layout-url")
	}
	client := layout.NewClient(layout.Options{
		URL:       s.URL,
		Namespace: s.Namespace,
		Timeout:   s.Timeout,
	})
	return client.Layout(ctx, export.FromGraph(g, a.settings.Graph.RankDir))
}

// CheckReport is the outcome of checking a set of files.
type CheckReport struct {
	Files       []string
	Diagnostics []lint.Diagnostic
}

// Check lints every configuration file under roots. Files are checked
// concurrently, at most check.workers at a time.
func (a *App) Check(ctx context.Context, roots []string) (*CheckReport, error) {
	logger := ctxlog.FromContext(ctx)
	cat, err := a.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	files, err := fsutil.FindAll(a.fs, roots, a.settings.Check.Extensions)
	if err != nil {
		return nil, err
	}
	logger.Debug("Checking files.", "count", len(files), "workers", a.settings.Check.Workers)

	checker := lint.NewChecker(cat, a.loader, a.settings.Graph.Options)
	results := make([][]lint.Diagnostic, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.settings.Check.Workers)
	for i, path := range files {
		g.Go(func() error {
			doc, err := a.loader.Open(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			diags, err := checker.Check(gctx, doc)
			if err != nil {
				return err
			}
			results[i] = diags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &CheckReport{Files: files}
	for _, diags := range results {
		report.Diagnostics = append(report.Diagnostics, diags...)
	}
	lint.Sort(report.Diagnostics)
	logger.Info("Check finished.",
		"files", len(files),
		"errors", lint.Count(report.Diagnostics, lint.SeverityError),
		"warnings", lint.Count(report.Diagnostics, lint.SeverityWarning),
	)
	return report, nil
}

// EffectiveField is the effective value of one field of an instance.
type EffectiveField struct {
	Expr        string
	Text        string
	FromDefault bool
	Coerced     bool
}

// InstanceReport summarizes one assembled instance.
type InstanceReport struct {
	Name      string
	TypeName  string
	KnownType bool
	Headers   int
	Fields    []EffectiveField
}

// Instances parses the configuration rooted at path and reports the
// effective value of every primitive field of each instance, followed by
// any assigned expression the type's own fields do not cover.
func (a *App) Instances(ctx context.Context, path string) ([]InstanceReport, error) {
	cat, err := a.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := a.Parse(ctx, path)
	if err != nil {
		return nil, err
	}

	out := make([]InstanceReport, 0, len(cfg.Instances))
	for _, inst := range cfg.Instances {
		r := InstanceReport{Name: inst.Name, TypeName: inst.TypeName, Headers: len(inst.Headers)}
		_, r.KnownType = cat.Type(inst.TypeName)

		seen := make(map[string]bool)
		add := func(expr string) {
			if seen[expr] {
				return
			}
			seen[expr] = true
			fv, ok := inst.FieldValue(cat, expr)
			if !ok || fv.Value.IsNull() {
				return
			}
			r.Fields = append(r.Fields, EffectiveField{
				Expr:        expr,
				Text:        value.Text(fv.Value),
				FromDefault: fv.FromDefault(),
				Coerced:     fv.Coerced,
			})
		}
		if r.KnownType {
			for f := range cat.EnumerateFields(inst.TypeName, true) {
				if value.IsPrimitive(f.Type) {
					add(f.Name)
				}
			}
		}
		for _, asg := range inst.Assignments {
			add(asg.FieldExpr)
		}
		out = append(out, r)
	}
	return out, nil
}
