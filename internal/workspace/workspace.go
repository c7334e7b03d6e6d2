// Package workspace loads project settings from an optional `pipeconf.hcl`
// file. Settings start from Default and each block present in the file
// overrides the attributes it sets.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/vk/pipeconf/internal/ctxlog"
	"github.com/vk/pipeconf/internal/graph"
	"github.com/vk/pipeconf/internal/layout"
)

// FileName is the workspace file looked up by Discover.
const FileName = "pipeconf.hcl"

// Settings is the resolved workspace configuration.
type Settings struct {
	// Source is the file the settings came from, or "" for defaults.
	Source string

	Catalog CatalogSettings
	Graph   GraphSettings
	Layout  LayoutSettings
	Check   CheckSettings
}

type CatalogSettings struct {
	Path      string
	Tool      string
	BaseTypes map[string]string
}

type GraphSettings struct {
	Options graph.Options
	RankDir string
}

type LayoutSettings struct {
	URL       string
	Namespace string
	Timeout   time.Duration
}

type CheckSettings struct {
	Extensions []string
	Workers    int
}

// Default returns the settings used when no workspace file exists.
func Default() *Settings {
	return &Settings{
		Catalog: CatalogSettings{
			Tool:      "SMILExtract",
			BaseTypes: map[string]string{},
		},
		Graph: GraphSettings{
			Options: graph.DefaultOptions(),
			RankDir: "LR",
		},
		Layout: LayoutSettings{
			Namespace: "/",
			Timeout:   layout.DefaultTimeout,
		},
		Check: CheckSettings{
			Extensions: []string{".conf", ".inc"},
			Workers:    4,
		},
	}
}

// Parse decodes workspace source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Settings, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse workspace file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode workspace file %s: %w", filename, diags)
	}

	s := Default()
	s.Source = filename
	if err := s.apply(&root); err != nil {
		return nil, fmt.Errorf("invalid workspace file %s: %w", filename, err)
	}
	return s, nil
}

func (s *Settings) apply(root *fileRoot) error {
	if b := root.Catalog; b != nil {
		setIf(&s.Catalog.Path, b.Path)
		setIf(&s.Catalog.Tool, b.Tool)
		for k, v := range b.BaseTypes {
			s.Catalog.BaseTypes[k] = v
		}
	}

	if b := root.Graph; b != nil {
		setIf(&s.Graph.Options.SkipTypes, b.SkipTypes)
		setIf(&s.Graph.Options.Roles, b.Roles)
		setIf(&s.Graph.Options.DefaultRole, b.DefaultRole)
		setIf(&s.Graph.Options.Collapse, b.Collapse)
		setIf(&s.Graph.RankDir, b.RankDir)
		s.Graph.RankDir = strings.ToUpper(s.Graph.RankDir)
		if !slices.Contains([]string{"TB", "BT", "LR", "RL"}, s.Graph.RankDir) {
			return fmt.Errorf("graph.rankdir must be one of TB, BT, LR, RL, got %q", s.Graph.RankDir)
		}
	}

	if b := root.Layout; b != nil {
		setIf(&s.Layout.URL, b.URL)
		setIf(&s.Layout.Namespace, b.Namespace)
		if b.Timeout != nil {
			d, err := time.ParseDuration(*b.Timeout)
			if err != nil {
				return fmt.Errorf("layout.timeout: %w", err)
			}
			if d <= 0 {
				return fmt.Errorf("layout.timeout must be positive, got %s", d)
			}
			s.Layout.Timeout = d
		}
	}

	if b := root.Check; b != nil {
		setIf(&s.Check.Extensions, b.Extensions)
		setIf(&s.Check.Workers, b.Workers)
		if s.Check.Workers < 1 {
			return fmt.Errorf("check.workers must be at least 1, got %d", s.Check.Workers)
		}
		for _, ext := range s.Check.Extensions {
			if !strings.HasPrefix(ext, ".") {
				return fmt.Errorf("check.extensions entry %q must start with a dot", ext)
			}
		}
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Load reads and decodes the workspace file at path. A relative catalog
// path is resolved against the directory of the workspace file.
func Load(ctx context.Context, fsys afero.Fs, path string) (*Settings, error) {
	logger := ctxlog.FromContext(ctx)

	src, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace file: %w", err)
	}
	s, err := Parse(src, path)
	if err != nil {
		return nil, err
	}
	if s.Catalog.Path != "" && !filepath.IsAbs(s.Catalog.Path) {
		s.Catalog.Path = filepath.Join(filepath.Dir(path), s.Catalog.Path)
	}

	logger.Debug("Workspace file loaded.", "path", path, "catalog", s.Catalog.Path)
	return s, nil
}

// Discover loads FileName from dir, falling back to Default when the file
// does not exist.
func Discover(ctx context.Context, fsys afero.Fs, dir string) (*Settings, error) {
	path := filepath.Join(dir, FileName)
	s, err := Load(ctx, fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		ctxlog.FromContext(ctx).Debug("No workspace file found, using defaults.", "dir", dir)
		return Default(), nil
	}
	return s, err
}
