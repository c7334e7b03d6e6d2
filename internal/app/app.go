package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/afero"
	"github.com/vk/pipeconf/internal/catalog"
	"github.com/vk/pipeconf/internal/ctxlog"
	"github.com/vk/pipeconf/internal/document"
	"github.com/vk/pipeconf/internal/parser"
	"github.com/vk/pipeconf/internal/workspace"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	config   *Config
	logger   *slog.Logger
	fs       afero.Fs
	settings *workspace.Settings
	catalog  *catalog.Handle
	loader   *document.FSLoader
	walker   *parser.Walker

	httpServer *http.Server
}

// NewApp builds an App. Logs go to logW; fsys is the filesystem every
// document, catalog and workspace file is read from.
func NewApp(logW io.Writer, cfg *Config, fsys afero.Fs) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var (
		settings *workspace.Settings
		err      error
	)
	if cfg.WorkspacePath != "" {
		settings, err = workspace.Load(ctx, fsys, cfg.WorkspacePath)
	} else {
		settings, err = workspace.Discover(ctx, fsys, cfg.WorkDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	if cfg.CatalogPath != "" {
		settings.Catalog.Path = cfg.CatalogPath
	}
	if cfg.Tool != "" {
		settings.Catalog.Tool = cfg.Tool
	}
	if cfg.LayoutURL != "" {
		settings.Layout.URL = cfg.LayoutURL
	}
	if cfg.Workers > 0 {
		settings.Check.Workers = cfg.Workers
	}
	logger.Debug("Settings resolved.",
		"workspace", settings.Source,
		"catalog", settings.Catalog.Path,
		"workers", settings.Check.Workers,
	)

	loader := document.NewLoader(fsys)
	return &App{
		config:   cfg,
		logger:   logger,
		fs:       fsys,
		settings: settings,
		catalog:  catalog.NewHandle(nil),
		loader:   loader,
		walker:   parser.NewWalker(loader),
	}, nil
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Settings returns the resolved workspace settings.
func (a *App) Settings() *workspace.Settings {
	return a.settings
}

// Catalog returns the handle holding the current catalog.
func (a *App) Catalog() *catalog.Handle {
	return a.catalog
}
