package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/pipeconf/internal/ctxlog"
)

// Watch keeps the catalog in sync with its file until ctx is cancelled.
// The health check server runs for the duration when a port is set.
//
// The directory holding the catalog is watched, so editors that save by
// renaming a temporary file over the catalog are picked up. A reload that
// fails keeps the previous catalog.
func (a *App) Watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	path := a.settings.Catalog.Path
	if path == "" {
		return ErrNoCatalog
	}
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	if err := a.LoadCatalog(ctx); err != nil {
		logger.Warn("Initial catalog load failed, waiting for changes.", "error", err)
	}

	a.startHealthCheckServer(a.config.HealthcheckPort)
	defer a.closeHealthCheckServer()

	logger.Info("👀 Watching catalog for changes.", "path", path)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watch stopped.")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				logger.Debug("Ignoring catalog event.", "op", ev.Op.String())
				continue
			}
			if err := a.LoadCatalog(ctx); err != nil {
				logger.Warn("Catalog reload failed, keeping previous catalog.", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)
		}
	}
}
