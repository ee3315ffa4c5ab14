package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/colorgrid/internal/ctxlog"
)

// reloadDelay coalesces the burst of events an editor produces on save.
const reloadDelay = 100 * time.Millisecond

// watch re-loads and re-evaluates the scene whenever a scene file changes.
// It returns when ctx is canceled.
func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]struct{})
	addDirs := func() {
		for _, f := range a.scene.Files {
			dir := filepath.Dir(f)
			if _, ok := watched[dir]; ok {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				logger.Warn("Cannot watch directory.", "dir", dir, "error", err)
				continue
			}
			watched[dir] = struct{}{}
		}
	}
	addDirs()
	logger.Info("👀 Watching scene for changes.", "dirs", len(watched))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watch stopped.")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSceneEvent(event) {
				continue
			}
			logger.Debug("Scene file changed.", "file", event.Name, "op", event.Op.String())
			pending = time.After(reloadDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)
		case <-pending:
			pending = nil
			if err := a.reload(ctx); err != nil {
				logger.Error("Reload failed, keeping previous scene.", "error", err)
				continue
			}
			addDirs()
			if err := a.evaluate(ctx); err != nil {
				logger.Error("Evaluation failed.", "error", err)
			}
		}
	}
}

func (a *App) reload(ctx context.Context) error {
	scene, err := a.loader.Load(ctx, a.config.ScenePath)
	if err != nil {
		return err
	}
	return a.applyScene(ctx, scene)
}

func isSceneEvent(e fsnotify.Event) bool {
	if filepath.Ext(e.Name) != ".hcl" {
		return false
	}
	return e.Has(fsnotify.Write) || e.Has(fsnotify.Create) || e.Has(fsnotify.Rename) || e.Has(fsnotify.Remove)
}
