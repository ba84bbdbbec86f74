package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is how long to wait after the last filesystem event before
// re-rendering. Editors often fire several events per save.
const watchDebounce = 200 * time.Millisecond

// watchAndRender renders once, then re-renders whenever the content file or
// anything in the template directory changes, until the context is
// cancelled. Render failures are logged and the watch continues, so a
// half-typed template does not kill the loop.
func watchAndRender(ctx context.Context, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := map[string]struct{}{}
	for _, dir := range []string{filepath.Dir(renderOpts.content), filepath.Dir(renderOpts.template)} {
		if _, ok := watched[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watched[dir] = struct{}{}
	}

	if err := renderOnce(logger); err != nil {
		logger.Error("Initial render failed", "error", err)
	}
	logger.Info("Watching for changes",
		"content", renderOpts.content,
		"templates", filepath.Dir(renderOpts.template))

	// Debounce timer, created stopped.
	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	outputAbs, _ := filepath.Abs(renderOpts.output)
	dataOutAbs := ""
	if renderOpts.dataOut != "" {
		dataOutAbs, _ = filepath.Abs(renderOpts.dataOut)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("Watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Our own output files land in watched directories too;
			// rebuilding on those would loop forever.
			if abs, err := filepath.Abs(event.Name); err == nil &&
				(abs == outputAbs || (dataOutAbs != "" && abs == dataOutAbs)) {
				continue
			}
			logger.Debug("Change detected", "file", event.Name, "op", event.Op.String())
			timer.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", "error", err)
		case <-timer.C:
			if err := renderOnce(logger); err != nil {
				logger.Error("Render failed", "error", err)
			}
		}
	}
}
