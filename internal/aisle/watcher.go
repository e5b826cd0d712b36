package aisle

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the classifier whenever the rules file changes, until ctx is
// cancelled. Editors typically replace files via rename, so the watch is
// placed on the parent directory and reloads are debounced.
func Watch(ctx context.Context, c *Classifier, path string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	logger.Info("aisle watcher: started", slog.String("path", abs))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("aisle watcher: stopped")
			return nil

		case <-reloadCh:
			if err := c.LoadFile(abs); err != nil {
				logger.Warn("aisle watcher: reload failed", slog.String("error", err.Error()))
				continue
			}
			logger.Info("aisle watcher: rules reloaded", slog.Int("rules", c.Len()))

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("aisle watcher: error", slog.String("error", werr.Error()))
		}
	}
}
