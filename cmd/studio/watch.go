package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/studio"
	"github.com/gogpu/studio/render"
)

// debounce coalesces the burst of events editors emit for one save.
const debounce = 150 * time.Millisecond

// watchInput renders once, then again after every change to the input
// until ctx is done. Render failures are logged and do not stop watching.
func watchInput(ctx context.Context, j *job, eng render.Engine) error {
	if err := j.run(ctx, eng); err != nil {
		studio.Logger().Error("studio: render failed", "err", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save, which
	// drops a watch on the file itself.
	abs, err := filepath.Abs(j.input)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	studio.Logger().Info("studio: watching", "input", abs)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			studio.Logger().Warn("studio: watch error", "err", err)
		case <-timer.C:
			if err := j.run(ctx, eng); err != nil {
				studio.Logger().Error("studio: render failed", "err", err)
			}
		}
	}
}
