package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events editors produce on save
const watchDebounce = 150 * time.Millisecond

// Watch calls fn with the reloaded config every time the config file changes,
// until ctx is done. Reload errors are passed to fn with a nil config; the
// caller keeps its previous settings.
//
// The directory is watched rather than the file so that editors which
// replace the file on save keep being tracked.
func Watch(ctx context.Context, baseDir string, fn func(*Config, error)) error {
	dir := Dir(baseDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return err
	}

	target := filepath.Clean(Path(baseDir))
	go func() {
		defer w.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
				} else {
					timer.Reset(watchDebounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				cfg, err := Load(baseDir)
				if err != nil {
					fn(nil, err)
					continue
				}
				fn(cfg, nil)

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				fn(nil, err)
			}
		}
	}()
	return nil
}
