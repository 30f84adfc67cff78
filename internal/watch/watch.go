// Package watch re-runs a full scan whenever a directory tree changes. It
// carries no incremental state of its own — every trigger is a signal to
// redo the entire non-incremental scan, matching the Non-goal that rules
// out incremental processing.
package watch

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Loop watches root recursively and invokes rerun, serially, whenever a
// write, create, or rename event settles. It blocks until ctx is canceled.
func Loop(ctx context.Context, root string, rerun func(), logger *log.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addRecursive(watcher, root); err != nil {
		return err
	}

	logger.Printf("[Watch] watching %s for changes", root)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			// Coalesce a burst of events (e.g. many files touched at once)
			// into a single rerun.
			drain(ctx, watcher.Events, 200*time.Millisecond)

			logger.Printf("[Watch] change detected near %s, re-running scan", event.Name)
			rerun()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Printf("[Watch] error: %v", err)
		}
	}
}

// drain consumes further events for up to quiet, so a flurry of filesystem
// activity triggers one rerun instead of one per touched file.
func drain(ctx context.Context, events <-chan fsnotify.Event, quiet time.Duration) {
	timer := time.NewTimer(quiet)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(quiet)
		case <-timer.C:
			return
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
