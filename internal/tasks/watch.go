package tasks

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long Watch waits after the last write before calling back.
var WatchDebounce = 250 * time.Millisecond

// Watch calls fn each time the file at path is written or re-created, until ctx is done.
//
// Bursts of events are coalesced into one call. The directory is watched rather than the file so editors that
// replace the file on save keep triggering. Errors from the watcher are passed to fn with an empty path.
func Watch(ctx context.Context, path string, fn func(path string, err error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(WatchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				timer.Reset(WatchDebounce)
			}

		case <-timer.C:
			fn(abs, nil)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fn("", err)
		}
	}
}
