package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is how long file events must settle before re-validating.
const watchDebounce = 150 * time.Millisecond

// watchAndValidate validates once, then again after every change to the
// schema or values file, until ctx is cancelled. Validation failures are
// printed and do not stop the watch.
func watchAndValidate(ctx context.Context, w io.Writer, schemaPath string, f *validateFlags, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch directories so editors that replace files are still seen.
	targets := map[string]bool{}
	for _, p := range []string{schemaPath, f.values} {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		targets[abs] = true
	}
	dirs := map[string]bool{}
	for p := range targets {
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	run := func() {
		fmt.Fprintf(w, "\n%s\n", dimColor.Sprintf("[%s] validating %s", time.Now().Format(time.TimeOnly), schemaPath))
		if _, err := validateOnce(ctx, w, schemaPath, f, logger); err != nil && !errors.Is(err, errInvalidForm) {
			printError(w, err)
		}
	}
	run()

	timer := time.NewTimer(watchDebounce)
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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !targets[abs] {
				continue
			}
			timer.Reset(watchDebounce)

		case <-timer.C:
			run()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if logger != nil {
				logger.Warn("watcher error", slog.String("error", err.Error()))
			}
		}
	}
}
