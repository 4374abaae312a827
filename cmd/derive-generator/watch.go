package main

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce groups bursts of file events, as written by editors and
// formatters, into one generation pass.
const debounce = 200 * time.Millisecond

// watchLoop generates once, then again whenever a Go source in a loaded
// package changes, until ctx is cancelled.
func (a *app) watchLoop(ctx context.Context) int {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		a.logger.Error("starting watcher", "error", err)

		return exitFail
	}
	defer w.Close()

	watched := make(map[string]bool)
	follow := func(dirs []string) {
		for _, dir := range dirs {
			if watched[dir] || dir == "" {
				continue
			}

			if err := w.Add(dir); err != nil {
				a.logger.Warn("watching directory", "dir", dir, "error", err)

				continue
			}

			watched[dir] = true
		}
	}

	_, dirs := a.generate(ctx)
	follow(dirs)

	a.logger.Info("watching", "directories", len(watched))

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return exitOK
		case ev, ok := <-w.Events:
			if !ok {
				return exitOK
			}

			if relevant(ev, a.cfg.Filename) {
				a.logger.Debug("change", "file", ev.Name, "op", ev.Op.String())
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return exitOK
			}

			a.logger.Warn("watcher", "error", err)
		case <-timer.C:
			_, dirs := a.generate(ctx)
			follow(dirs)
		}
	}
}

// relevant reports whether ev touches a Go source that is not generator
// output.
func relevant(ev fsnotify.Event, output string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	base := filepath.Base(ev.Name)

	switch {
	case filepath.Ext(base) != ".go":
		return false
	case base == output, strings.HasSuffix(base, ".unformatted.go"):
		return false
	case strings.HasSuffix(base, "_test.go"):
		return false
	default:
		return true
	}
}
