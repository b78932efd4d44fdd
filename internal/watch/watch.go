// Package watch re-runs a resolution whenever the bemjson source or anything
// under a level root changes. Bursts of filesystem events are debounced into
// a single callback.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when no debounce interval is configured.
const DefaultDebounce = 100 * time.Millisecond

// ChangeFunc is called once per debounced burst with the changed paths in
// the order they were first seen.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher observes one source file and a set of level roots.
type Watcher struct {
	source    string
	levelDirs []string
	debounce  time.Duration
	logger    *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period that must pass before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher for an absolute source path and absolute level roots.
func New(source string, levelDirs []string, opts ...Option) *Watcher {
	w := &Watcher{
		source:    filepath.Clean(source),
		levelDirs: make([]string, len(levelDirs)),
		debounce:  DefaultDebounce,
		logger:    slog.New(slog.DiscardHandler),
	}
	for i, d := range levelDirs {
		w.levelDirs[i] = filepath.Clean(d)
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Relevant reports whether a change to path affects the resolution.
func (w *Watcher) Relevant(path string) bool {
	path = filepath.Clean(path)
	if path == w.source {
		return true
	}
	for _, lvl := range w.levelDirs {
		if path == lvl || strings.HasPrefix(path, lvl+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run blocks until ctx is done, calling onChange after every debounced burst
// of relevant events. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	// The source directory is watched rather than the file, so editors that
	// replace the file on save are still seen.
	if err := fw.Add(filepath.Dir(w.source)); err != nil {
		return fmt.Errorf("failed to watch source dir: %w", err)
	}
	for _, lvl := range w.levelDirs {
		// Parent first, so a level created later is noticed.
		if err := fw.Add(filepath.Dir(lvl)); err != nil {
			w.logger.Debug("cannot watch level parent", "dir", filepath.Dir(lvl), "error", err)
		}
		if err := watchTree(fw, lvl); err != nil {
			return fmt.Errorf("failed to watch level %s: %w", lvl, err)
		}
	}

	w.logger.Debug("watching", "source", w.source, "levels", len(w.levelDirs), "debounce", w.debounce)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending []string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod || !w.Relevant(event.Name) {
				continue
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(fw, event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
				}
			}

			if !slices.Contains(pending, event.Name) {
				pending = append(pending, event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			changed := pending
			pending = nil
			w.logger.Debug("change detected", "paths", len(changed))
			onChange(ctx, changed)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// watchTree recursively adds dir to the watcher. A missing dir is skipped.
func watchTree(fw *fsnotify.Watcher, dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}
