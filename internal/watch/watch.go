// Package watch re-runs the post-processing stages when the generator
// rewrites files under the site directory.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches bursts of generator writes into one run.
const DefaultDebounce = 500 * time.Millisecond

// Watcher triggers a callback after changes under a directory settle.
type Watcher struct {
	dir      string
	debounce time.Duration
	onChange func(context.Context) error
}

// New constructs a Watcher over dir invoking onChange after changes settle.
func New(dir string, onChange func(context.Context) error) *Watcher {
	return &Watcher{dir: dir, debounce: DefaultDebounce, onChange: onChange}
}

// WithDebounce overrides the settle window.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Run watches until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = fsw.Close()
	}()

	if err := addRecursive(fsw, w.dir); err != nil {
		return err
	}
	slog.Info("Watching for changes", "dir", w.dir)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// New subdirectories need their own watch.
				_ = addRecursive(fsw, event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		case <-fire:
			fire = nil
			if err := w.onChange(ctx); err != nil {
				slog.Error("Change handler failed", "error", err)
			}
			// The handler's own writes queue spurious events; drop them.
			drain(fsw.Events)
		}
	}
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // path may have vanished mid-walk
		}
		if d.IsDir() {
			if err := fsw.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
		}
		return nil
	})
}

func drain(events chan fsnotify.Event) {
	for {
		select {
		case <-events:
		default:
			return
		}
	}
}
