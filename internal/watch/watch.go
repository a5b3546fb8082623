// Package watch reruns a callback whenever a file is written.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce coalesces the burst of events editors and shells emit for
// a single save.
const DefaultDebounce = 200 * time.Millisecond

// FileWatcher invokes a handler each time the watched file is created or
// written. Handler calls never overlap.
type FileWatcher struct {
	path     string
	debounce time.Duration
	handler  func() error
	onError  func(error)
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDebounce sets the quiet period before the handler runs.
func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) {
		w.debounce = d
	}
}

// WithErrorHandler receives handler errors. Without one, the first handler
// error stops the watcher.
func WithErrorHandler(fn func(error)) Option {
	return func(w *FileWatcher) {
		w.onError = fn
	}
}

// New creates a FileWatcher for path. The file does not need to exist yet.
func New(path string, handler func() error, opts ...Option) *FileWatcher {
	w := &FileWatcher{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		handler:  handler,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. The parent directory is watched so the
// file survives being replaced by rename.
func (w *FileWatcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	g, ctx := errgroup.WithContext(ctx)
	triggers := make(chan struct{}, 1)

	g.Go(func() error {
		defer close(triggers)
		return w.eventLoop(ctx, fsw, triggers)
	})
	g.Go(func() error {
		return w.handleLoop(ctx, triggers)
	})

	return g.Wait()
}

// eventLoop filters fsnotify events for the watched file and sends a
// debounced trigger for each burst.
func (w *FileWatcher) eventLoop(ctx context.Context, fsw *fsnotify.Watcher, triggers chan<- struct{}) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				timer.Reset(w.debounce)
			}
		case <-timer.C:
			select {
			case triggers <- struct{}{}:
			default:
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// handleLoop runs the handler serially for each trigger.
func (w *FileWatcher) handleLoop(ctx context.Context, triggers <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-triggers:
			if !ok {
				return nil
			}
			if err := w.handler(); err != nil {
				if w.onError == nil {
					return err
				}
				w.onError(err)
			}
		}
	}
}
