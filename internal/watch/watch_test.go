package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, w *FileWatcher) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()
	// Give fsnotify time to register the directory.
	time.Sleep(100 * time.Millisecond)
	return cancel, done
}

func TestFileWatcher_RunsHandlerOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "release_notes_raw.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0o644))

	calls := make(chan struct{}, 10)
	w := New(path, func() error {
		calls <- struct{}{}
		return nil
	}, WithDebounce(20*time.Millisecond))

	cancel, done := startWatcher(t, w)

	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o644))

	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("handler was not called after write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestFileWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "release_notes_raw.txt")

	calls := make(chan struct{}, 10)
	w := New(path, func() error {
		calls <- struct{}{}
		return nil
	}, WithDebounce(20*time.Millisecond))

	cancel, done := startWatcher(t, w)
	defer func() {
		cancel()
		<-done
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case <-calls:
		t.Fatal("handler called for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcher_HandlerErrors(t *testing.T) {
	tests := map[string]struct {
		withErrorHandler bool
	}{
		"error stops the watcher":        {withErrorHandler: false},
		"error handler keeps it running": {withErrorHandler: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "log.txt")
			boom := errors.New("boom")

			reported := make(chan error, 10)
			opts := []Option{WithDebounce(20 * time.Millisecond)}
			if tt.withErrorHandler {
				opts = append(opts, WithErrorHandler(func(err error) { reported <- err }))
			}
			w := New(path, func() error { return boom }, opts...)

			cancel, done := startWatcher(t, w)
			defer cancel()

			require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

			if tt.withErrorHandler {
				select {
				case err := <-reported:
					assert.ErrorIs(t, err, boom)
				case <-time.After(3 * time.Second):
					t.Fatal("error handler was not called")
				}
				cancel()
				assert.NoError(t, <-done)
				return
			}

			select {
			case err := <-done:
				assert.ErrorIs(t, err, boom)
			case <-time.After(3 * time.Second):
				t.Fatal("watcher did not stop on handler error")
			}
		})
	}
}

func TestFileWatcher_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "log.txt"), func() error { return nil })
	err := w.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching")
}

func TestNew_Defaults(t *testing.T) {
	w := New("./a/../log.txt", func() error { return nil })
	assert.Equal(t, "log.txt", w.path)
	assert.Equal(t, DefaultDebounce, w.debounce)
	assert.Nil(t, w.onError)
}
