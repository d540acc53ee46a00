package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/internal/watch"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) record(_ context.Context, changed []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, changed)
	return nil
}

func (r *recorder) all() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func TestWatch_ReportsMatchingChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "docs")
	require.NoError(t, os.Mkdir(sub, 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	done := make(chan error, 1)
	go func() {
		done <- watch.Watch(ctx, watch.Options{
			Roots:      []string{dir},
			Extensions: []string{".md"},
			Debounce:   50 * time.Millisecond,
		}, rec.record)
	}()

	target := filepath.Join(sub, "a.md")

	// The watcher registers asynchronously; keep writing until it notices.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(target, []byte("# a\n"), 0o644)
		_ = os.WriteFile(filepath.Join(sub, "ignored.txt"), []byte("x"), 0o644)
		return len(rec.all()) > 0
	}, 5*time.Second, 100*time.Millisecond)

	for _, call := range rec.all() {
		assert.Equal(t, []string{target}, call)
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatch_CallbackErrorStops(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stop := assert.AnError

	done := make(chan error, 1)
	go func() {
		done <- watch.Watch(context.Background(), watch.Options{
			Roots:    []string{dir},
			Debounce: 20 * time.Millisecond,
		}, func(context.Context, []string) error { return stop })
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case err := <-done:
			require.ErrorIs(t, err, stop)
			return
		case <-tick.C:
			require.NoError(t, os.WriteFile(filepath.Join(dir, "x.md"), []byte("x"), 0o644))
		case <-deadline:
			t.Fatal("watch did not stop")
		}
	}
}

func TestWatch_MissingRoot(t *testing.T) {
	t.Parallel()

	err := watch.Watch(context.Background(), watch.Options{
		Roots: []string{filepath.Join(t.TempDir(), "missing")},
	}, func(context.Context, []string) error { return nil })
	require.Error(t, err)
}
