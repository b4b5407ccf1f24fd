package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesBursts(t *testing.T) {
	req, trigger, stop := newDebouncer(20 * time.Millisecond)
	defer stop()

	for range 5 {
		trigger()
	}
	select {
	case <-req:
	case <-time.After(time.Second):
		t.Fatal("debounced request not delivered")
	}
	select {
	case <-req:
		t.Fatal("burst produced more than one request")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestIgnored(t *testing.T) {
	assert.True(t, ignored("/docs/.intro.md.swx"))
	assert.True(t, ignored("/docs/intro.md~"))
	assert.True(t, ignored("/docs/intro.md.swp"))
	assert.False(t, ignored("/docs/intro.md"))
}

func TestWithin(t *testing.T) {
	assert.True(t, within("/docs", "/docs/a/b.md"))
	assert.True(t, within("/docs", "/docs"))
	assert.False(t, within("/docs", "/docsx/a.md"))
	assert.False(t, within("/docs", "/other/a.md"))
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte("documents: []\n"), 0o600))

	var builds atomic.Int32
	started := make(chan struct{}, 8)
	w := &Watcher{Dirs: []string{dir}, Files: []string{catalog}, Debounce: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(ctx, func(context.Context) error {
			builds.Add(1)
			started <- struct{}{}
			return nil
		})
	}()

	waitBuild := func() {
		t.Helper()
		select {
		case <-started:
		case <-time.After(5 * time.Second):
			t.Fatal("rebuild not triggered")
		}
	}
	waitBuild()

	// The initial build may run before the watch loop starts.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intro.md"), []byte("# Intro\n"), 0o600))
	waitBuild()

	require.NoError(t, os.WriteFile(catalog, []byte("documents: [{id: a.md}]\n"), 0o600))
	waitBuild()

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.GreaterOrEqual(t, builds.Load(), int32(3))
}

func TestWatcher_PeriodicRebuild(t *testing.T) {
	started := make(chan struct{}, 8)
	w := &Watcher{Debounce: time.Millisecond, Interval: 20 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(ctx, func(context.Context) error {
			started <- struct{}{}
			return nil
		})
	}()

	for i := range 2 {
		select {
		case <-started:
		case <-time.After(5 * time.Second):
			t.Fatalf("build %d not triggered", i)
		}
	}
	cancel()
	require.NoError(t, <-errCh)
}

func TestSchedule_RejectsInvalidInterval(t *testing.T) {
	_, err := schedule(0, func() {})
	require.Error(t, err)
}
