package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeFile(t, src, "a.yaml", "a:\n  color: red\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	builds := make(chan *Result, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Config{
			SourceDir: src,
			OutputDir: out,
			Debounce:  20 * time.Millisecond,
		}, func(r *Result, err error) {
			builds <- r
		})
	}()

	next := func() *Result {
		t.Helper()
		select {
		case r := <-builds:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for build")
			return nil
		}
	}

	first := next()
	require.NotNil(t, first)
	assert.Equal(t, 1, first.FilesScanned)

	writeFile(t, src, "sub/b.yaml", "b:\n  color: blue\n")

	// Directory creation and the file write may land in separate builds
	deadline := time.After(5 * time.Second)
	for {
		select {
		case r := <-builds:
			if r != nil && r.FilesScanned == 2 {
				assert.FileExists(t, filepath.Join(out, "sub", "b.css"))
				cancel()
				require.NoError(t, <-done)
				return
			}
		case <-deadline:
			t.Fatal("change was not rebuilt")
		}
	}
}

func TestShouldProcessEvent(t *testing.T) {
	src := t.TempDir()
	cfg := Config{SourceDir: src}.withDefaults()
	s := newScanner(cfg)

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()

	rules := writeFile(t, src, "a.yaml", "a:\n  b: 1\n")
	config := writeFile(t, src, ".jadzia.yaml", "verbose: true\n")
	cached := writeFile(t, src, ".cache/c.yaml", "c:\n  d: 1\n")
	sub := filepath.Join(src, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	assert.True(t, s.shouldProcessEvent(cfg, watcher, fsnotify.Event{Name: rules, Op: fsnotify.Write}))
	assert.True(t, s.shouldProcessEvent(cfg, watcher, fsnotify.Event{Name: sub, Op: fsnotify.Create}))
	assert.False(t, s.shouldProcessEvent(cfg, watcher, fsnotify.Event{Name: rules, Op: fsnotify.Chmod}))
	assert.False(t, s.shouldProcessEvent(cfg, watcher, fsnotify.Event{Name: config, Op: fsnotify.Write}))
	assert.False(t, s.shouldProcessEvent(cfg, watcher, fsnotify.Event{Name: cached, Op: fsnotify.Write}))
	assert.False(t, s.shouldProcessEvent(cfg, watcher, fsnotify.Event{Name: filepath.Dir(cached), Op: fsnotify.Create}))
	assert.NotContains(t, watcher.WatchList(), filepath.Dir(cached))
}

func TestWatchRejectsFormatNextToSources(t *testing.T) {
	err := Watch(context.Background(), Config{SourceDir: t.TempDir(), Format: FormatJSON}, func(*Result, error) {
		t.Fatal("no build expected")
	})
	assert.Error(t, err)
}
