package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/glint/pkg/scenefile"
)

func writeScene(t *testing.T, path string, d scenefile.Description) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, scenefile.Encode(&buf, d))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestSceneWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	writeScene(t, path, scenefile.Default())

	w, err := newSceneWatcher(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloads := make(chan scenefile.Description, 1)
	go w.Run(ctx, reloads)

	edited := scenefile.Default()
	edited.Samples = 5
	writeScene(t, path, edited)

	select {
	case d := <-reloads:
		assert.Equal(t, 5, d.Samples)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestSceneWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	writeScene(t, path, scenefile.Default())

	w, err := newSceneWatcher(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer w.Close()

	assert.True(t, w.relevant(fsnotify.Event{Name: path, Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: path, Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "other.toml"), Op: fsnotify.Write}))
}
