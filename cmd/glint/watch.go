package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/taigrr/glint/pkg/scenefile"
)

// sceneWatcher reloads a scene file whenever it changes on disk.
type sceneWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	log     *slog.Logger
}

// newSceneWatcher watches the directory holding path, since editors often
// replace files by renaming a temporary file over them.
func newSceneWatcher(path string, log *slog.Logger) (*sceneWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve scene path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &sceneWatcher{path: abs, watcher: w, log: log}, nil
}

// Run delivers every successfully reloaded description on out until ctx is
// done. Invalid edits are logged and skipped.
func (s *sceneWatcher) Run(ctx context.Context, out chan<- scenefile.Description) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !s.relevant(event) {
				continue
			}
			d, err := scenefile.Load(s.path)
			if err != nil {
				s.log.Warn("reload scene", "path", s.path, "err", err)
				continue
			}
			select {
			case out <- d:
			case <-ctx.Done():
				return
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("watch scene", "err", err)
		}
	}
}

func (s *sceneWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != s.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Close stops watching.
func (s *sceneWatcher) Close() error {
	return s.watcher.Close()
}
