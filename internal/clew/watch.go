package clew

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watcher invalidates an Engine's fingerprint cache when a watched source
// file changes on disk, so a long-lived host process (an editor plugin, a
// file-watching CLI) never serves a stale ExtractFromCode result for a
// path it already cached.
type Watcher struct {
	fs  *fsnotify.Watcher
	eng *Engine
}

// NewWatcher starts watching paths for writes and renames. Close stops it.
func NewWatcher(eng *Engine, paths ...string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("clew: new watcher: %w", err)
	}
	for _, p := range paths {
		if err := fsWatcher.Add(p); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("clew: watch %s: %w", p, err)
		}
	}

	w := &Watcher{fs: fsWatcher, eng: eng}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.eng.cache.invalidatePath(event.Name)
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error { return w.fs.Close() }
