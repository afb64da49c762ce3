// Package watch notifies the game when a level file changes on disk, so a
// level being edited externally can be hot-reloaded mid-session.
package watch

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports modifications of one file. Events are delivered on a
// channel that the game loop polls once per frame; the watcher itself
// runs on its own goroutine and never touches game state.
type Watcher struct {
	fsw     *fsnotify.Watcher
	log     *log.Logger
	path    string
	changed chan struct{}
}

// New starts watching path. The watch is placed on the parent directory
// because editors typically replace files via rename, which drops a watch
// placed on the file itself.
func New(path string, logger *log.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fsw:     fsw,
		log:     logger,
		path:    abs,
		changed: make(chan struct{}, 1),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug("level file changed", "path", w.path, "op", ev.Op)
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "err", err)
		}
	}
}

// Changed returns a channel that receives after the watched file was
// modified. Multiple rapid changes coalesce into one notification.
func (w *Watcher) Changed() <-chan struct{} { return w.changed }

// Close stops the watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }
