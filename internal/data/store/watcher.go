package store

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/quarterlog/quarterlog/internal/util"
)

// FileEvent signals an external change to the persisted document
type FileEvent struct {
	Path      string
	Operation string
}

// Watcher reports external writes to the store file so a running view can
// reload. The watch is on the directory; editors and atomic renames replace
// the file rather than write it in place.
type Watcher struct {
	watcher *fsnotify.Watcher
	target  string
	events  chan FileEvent
	stop    chan struct{}
}

// NewWatcher starts watching the store file's directory
func NewWatcher(storePath string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(storePath)); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: watcher,
		target:  storePath,
		events:  make(chan FileEvent, 16),
		stop:    make(chan struct{}),
	}

	go w.processEvents()

	return w, nil
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case w.events <- FileEvent{Path: event.Name, Operation: event.Op.String()}:
			default:
				// Drop when the consumer lags; the next event triggers the same reload
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("Store watch error: " + err.Error())
		}
	}
}

// Events returns the change notification channel
func (w *Watcher) Events() <-chan FileEvent {
	return w.events
}

// Close stops the watcher
func (w *Watcher) Close() error {
	close(w.stop)
	return w.watcher.Close()
}
