// Package watcher monitors a single schematic file for external changes.
// The parent directory is watched rather than the file itself because
// editors (and our own commit path) replace files by rename, which drops an
// inode-level watch. Rapid event bursts are throttled: the callback fires on
// the first event, and events arriving within the debounce window after it
// are dropped.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher watches one file and invokes a callback when it changes.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// New creates a watcher.
func New() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring path. onChange is called with the absolute path
// on the first change event of each debounce window. Temp files from atomic commits (dotfile
// siblings) are ignored.
func (w *Watcher) Watch(path string, onChange func(path string)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.fw.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	base := filepath.Base(abs)
	var dmu sync.Mutex
	var last time.Time

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Rename) {
					continue
				}

				dmu.Lock()
				now := time.Now()
				if now.Sub(last) < defaultDebounce {
					dmu.Unlock()
					continue
				}
				last = now
				dmu.Unlock()

				onChange(abs)

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// fsnotify recovers on its own; nothing to do.

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases resources. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}
