// Package levelwatch reports edits to map files so a running game can reload its level.
package levelwatch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a map file must stay quiet before its change is reported.
const DefaultDebounce = 100 * time.Millisecond

type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	Events chan string
	Errors chan error

	ready   chan string
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New watches dirs for changes to .txt map files. A burst of writes to one file is reported
// once, after the last write.
func New(debounce time.Duration, dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher:  w,
		debounce: debounce,
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		ready:    make(chan string),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Events and Errors are closed once the event goroutine exits.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !IsMapFile(event.Name) {
				continue
			}
			// A reset that races a firing timer reports the file twice; reloads compare
			// fingerprints, so the second report is a no-op.
			if t, ok := pending[event.Name]; ok {
				t.Reset(w.debounce)
				continue
			}
			pending[event.Name] = time.AfterFunc(w.debounce, func() { w.settle(event.Name) })
		case name := <-w.ready:
			delete(pending, name)
			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// settle runs on the timer goroutine once name has been quiet for the debounce window.
func (w *Watcher) settle(name string) {
	select {
	case w.ready <- name:
	case <-w.closeCh:
	}
}

func IsMapFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, "map_") && strings.EqualFold(filepath.Ext(base), ".txt")
}
