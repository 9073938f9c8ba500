// Package watch wraps an fsnotify.Watcher with debouncing, so a burst of
// writes to a watched file (an editor save, a tool rewriting the file in
// several syscalls) produces one change notification instead of several. It is used only by cmd/kdvec's watch subcommand; the engine
// itself has no concept of a file.
package watch

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher debounces fsnotify events on one or more watched paths into a
// single notification per settle window.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	window    time.Duration

	mu    sync.Mutex
	timer *time.Timer

	changed chan string
	errors  chan error
	stopCh  chan struct{}
	stopped bool
}

// New creates a Watcher that coalesces events arriving within window into
// one Changed notification.
func New(window time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsw,
		window:    window,
		changed:   make(chan string, 1),
		errors:    make(chan error, 10),
		stopCh:    make(chan struct{}),
	}, nil
}

// Add registers path with the underlying fsnotify watcher. path must exist
// at call time.
func (w *Watcher) Add(path string) error {
	return w.fsWatcher.Add(path)
}

// Run consumes fsnotify events until Stop is called. It blocks, so callers
// run it in its own goroutine.
func (w *Watcher) Run() {
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.debounce(ev.Name)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.emitError(err)
		}
	}
}

func (w *Watcher) debounce(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.window, func() {
		select {
		case w.changed <- path:
		default:
			// A notification is already pending; the consumer will reload
			// anyway, so dropping this one is not a loss.
		}
	})
}

func (w *Watcher) emitError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

// Changed delivers one path per debounced burst of file-system activity.
func (w *Watcher) Changed() <-chan string { return w.changed }

// Errors delivers fsnotify errors encountered while watching.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Stop releases the underlying fsnotify watcher. Safe to call more than
// once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	return w.fsWatcher.Close()
}
