// Package watcher provides filesystem watching for the displayed
// directory so the listing refreshes when something else changes it.
package watcher

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wrenfm/wren/pkg/wren/logging"
)

// debounce coalesces bursts of events into a single refresh signal.
const debounce = 200 * time.Millisecond

// Watcher watches a single directory, the one currently on display, and
// signals when it changes. Switching directories re-targets the watch.
type Watcher struct {
	watcher *fsnotify.Watcher
	changed chan string
	logger  *logging.Logger

	mu      sync.Mutex
	current string
	closed  bool
}

// New creates a Watcher. Call Close when done.
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		changed: make(chan string, 1),
		logger:  logging.Get("watcher"),
	}
	go w.run()
	return w, nil
}

// Changed delivers the watched directory path after it changed on disk.
// Bursts of events are debounced into one delivery.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

// Target switches the watch to dir, dropping the previous one.
func (w *Watcher) Target(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || dir == w.current {
		return nil
	}
	if w.current != "" {
		if err := w.watcher.Remove(w.current); err != nil {
			w.logger.Warn("failed to remove watch", "path", w.current, "error", err)
		}
		w.current = ""
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.current = dir
	return nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	return w.watcher.Close()
}

// run drains fsnotify events and forwards a debounced change signal.
func (w *Watcher) run() {
	var timer *time.Timer
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				w.mu.Lock()
				dir := w.current
				w.mu.Unlock()
				if dir == "" {
					return
				}
				select {
				case w.changed <- dir:
				default:
				}
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}
