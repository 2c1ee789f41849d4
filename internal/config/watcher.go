package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of file events into one reload.
const watchDebounce = 100 * time.Millisecond

// Watcher reloads a Manager when its configuration file changes on
// disk.
type Watcher struct {
	mu      sync.Mutex
	manager *Manager
	fsw     *fsnotify.Watcher
	path    string
	onError func(error)
	done    chan struct{}
	wg      sync.WaitGroup
	closed  bool
}

// NewWatcher creates a watcher for the manager's configuration file.
// onError receives reload and watch failures; nil discards them.
func NewWatcher(m *Manager, onError func(error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors often replace the file on save,
	// which drops a watch registered on the file itself.
	dir := filepath.Dir(m.path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		manager: m,
		fsw:     fsw,
		path:    filepath.Clean(m.path),
		onError: onError,
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Close stops watching. Safe to call multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.reportError(err)

		case <-timerC:
			timerC = nil
			timer = nil
			if err := w.manager.Reload(); err != nil {
				w.reportError(err)
			}
		}
	}
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil && err != nil {
		w.onError(err)
	}
}
