package config

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when using a closed watcher.
var ErrWatcherClosed = errors.New("config: watcher is closed")

// ReloadHandler receives the freshly loaded configuration after the
// watched file changes.
type ReloadHandler func(Config)

// Watcher reloads configuration when the file changes on disk.
// Rapid successive writes (editors often write twice) are debounced.
type Watcher struct {
	mu      sync.Mutex
	path    string
	handler ReloadHandler
	watcher *fsnotify.Watcher

	debounce time.Duration
	pending  *time.Timer

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// Watch starts watching path and calls handler with the reloaded
// configuration after each change. The watcher owns a goroutine until
// Close is called.
func Watch(path string, handler ReloadHandler) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors replace files on save, which drops
	// a watch placed on the file itself.
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		handler:  handler,
		watcher:  fsw,
		debounce: 100 * time.Millisecond,
		closeCh:  make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Close stops the watcher and its goroutine.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	return w.watcher.Close()
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				w.scheduleReload()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// scheduleReload restarts the debounce timer for a pending reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.reload)
}

// reload loads the file and delivers it to the handler. Load errors
// are swallowed: the previous configuration stays in effect.
func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		return
	}
	w.handler(cfg)
}
