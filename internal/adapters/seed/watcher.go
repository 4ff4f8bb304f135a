package seed

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads the seed file into the stores whenever it changes on disk.
// Editors that replace the file on save (rename then create) are handled by
// watching the parent directory.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	events   ports.EventRepository
	shopping ports.ShoppingRepository
	log      *logger.Logger

	mu      sync.Mutex
	pending *time.Timer
	done    chan struct{}
}

// NewWatcher starts watching the seed file. The initial load is the caller's
// job; the watcher only reacts to later changes.
func NewWatcher(path string, events ports.EventRepository, shopping ports.ShoppingRepository, log *logger.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		path:     abs,
		events:   events,
		shopping: shopping,
		log:      log,
		done:     make(chan struct{}),
	}
	go w.watch()
	return w, nil
}

func (w *Watcher) watch() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnw("seed watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// scheduleReload debounces rapid write events into a single reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *Watcher) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Apply(ctx, w.path, w.events, w.shopping); err != nil {
		// A bad edit keeps the previous data; the stores are only replaced
		// on a successful parse.
		w.log.Errorw("seed reload failed", "path", w.path, "error", err)
		return
	}
	w.log.Infow("seed reloaded", "path", w.path)
}

func (w *Watcher) Close() error {
	close(w.done)
	w.mu.Lock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
