// Package watch reloads a document from disk whenever it changes.
//
// The parent directory is watched rather than the file itself so that editors
// which save by writing a temporary file and renaming it over the watched one
// keep producing events.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"jsonview/internal/logging"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 200 * time.Millisecond

// Reload carries the contents of the watched file after a change settled.
// Err is set when the file could not be read; Data is then nil.
type Reload struct {
	Path string
	Data []byte
	Err  error
	At   time.Time
}

// Stats tracks watcher activity.
type Stats struct {
	Events        int
	Reloads       int
	Errors        int
	LastEventTime time.Time
	LastEventType string
}

// Watcher emits a Reload for every settled burst of changes to one file.
type Watcher struct {
	mu        sync.RWMutex
	fs        *fsnotify.Watcher
	path      string
	dir       string
	debouncer *Debouncer
	events    chan Reload
	stopCh    chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
	running   bool
	stats     Stats
}

// New creates a watcher for path. A non-positive debounce selects
// DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		fs:        fw,
		path:      abs,
		dir:       filepath.Dir(abs),
		debouncer: NewDebouncer(debounce),
		events:    make(chan Reload, 1),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Events delivers reloads. The channel is never closed.
func (w *Watcher) Events() <-chan Reload { return w.events }

// Start begins watching. It is non-blocking; events are processed in a
// goroutine until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	if err := w.fs.Add(w.dir); err != nil {
		w.mu.Unlock()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.running = true
	w.mu.Unlock()

	logging.Watch("watching %s", w.path)
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit. It is safe to
// call more than once and without a prior Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	w.closeOnce.Do(func() {
		close(w.stopCh)
		if wasRunning {
			<-w.doneCh
		}
		w.debouncer.Cancel()
		w.debouncer.Wait()
		if err := w.fs.Close(); err != nil {
			logging.WatchWarn("error closing watcher: %v", err)
		}
		logging.Watch("stopped watching %s", w.path)
	})
}

// Trigger reloads the file immediately, dropping any pending debounced reload.
func (w *Watcher) Trigger() {
	w.debouncer.Immediate(w.reload)
}

// Stats returns the current watcher statistics.
func (w *Watcher) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

// IsWatching returns true if the watcher is currently running.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			logging.WatchDebug("context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.WatchWarn("watcher error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	var eventType string
	switch {
	case event.Has(fsnotify.Create):
		eventType = "create"
	case event.Has(fsnotify.Write):
		eventType = "modify"
	case event.Has(fsnotify.Remove):
		eventType = "delete"
	case event.Has(fsnotify.Rename):
		eventType = "rename"
	default:
		return
	}

	logging.WatchDebug("%s event for %s", eventType, event.Name)

	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventType = eventType
	w.mu.Unlock()

	w.debouncer.Debounce(w.reload)
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if errors.Is(err, os.ErrNotExist) {
		// Replaced by rename; the create that follows triggers the reload.
		logging.WatchDebug("%s is gone, waiting for it to reappear", w.path)
		return
	}

	r := Reload{Path: w.path, Data: data, At: time.Now()}
	w.mu.Lock()
	if err != nil {
		r.Err = fmt.Errorf("read %s: %w", w.path, err)
		w.stats.Errors++
	} else {
		w.stats.Reloads++
	}
	w.mu.Unlock()

	// Keep only the newest reload if the consumer is behind.
	for {
		select {
		case w.events <- r:
			return
		case <-w.stopCh:
			return
		default:
		}
		select {
		case <-w.events:
		default:
		}
	}
}
