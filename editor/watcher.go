package editor

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

// EventFileChanged is posted to the screen when the watched file changes on disk.
type EventFileChanged struct {
	Path string

	tcell.EventTime
}

func NewEventFileChanged(path string) *EventFileChanged {
	ev := &EventFileChanged{Path: path}
	ev.SetEventNow()
	return ev
}

// An EventPoster accepts events from other goroutines, like a tcell.Screen.
type EventPoster interface {
	PostEvent(ev tcell.Event) error
}

// A Watcher watches the file open in the editor. Changes are debounced and
// posted as an EventFileChanged, so they are handled by the event loop.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	poster    EventPoster
	debounce  time.Duration
	logger    *slog.Logger
	done      chan struct{}

	mu   sync.Mutex
	path string // Absolute path of the watched file, empty if none
	dir  string
}

// NewWatcher creates a Watcher and starts its event loop.
func NewWatcher(poster EventPoster, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsw,
		poster:    poster,
		debounce:  debounce,
		logger:    logger,
		done:      make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch starts watching the file at path, replacing the previously watched
// file. The directory is watched so that files replaced by a rename are
// still seen.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if dir != w.dir {
		if w.dir != "" {
			_ = w.fsWatcher.Remove(w.dir)
		}
		if err := w.fsWatcher.Add(dir); err != nil {
			w.path, w.dir = "", ""
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}
	w.path, w.dir = abs, dir
	return nil
}

// Unwatch stops watching any file.
func (w *Watcher) Unwatch() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir != "" {
		_ = w.fsWatcher.Remove(w.dir)
	}
	w.path, w.dir = "", ""
}

// Close terminates the watcher and releases resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// watchedPath returns the watched file if the event concerns it.
func (w *Watcher) watchedPath(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return "", false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path, w.path != "" && filepath.Clean(event.Name) == w.path
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			path, ok := w.watchedPath(event)
			if !ok {
				continue
			}

			pending = path
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if err := w.poster.PostEvent(NewEventFileChanged(pending)); err != nil {
				w.logger.Warn("dropped file change event", "path", pending, "error", err)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}
