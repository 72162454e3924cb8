// Package watcher notifies the editor when Loadout's data files change
// on disk, so external edits to profiles.json show up without a restart.
package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/loadout-app/loadout/internal/config"
)

// EventType represents the type of data file change.
type EventType int

// Event types for data file changes.
const (
	EventProfilesChanged EventType = iota
	EventConfigChanged
	EventSettingsChanged
)

// Event represents one debounced data file change.
type Event struct {
	Type EventType
	Path string
}

// Watcher watches the Loadout data directory for changes.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	eventsChan chan Event
	done       chan struct{}
	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a new data directory watcher.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher:  fsWatcher,
		eventsChan: make(chan Event, 100),
		done:       make(chan struct{}),
		debounce:   make(map[string]*time.Timer),
	}, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start begins watching ~/.loadout and processing events.
func (w *Watcher) Start() error {
	dir, err := config.DataDir()
	if err != nil {
		return err
	}
	if err := config.EnsureDataDir(); err != nil {
		return err
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}

	go w.processEvents()
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
	_ = w.fsWatcher.Close()
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Accept write, create, and rename events. Rename matters: atomic
	// writes (write tmp → rename to target) produce Rename events on
	// the target file.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.debounceEvent(event.Name, func() {
		w.processFileChange(event.Name)
	})
}

// debounceEvent coalesces bursts of events for the same path.
func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(100*time.Millisecond, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}

func (w *Watcher) processFileChange(path string) {
	var eventType EventType
	switch filepath.Base(path) {
	case config.ProfilesFileName:
		eventType = EventProfilesChanged
	case config.ConfigFileName:
		eventType = EventConfigChanged
	case config.SettingsFileName:
		eventType = EventSettingsChanged
	default:
		return
	}

	select {
	case w.eventsChan <- Event{Type: eventType, Path: path}:
	default:
		log.Printf("Watcher event dropped: channel full")
	}
}
