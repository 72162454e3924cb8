package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/loadout-app/loadout/internal/config"
)

func startWatcher(t *testing.T) *Watcher {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func waitForEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watcher event")
		return Event{}
	}
}

func TestWatcherReportsProfileChanges(t *testing.T) {
	w := startWatcher(t)

	path, err := config.ProfilesFile()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := waitForEvent(t, w)
	if ev.Type != EventProfilesChanged {
		t.Errorf("event type = %v, want EventProfilesChanged", ev.Type)
	}
	if filepath.Base(ev.Path) != config.ProfilesFileName {
		t.Errorf("event path = %q, want %q", ev.Path, config.ProfilesFileName)
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	w := startWatcher(t)

	path, err := config.ProfilesFile()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	waitForEvent(t, w)

	// The burst should have collapsed into a single event.
	select {
	case ev := <-w.Events():
		t.Errorf("unexpected second event %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	w := startWatcher(t)

	dir, err := config.DataDir()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		t.Errorf("unexpected event %+v for unrelated file", ev)
	case <-time.After(300 * time.Millisecond):
	}
}
