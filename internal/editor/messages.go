package editor

import (
	"github.com/loadout-app/loadout/internal/models"
	"github.com/loadout-app/loadout/internal/procguard"
	"github.com/loadout-app/loadout/internal/session"
	"github.com/loadout-app/loadout/internal/watcher"
)

// ProfilesLoadedMsg carries the profile list read from disk.
type ProfilesLoadedMsg struct {
	Profiles []models.Profile
}

// ProfilesSavedMsg signals the profile list was written to disk.
type ProfilesSavedMsg struct {
	Profiles []models.Profile
}

// ProcessesLoadedMsg carries a fresh process snapshot for the picker.
type ProcessesLoadedMsg struct {
	Processes []procguard.ProcessInfo
}

// ActivationResultMsg is the single completion signal of an activation
// run off the UI thread.
type ActivationResultMsg struct {
	Result session.Result
}

// DeactivatedMsg signals the active profile was cleared.
type DeactivatedMsg struct{}

// OverlayToggledMsg carries the new overlay visibility.
type OverlayToggledMsg struct {
	Visible bool
}

// BusTickMsg is the periodic tick that polls the tray bus.
type BusTickMsg struct{}

// WatcherEventMsg carries a debounced data file change.
type WatcherEventMsg struct {
	Event watcher.Event
}

// ErrorMsg carries an error to display in the status bar.
type ErrorMsg struct {
	Err error
}

// StatusMsg carries a transient status line.
type StatusMsg struct {
	Text string
}

// ClearStatusMsg clears the status display.
type ClearStatusMsg struct{}
