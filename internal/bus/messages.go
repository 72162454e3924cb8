package bus

import "github.com/loadout-app/loadout/internal/models"

// EditorMsg is a message published by the editor surface for the tray.
type EditorMsg interface{ editorMsg() }

// TrayMsg is a message published by the tray surface for the editor.
type TrayMsg interface{ trayMsg() }

// ── Editor → Tray ────────────────────────────────────────────────

// ProfilesUpdated carries the full profile list after any change.
type ProfilesUpdated struct {
	Profiles []models.Profile
}

// ActiveProfileChanged announces the new active profile, nil for none.
type ActiveProfileChanged struct {
	Name *string
}

// OverlayVisibilityChanged announces whether the overlay is shown.
type OverlayVisibilityChanged struct {
	Visible bool
}

// Shutdown tells the tray to release its icon and stop its loop.
// It is terminal: nothing follows it.
type Shutdown struct{}

func (ProfilesUpdated) editorMsg()          {}
func (ActiveProfileChanged) editorMsg()     {}
func (OverlayVisibilityChanged) editorMsg() {}
func (Shutdown) editorMsg()                 {}

// ── Tray → Editor ────────────────────────────────────────────────

// ActivateProfile asks the editor to run the activation sequence.
type ActivateProfile struct {
	Name string
}

// DeactivateProfile asks the editor to deactivate the current profile.
type DeactivateProfile struct{}

// ToggleOverlay asks the editor to flip overlay visibility.
type ToggleOverlay struct{}

// OpenSettings asks the editor to reveal the data directory.
type OpenSettings struct{}

// Exit asks the editor to shut the application down.
// It is terminal: nothing follows it.
type Exit struct{}

func (ActivateProfile) trayMsg()   {}
func (DeactivateProfile) trayMsg() {}
func (ToggleOverlay) trayMsg()     {}
func (OpenSettings) trayMsg()      {}
func (Exit) trayMsg()              {}
