package tray

import (
	"fmt"

	"github.com/loadout-app/loadout/internal/bus"
	"github.com/loadout-app/loadout/internal/models"
)

// EntryKind distinguishes flyout rows.
type EntryKind int

const (
	// EntryProfile activates (or re-activates) a named profile.
	EntryProfile EntryKind = iota
	// EntryPlaceholder is the disabled "No profiles" row.
	EntryPlaceholder
	// EntryDeactivate clears the active profile.
	EntryDeactivate
	// EntryExit shuts the application down.
	EntryExit
)

// Entry is one row of the flyout menu.
type Entry struct {
	Kind        EntryKind
	Title       string
	ProfileName string
	Active      bool
	Disabled    bool
}

// BuildFlyout computes the flyout rows for the current profile list and
// active profile. Pure: the controller rebuilds the menu wholesale from
// its output on every change.
func BuildFlyout(profiles []models.Profile, activeName *string) []Entry {
	entries := make([]Entry, 0, len(profiles)+2)

	if len(profiles) == 0 {
		entries = append(entries, Entry{
			Kind:     EntryPlaceholder,
			Title:    "No profiles",
			Disabled: true,
		})
	}
	for _, p := range profiles {
		active := activeName != nil && *activeName == p.Name
		title := p.Name
		if active {
			title = fmt.Sprintf("● %s", p.Name)
		}
		entries = append(entries, Entry{
			Kind:        EntryProfile,
			Title:       title,
			ProfileName: p.Name,
			Active:      active,
		})
	}

	if activeName != nil {
		entries = append(entries, Entry{Kind: EntryDeactivate, Title: "Deactivate"})
	}
	entries = append(entries, Entry{Kind: EntryExit, Title: "Exit"})
	return entries
}

// Select translates a chosen entry into its bus message. ok is false
// for rows that carry no message (placeholder).
func Select(e Entry) (msg bus.TrayMsg, ok bool) {
	switch e.Kind {
	case EntryProfile:
		return bus.ActivateProfile{Name: e.ProfileName}, true
	case EntryDeactivate:
		return bus.DeactivateProfile{}, true
	case EntryExit:
		return bus.Exit{}, true
	}
	return nil, false
}

// Tooltip formats the tray icon tooltip for the active profile.
func Tooltip(activeName *string) string {
	if activeName == nil {
		return "Loadout — inactive"
	}
	return fmt.Sprintf("Loadout — %s", *activeName)
}
