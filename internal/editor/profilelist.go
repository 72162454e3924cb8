package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/loadout-app/loadout/internal/models"
)

// ProfileList is the profile list component for the left panel.
type ProfileList struct {
	profiles     []models.Profile
	activeName   *string
	cursor       int
	scrollOffset int
	height       int
	width        int
}

// NewProfileList creates a new profile list.
func NewProfileList() *ProfileList {
	return &ProfileList{}
}

// SetProfiles updates the list data, keeping the cursor in bounds.
func (pl *ProfileList) SetProfiles(profiles []models.Profile) {
	pl.profiles = profiles
	if pl.cursor >= len(profiles) {
		pl.cursor = len(profiles) - 1
	}
	if pl.cursor < 0 {
		pl.cursor = 0
	}
}

// SetActive updates which profile is marked active.
func (pl *ProfileList) SetActive(name *string) {
	pl.activeName = name
}

// SetSize sets the visible dimensions.
func (pl *ProfileList) SetSize(w, h int) {
	pl.width = w
	pl.height = h
}

// Selected returns the profile under the cursor, or nil.
func (pl *ProfileList) Selected() *models.Profile {
	if pl.cursor < 0 || pl.cursor >= len(pl.profiles) {
		return nil
	}
	return &pl.profiles[pl.cursor]
}

// SelectedIndex returns the cursor position, -1 when empty.
func (pl *ProfileList) SelectedIndex() int {
	if len(pl.profiles) == 0 {
		return -1
	}
	return pl.cursor
}

// MoveUp moves the cursor up.
func (pl *ProfileList) MoveUp() {
	if pl.cursor > 0 {
		pl.cursor--
	}
	pl.ensureVisible()
}

// MoveDown moves the cursor down.
func (pl *ProfileList) MoveDown() {
	if pl.cursor < len(pl.profiles)-1 {
		pl.cursor++
	}
	pl.ensureVisible()
}

func (pl *ProfileList) ensureVisible() {
	if pl.height <= 0 {
		return
	}
	if pl.cursor < pl.scrollOffset {
		pl.scrollOffset = pl.cursor
	}
	if pl.cursor >= pl.scrollOffset+pl.height {
		pl.scrollOffset = pl.cursor - pl.height + 1
	}
}

// View renders the list.
func (pl *ProfileList) View() string {
	if len(pl.profiles) == 0 {
		return hintStyle.Render("No profiles yet. Press 'a' to add one.")
	}

	var b strings.Builder
	end := len(pl.profiles)
	if pl.height > 0 && pl.scrollOffset+pl.height < end {
		end = pl.scrollOffset + pl.height
	}

	for i := pl.scrollOffset; i < end; i++ {
		p := pl.profiles[i]
		active := pl.activeName != nil && *pl.activeName == p.Name

		marker := "  "
		style := profileInactiveStyle
		if active {
			marker = "● "
			style = profileActiveStyle
		}

		line := marker + p.Name
		if n := len(p.ProcessesToKill); n > 0 {
			line += hintStyle.Render(fmt.Sprintf("  (%d targets)", n))
		}
		if pl.width > 0 {
			line = ansi.Truncate(line, pl.width, "…")
		}

		rendered := style.Render(line)
		if i == pl.cursor {
			rendered = selectedItemStyle.Render(line)
		}
		b.WriteString(rendered)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
