package editor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/x/ansi"

	"github.com/loadout-app/loadout/internal/procguard"
)

// ProcessPicker is the kill-list picker overlay: a filterable list of
// running processes with checkboxes for the profile's targets.
type ProcessPicker struct {
	processes []procguard.ProcessInfo
	filtered  []procguard.ProcessInfo
	checked   map[string]bool

	filterInput  textinput.Model
	cursor       int
	scrollOffset int
	height       int
	width        int
	loading      bool
}

// NewProcessPicker creates a picker pre-checked with the profile's
// current targets.
func NewProcessPicker(targets []string, width int) *ProcessPicker {
	fi := textinput.New()
	fi.Placeholder = "Filter processes"
	fi.CharLimit = 64
	fi.Width = width - 12
	fi.Focus()

	checked := make(map[string]bool, len(targets))
	for _, t := range targets {
		checked[procguard.Normalize(t)] = true
	}

	return &ProcessPicker{
		checked:     checked,
		filterInput: fi,
		width:       width,
		height:      12,
		loading:     true,
	}
}

// SetProcesses replaces the process snapshot.
func (pp *ProcessPicker) SetProcesses(processes []procguard.ProcessInfo) {
	pp.processes = processes
	pp.loading = false
	pp.applyFilter()
}

// FilterInput exposes the filter field for update forwarding.
func (pp *ProcessPicker) FilterInput() *textinput.Model {
	return &pp.filterInput
}

// ApplyFilter recomputes the visible rows from the filter text.
func (pp *ProcessPicker) ApplyFilter() {
	pp.applyFilter()
}

func (pp *ProcessPicker) applyFilter() {
	filter := strings.ToLower(strings.TrimSpace(pp.filterInput.Value()))
	pp.filtered = pp.filtered[:0]
	for _, p := range pp.processes {
		if filter == "" || strings.Contains(strings.ToLower(p.Name), filter) {
			pp.filtered = append(pp.filtered, p)
		}
	}
	if pp.cursor >= len(pp.filtered) {
		pp.cursor = len(pp.filtered) - 1
	}
	if pp.cursor < 0 {
		pp.cursor = 0
	}
	pp.ensureVisible()
}

// MoveUp moves the cursor up.
func (pp *ProcessPicker) MoveUp() {
	if pp.cursor > 0 {
		pp.cursor--
	}
	pp.ensureVisible()
}

// MoveDown moves the cursor down.
func (pp *ProcessPicker) MoveDown() {
	if pp.cursor < len(pp.filtered)-1 {
		pp.cursor++
	}
	pp.ensureVisible()
}

func (pp *ProcessPicker) ensureVisible() {
	if pp.cursor < pp.scrollOffset {
		pp.scrollOffset = pp.cursor
	}
	if pp.cursor >= pp.scrollOffset+pp.height {
		pp.scrollOffset = pp.cursor - pp.height + 1
	}
}

// ToggleSelected flips the checkbox under the cursor.
func (pp *ProcessPicker) ToggleSelected() {
	if pp.cursor < 0 || pp.cursor >= len(pp.filtered) {
		return
	}
	name := procguard.Normalize(pp.filtered[pp.cursor].Name)
	if pp.checked[name] {
		delete(pp.checked, name)
	} else {
		pp.checked[name] = true
	}
}

// Targets returns the checked process names, sorted for stable saves.
func (pp *ProcessPicker) Targets() []string {
	targets := make([]string, 0, len(pp.checked))
	for name := range pp.checked {
		targets = append(targets, name)
	}
	sort.Strings(targets)
	return targets
}

// View renders the picker overlay.
func (pp *ProcessPicker) View() string {
	parts := make([]string, 0, pp.height+6)
	parts = append(parts, overlayTitleStyle.Render("Select processes to terminate"))
	parts = append(parts, pp.filterInput.View(), "")

	switch {
	case pp.loading:
		parts = append(parts, hintStyle.Render("Loading processes..."))
	case len(pp.filtered) == 0:
		parts = append(parts, hintStyle.Render("No matching processes"))
	default:
		end := len(pp.filtered)
		if pp.scrollOffset+pp.height < end {
			end = pp.scrollOffset + pp.height
		}
		for i := pp.scrollOffset; i < end; i++ {
			p := pp.filtered[i]
			box := "[ ]"
			if pp.checked[procguard.Normalize(p.Name)] {
				box = pickerCheckedStyle.Render("[x]")
			}
			line := fmt.Sprintf("%s %s  %s", box, p.Name,
				hintStyle.Render(fmt.Sprintf("pid %d  %d KB", p.PID, p.MemoryKB)))
			line = ansi.Truncate(line, pp.width-8, "…")
			if i == pp.cursor {
				line = selectedItemStyle.Render(line)
			}
			parts = append(parts, line)
		}
	}

	parts = append(parts, "", hintStyle.Render("Space toggle  |  Ctrl+r refresh  |  Esc done"))

	formWidth := pp.width
	if formWidth > 70 {
		formWidth = 70
	}
	if formWidth < 30 {
		formWidth = 30
	}
	return overlayBoxStyle.Width(formWidth).Render(strings.Join(parts, "\n"))
}
