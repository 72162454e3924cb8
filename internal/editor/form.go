package editor

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/loadout-app/loadout/internal/models"
)

// Form field indexes.
const (
	fieldName = iota
	fieldKillList
	fieldImagePath
	fieldXOffset
	fieldYOffset
	fieldOverlayEnabled
	fieldFanSpeedMax
	fieldCount
)

// ProfileForm is the add/edit profile form shown in the right panel.
type ProfileForm struct {
	mode      string // "add" or "edit"
	editIndex int    // profile index for edit mode, -1 for add

	nameInput  textinput.Model
	imageInput textinput.Model
	xInput     textinput.Model
	yInput     textinput.Model

	targets        []string
	overlayEnabled bool
	fanSpeedMax    bool

	focusIndex int
	width      int
}

// NewProfileForm creates a form for a new profile.
func NewProfileForm(width int) *ProfileForm {
	f := newForm(width)
	f.mode = "add"
	f.editIndex = -1
	defaults := models.NewProfile("")
	f.overlayEnabled = defaults.OverlayEnabled
	f.targets = []string{}
	return f
}

// NewEditForm creates a form pre-filled from an existing profile.
func NewEditForm(p models.Profile, index, width int) *ProfileForm {
	f := newForm(width)
	f.mode = "edit"
	f.editIndex = index
	f.nameInput.SetValue(p.Name)
	f.imageInput.SetValue(p.CrosshairImagePath)
	f.xInput.SetValue(strconv.Itoa(p.CrosshairXOffset))
	f.yInput.SetValue(strconv.Itoa(p.CrosshairYOffset))
	f.targets = append([]string{}, p.ProcessesToKill...)
	f.overlayEnabled = p.OverlayEnabled
	f.fanSpeedMax = p.FanSpeedMax
	return f
}

func newForm(width int) *ProfileForm {
	name := textinput.New()
	name.Placeholder = "Profile name"
	name.CharLimit = 50
	name.Width = width - 24

	image := textinput.New()
	image.Placeholder = "Path to a 100x100 PNG (optional)"
	image.CharLimit = 260
	image.Width = width - 24

	x := textinput.New()
	x.Placeholder = "0"
	x.CharLimit = 5
	x.Width = 8
	x.SetValue("0")

	y := textinput.New()
	y.Placeholder = "0"
	y.CharLimit = 5
	y.Width = 8
	y.SetValue("0")

	f := &ProfileForm{
		nameInput:  name,
		imageInput: image,
		xInput:     x,
		yInput:     y,
		width:      width,
	}
	f.nameInput.Focus()
	return f
}

// EditIndex returns the profile index being edited, -1 for an insert.
func (f *ProfileForm) EditIndex() int { return f.editIndex }

// FocusIndex returns the currently focused field.
func (f *ProfileForm) FocusIndex() int { return f.focusIndex }

// FocusNext moves to the next field.
func (f *ProfileForm) FocusNext() {
	f.blurAll()
	f.focusIndex = (f.focusIndex + 1) % fieldCount
	f.focusCurrent()
}

// FocusPrev moves to the previous field.
func (f *ProfileForm) FocusPrev() {
	f.blurAll()
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = fieldCount - 1
	}
	f.focusCurrent()
}

func (f *ProfileForm) blurAll() {
	f.nameInput.Blur()
	f.imageInput.Blur()
	f.xInput.Blur()
	f.yInput.Blur()
}

func (f *ProfileForm) focusCurrent() {
	switch f.focusIndex {
	case fieldName:
		f.nameInput.Focus()
	case fieldImagePath:
		f.imageInput.Focus()
	case fieldXOffset:
		f.xInput.Focus()
	case fieldYOffset:
		f.yInput.Focus()
	}
}

// ToggleCurrent flips the focused toggle field. Returns true when the
// focused field was a toggle.
func (f *ProfileForm) ToggleCurrent() bool {
	switch f.focusIndex {
	case fieldOverlayEnabled:
		f.overlayEnabled = !f.overlayEnabled
		return true
	case fieldFanSpeedMax:
		f.fanSpeedMax = !f.fanSpeedMax
		return true
	}
	return false
}

// OnOffsetField reports whether an offset input is focused.
func (f *ProfileForm) OnOffsetField() bool {
	return f.focusIndex == fieldXOffset || f.focusIndex == fieldYOffset
}

// OnKillListField reports whether the kill-list row is focused.
func (f *ProfileForm) OnKillListField() bool {
	return f.focusIndex == fieldKillList
}

// NudgeOffset adjusts the focused offset by delta.
func (f *ProfileForm) NudgeOffset(delta int) {
	input := &f.xInput
	if f.focusIndex == fieldYOffset {
		input = &f.yInput
	}
	v, err := strconv.Atoi(strings.TrimSpace(input.Value()))
	if err != nil {
		v = 0
	}
	input.SetValue(strconv.Itoa(v + delta))
}

// Recenter zeroes both offsets.
func (f *ProfileForm) Recenter() {
	f.xInput.SetValue("0")
	f.yInput.SetValue("0")
}

// ClearImage empties the image path.
func (f *ProfileForm) ClearImage() {
	f.imageInput.SetValue("")
}

// SetTargets replaces the kill list from the picker.
func (f *ProfileForm) SetTargets(targets []string) {
	f.targets = targets
}

// Targets returns the current kill list.
func (f *ProfileForm) Targets() []string {
	return f.targets
}

// Offsets parses the current offset values; malformed input reads as 0.
func (f *ProfileForm) Offsets() (x, y int) {
	x, _ = strconv.Atoi(strings.TrimSpace(f.xInput.Value()))
	y, _ = strconv.Atoi(strings.TrimSpace(f.yInput.Value()))
	return x, y
}

// Profile assembles the form state into a profile.
func (f *ProfileForm) Profile() models.Profile {
	x, y := f.Offsets()
	return models.Profile{
		Name:               strings.TrimSpace(f.nameInput.Value()),
		ProcessesToKill:    append([]string{}, f.targets...),
		CrosshairImagePath: strings.TrimSpace(f.imageInput.Value()),
		CrosshairXOffset:   x,
		CrosshairYOffset:   y,
		OverlayEnabled:     f.overlayEnabled,
		FanSpeedMax:        f.fanSpeedMax,
	}
}

// NameInput returns the name input for update forwarding.
func (f *ProfileForm) NameInput() *textinput.Model { return &f.nameInput }

// ImageInput returns the image path input for update forwarding.
func (f *ProfileForm) ImageInput() *textinput.Model { return &f.imageInput }

// XInput returns the x offset input for update forwarding.
func (f *ProfileForm) XInput() *textinput.Model { return &f.xInput }

// YInput returns the y offset input for update forwarding.
func (f *ProfileForm) YInput() *textinput.Model { return &f.yInput }

// View renders the form.
func (f *ProfileForm) View() string {
	title := "Add Profile"
	if f.mode == "edit" {
		title = "Edit Profile"
	}

	row := func(idx int, label, value string) string {
		l := formLabelStyle.Render(label)
		if f.focusIndex == idx {
			l = fieldCursorStyle.Render(formLabelStyle.Render(label))
		}
		return l + " " + value
	}

	toggle := func(on bool) string {
		if on {
			return toggleOnStyle.Render("on")
		}
		return toggleOffStyle.Render("off")
	}

	killSummary := hintStyle.Render("none (Enter to pick)")
	if len(f.targets) > 0 {
		killSummary = formValueStyle.Render(strings.Join(f.targets, ", "))
	}

	parts := []string{
		overlayTitleStyle.Render(title),
		row(fieldName, "Name:", f.nameInput.View()),
		row(fieldKillList, "Kill list:", killSummary),
		row(fieldImagePath, "Crosshair:", f.imageInput.View()),
		row(fieldXOffset, "X offset:", f.xInput.View()),
		row(fieldYOffset, "Y offset:", f.yInput.View()),
		row(fieldOverlayEnabled, "Overlay:", toggle(f.overlayEnabled)),
		row(fieldFanSpeedMax, "Max fans:", toggle(f.fanSpeedMax)),
		"",
		hintStyle.Render("Ctrl+s save  |  Tab next field  |  Esc cancel"),
	}
	if f.OnOffsetField() {
		parts = append(parts, hintStyle.Render("↑/↓ nudge by 1  |  Ctrl+r recenter"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
