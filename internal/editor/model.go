package editor

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/loadout-app/loadout/internal/bus"
	"github.com/loadout-app/loadout/internal/models"
	"github.com/loadout-app/loadout/internal/procguard"
	"github.com/loadout-app/loadout/internal/profile"
	"github.com/loadout-app/loadout/internal/session"
	"github.com/loadout-app/loadout/internal/watcher"
)

// sessionAPI is the slice of session.Session the editor drives.
type sessionAPI interface {
	Activate(p models.Profile) session.Result
	Deactivate()
	ToggleOverlay() bool
	UpdateOverlayOffsets(xOff, yOff int)
	ActiveProfile() *string
	OverlayVisible() bool
	Shutdown()
}

// processLister provides process snapshots for the picker.
type processLister interface {
	List() ([]procguard.ProcessInfo, error)
}

// confirmMode values.
const (
	confirmNone = iota
	confirmDelete
	confirmQuit
)

// Model is the root Bubbletea model for the editor surface.
type Model struct {
	sess      sessionAPI
	lister    processLister
	end       *bus.EditorEnd
	watch     *watcher.Watcher
	pollEvery time.Duration

	// Profile data
	profiles []models.Profile

	// UI state
	list         *ProfileList
	form         *ProfileForm
	picker       *ProcessPicker
	focusedPanel int // 0=list, 1=form
	width        int
	height       int

	// Confirm mode
	confirmMode  int
	confirmIndex int

	// Status display
	status     string
	statusErr  bool
	activating bool

	// Bus polling stops once the tray end disconnects.
	busOpen bool
}

// NewModel creates the initial editor model.
func NewModel(sess sessionAPI, lister processLister, end *bus.EditorEnd, watch *watcher.Watcher, settings *models.Settings) Model {
	pollEvery := 100 * time.Millisecond
	if settings != nil && settings.Polling.EditorTickMs > 0 {
		pollEvery = time.Duration(settings.Polling.EditorTickMs) * time.Millisecond
	}
	return Model{
		sess:      sess,
		lister:    lister,
		end:       end,
		watch:     watch,
		pollEvery: pollEvery,
		list:      NewProfileList(),
		busOpen:   end != nil,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadProfilesCmd()}
	if m.busOpen {
		cmds = append(cmds, busTickCmd(m.pollEvery))
	}
	if m.watch != nil {
		cmds = append(cmds, watchEventsCmd(m.watch))
	}
	return tea.Batch(cmds...)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ProfilesLoadedMsg:
		m.profiles = msg.Profiles
		m.list.SetProfiles(m.profiles)
		m.list.SetActive(m.sess.ActiveProfile())
		m.publish(bus.ProfilesUpdated{Profiles: m.profiles})
		return m, nil

	case ProfilesSavedMsg:
		m.profiles = msg.Profiles
		m.list.SetProfiles(m.profiles)
		m.form = nil
		m.focusedPanel = 0
		m.publish(bus.ProfilesUpdated{Profiles: m.profiles})
		return m.setStatus("Saved", false)

	case ProcessesLoadedMsg:
		if m.picker != nil {
			m.picker.SetProcesses(msg.Processes)
		}
		return m, nil

	case ActivationResultMsg:
		m.activating = false
		m.list.SetActive(m.sess.ActiveProfile())
		return m.setStatus(activationStatus(msg.Result), msg.Result.OverlayErr != nil)

	case DeactivatedMsg:
		m.list.SetActive(nil)
		return m.setStatus("Profile deactivated", false)

	case OverlayToggledMsg:
		if msg.Visible {
			return m.setStatus("Overlay shown", false)
		}
		return m.setStatus("Overlay hidden", false)

	case BusTickMsg:
		return m.pollBus()

	case WatcherEventMsg:
		var cmds []tea.Cmd
		if msg.Event.Type == watcher.EventProfilesChanged {
			cmds = append(cmds, loadProfilesCmd())
		}
		cmds = append(cmds, watchEventsCmd(m.watch))
		return m, tea.Batch(cmds...)

	case ErrorMsg:
		return m.setStatus(msg.Err.Error(), true)

	case StatusMsg:
		return m.setStatus(msg.Text, false)

	case ClearStatusMsg:
		m.status = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

// pollBus consumes at most one tray message per tick, preserving the
// tray's send order across ticks.
func (m Model) pollBus() (tea.Model, tea.Cmd) {
	if !m.busOpen {
		return m, nil
	}

	msg, ok, err := m.end.TryReceive()
	if err != nil {
		if !errors.Is(err, bus.ErrDisconnected) {
			return m.setStatus(err.Error(), true)
		}
		m.busOpen = false
		return m, nil
	}
	if !ok {
		return m, busTickCmd(m.pollEvery)
	}

	var cmd tea.Cmd
	switch t := msg.(type) {
	case bus.ActivateProfile:
		if i := profile.FindIndex(m.profiles, t.Name); i >= 0 {
			m.activating = true
			cmd = activateCmd(m.sess, m.profiles[i])
		} else {
			m2, c := m.setStatus(fmt.Sprintf("Unknown profile: %s", t.Name), true)
			return m2, tea.Batch(c, busTickCmd(m.pollEvery))
		}
	case bus.DeactivateProfile:
		cmd = deactivateCmd(m.sess)
	case bus.ToggleOverlay:
		cmd = toggleOverlayCmd(m.sess)
	case bus.OpenSettings:
		cmd = openDataDirCmd()
	case bus.Exit:
		return m.quit()
	}
	return m, tea.Batch(cmd, busTickCmd(m.pollEvery))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Confirmation prompts intercept everything.
	if m.confirmMode != confirmNone {
		return m.handleConfirmKey(msg)
	}

	if m.picker != nil {
		return m.handlePickerKey(msg)
	}

	if key.Matches(msg, globalKeys.Quit) {
		if m.activating {
			m.confirmMode = confirmQuit
			return m, nil
		}
		return m.quit()
	}

	if m.form != nil {
		return m.handleFormKey(msg)
	}

	return m.handleListKey(msg)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, confirmKeys.Yes):
		mode := m.confirmMode
		m.confirmMode = confirmNone
		switch mode {
		case confirmDelete:
			updated := profile.Delete(m.profiles, m.confirmIndex)
			return m, saveProfilesCmd(updated)
		case confirmQuit:
			return m.quit()
		}
	case key.Matches(msg, confirmKeys.No):
		m.confirmMode = confirmNone
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, listKeys.Up):
		m.list.MoveUp()

	case key.Matches(msg, listKeys.Down):
		m.list.MoveDown()

	case key.Matches(msg, listKeys.Add):
		m.form = NewProfileForm(m.rightPanelWidth())
		m.focusedPanel = 1

	case key.Matches(msg, listKeys.Edit):
		if p := m.list.Selected(); p != nil {
			m.form = NewEditForm(*p, m.list.SelectedIndex(), m.rightPanelWidth())
			m.focusedPanel = 1
		}

	case key.Matches(msg, listKeys.Delete):
		if m.list.Selected() != nil {
			m.confirmMode = confirmDelete
			m.confirmIndex = m.list.SelectedIndex()
		}

	case key.Matches(msg, listKeys.Activate):
		if p := m.list.Selected(); p != nil && !m.activating {
			m.activating = true
			return m, activateCmd(m.sess, *p)
		}

	case key.Matches(msg, listKeys.Deactivate):
		if m.sess.ActiveProfile() != nil {
			return m, deactivateCmd(m.sess)
		}

	case key.Matches(msg, listKeys.Overlay):
		return m, toggleOverlayCmd(m.sess)
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	switch {
	case key.Matches(msg, formKeys.Save):
		return m.saveForm()

	case key.Matches(msg, formKeys.Cancel):
		m.form = nil
		m.focusedPanel = 0
		return m, nil

	case key.Matches(msg, formKeys.Next):
		f.FocusNext()
		return m, nil

	case key.Matches(msg, formKeys.Prev):
		f.FocusPrev()
		return m, nil

	case key.Matches(msg, formKeys.Recenter) && f.OnOffsetField():
		f.Recenter()
		return m, m.liveOffsetUpdate()

	case key.Matches(msg, formKeys.NudgeUp) && f.OnOffsetField():
		f.NudgeOffset(1)
		return m, m.liveOffsetUpdate()

	case key.Matches(msg, formKeys.NudgeDn) && f.OnOffsetField():
		f.NudgeOffset(-1)
		return m, m.liveOffsetUpdate()

	case key.Matches(msg, formKeys.Clear) && f.FocusIndex() == fieldImagePath:
		f.ClearImage()
		return m, nil

	case key.Matches(msg, formKeys.Picker) && f.OnKillListField():
		m.picker = NewProcessPicker(f.Targets(), m.rightPanelWidth())
		return m, refreshProcessesCmd(m.lister)

	case key.Matches(msg, formKeys.Toggle):
		if f.ToggleCurrent() {
			return m, nil
		}
	}

	// Forward everything else to the focused text input.
	var cmd tea.Cmd
	switch f.FocusIndex() {
	case fieldName:
		*f.NameInput(), cmd = f.NameInput().Update(msg)
	case fieldImagePath:
		*f.ImageInput(), cmd = f.ImageInput().Update(msg)
	case fieldXOffset:
		*f.XInput(), cmd = f.XInput().Update(msg)
	case fieldYOffset:
		*f.YInput(), cmd = f.YInput().Update(msg)
	}
	return m, cmd
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, pickerKeys.Done):
		m.form.SetTargets(m.picker.Targets())
		m.picker = nil
		return m, nil

	case key.Matches(msg, pickerKeys.Up):
		m.picker.MoveUp()
		return m, nil

	case key.Matches(msg, pickerKeys.Down):
		m.picker.MoveDown()
		return m, nil

	case key.Matches(msg, pickerKeys.Toggle):
		m.picker.ToggleSelected()
		return m, nil

	case key.Matches(msg, pickerKeys.Refresh):
		return m, refreshProcessesCmd(m.lister)
	}

	var cmd tea.Cmd
	*m.picker.FilterInput(), cmd = m.picker.FilterInput().Update(msg)
	m.picker.ApplyFilter()
	return m, cmd
}

// saveForm validates the form and writes the updated profile list.
// Validation failures show inline; nothing is persisted.
func (m Model) saveForm() (tea.Model, tea.Cmd) {
	p := m.form.Profile()
	if err := profile.Validate(&p); err != nil {
		return m.setStatus(err.Error(), true)
	}
	if !profile.IsNameUnique(m.profiles, p.Name, m.form.EditIndex()) {
		return m.setStatus(fmt.Sprintf("A profile named %q already exists", p.Name), true)
	}

	updated := make([]models.Profile, len(m.profiles))
	copy(updated, m.profiles)
	if i := m.form.EditIndex(); i >= 0 && i < len(updated) {
		updated[i] = p
	} else {
		updated = append(updated, p)
	}
	return m, saveProfilesCmd(updated)
}

// liveOffsetUpdate repositions a running overlay while the active
// profile's offsets are being edited.
func (m Model) liveOffsetUpdate() tea.Cmd {
	active := m.sess.ActiveProfile()
	if active == nil || m.form == nil {
		return nil
	}
	if i := m.form.EditIndex(); i < 0 || i >= len(m.profiles) || m.profiles[i].Name != *active {
		return nil
	}
	x, y := m.form.Offsets()
	return func() tea.Msg {
		m.sess.UpdateOverlayOffsets(x, y)
		return nil
	}
}

// quit publishes Shutdown, tears the session down and exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.publish(bus.Shutdown{})
	if m.end != nil {
		m.end.Close()
	}
	m.sess.Shutdown()
	if m.watch != nil {
		m.watch.Stop()
	}
	return m, tea.Quit
}

func (m Model) publish(msg bus.EditorMsg) {
	if m.end == nil || !m.busOpen {
		return
	}
	_ = m.end.Send(msg)
}

func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.status = text
	m.statusErr = isErr
	return m, clearStatusCmd()
}

func (m *Model) updateDimensions() {
	listHeight := m.height - 5
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.SetSize(m.leftPanelWidth()-4, listHeight)
}

func (m Model) leftPanelWidth() int {
	w := int(float64(m.width) * 0.4)
	if w < 24 {
		w = 24
	}
	return w
}

func (m Model) rightPanelWidth() int {
	w := m.width - m.leftPanelWidth()
	if w < 32 {
		w = 32
	}
	return w
}

// activationStatus formats one activation outcome for the status bar.
func activationStatus(res session.Result) string {
	status := fmt.Sprintf("Activated %s", res.Profile.Name)
	if !res.KillReport.Empty() {
		status += ": " + res.KillReport.Summary()
	}
	if res.OverlayErr != nil {
		status += "  |  overlay unavailable: " + res.OverlayErr.Error()
	}
	return status
}
