package tray

import (
	"errors"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/getlantern/systray"

	"github.com/loadout-app/loadout/internal/bus"
	"github.com/loadout-app/loadout/internal/models"
)

const maxProfileSlots = 10

var (
	end          *bus.TrayEnd
	onExit       func()
	onOpenEditor func()
	tickEvery    time.Duration
	docsURL      string
	bugURL       string

	tracker        *ClickTracker
	profiles       []models.Profile
	activeName     *string
	overlayVisible bool

	headerItem     *systray.MenuItem
	noProfilesItem *systray.MenuItem
	deactivateItem *systray.MenuItem
	toggleItem     *systray.MenuItem
	settingsItem   *systray.MenuItem
	docsItem       *systray.MenuItem
	bugItem        *systray.MenuItem
	exitItem       *systray.MenuItem

	// Pre-allocated profile menu slots
	profileSlots [maxProfileSlots]*systray.MenuItem

	// Maps slot index → flyout entry for selection
	slotMu      sync.RWMutex
	slotEntries [maxProfileSlots]Entry
	flyoutShown bool
)

// Options carries what the tray surface needs from the caller.
type Options struct {
	Bus            *bus.TrayEnd
	Settings       *models.Settings
	Profiles       []models.Profile
	ActiveProfile  *string
	OverlayVisible bool
	// OnOpenEditor runs on a tray icon double click.
	OnOpenEditor func()
	// OnExit runs when the tray surface shuts down (cleanup here).
	OnExit func()
}

// Run starts the system tray. This blocks the calling goroutine (must
// be main on darwin).
func Run(opts Options) {
	end = opts.Bus
	onExit = opts.OnExit
	onOpenEditor = opts.OnOpenEditor
	profiles = opts.Profiles
	activeName = opts.ActiveProfile
	overlayVisible = opts.OverlayVisible
	flyoutShown = true
	tracker = NewClickTracker(true)

	tickEvery = 50 * time.Millisecond
	docsURL = "https://github.com/loadout-app/loadout#readme"
	bugURL = "https://github.com/loadout-app/loadout/issues/new"
	if opts.Settings != nil {
		if opts.Settings.Polling.TrayTickMs > 0 {
			tickEvery = time.Duration(opts.Settings.Polling.TrayTickMs) * time.Millisecond
		}
		if opts.Settings.Links.Documentation != "" {
			docsURL = opts.Settings.Links.Documentation
		}
		if opts.Settings.Links.BugReport != "" {
			bugURL = opts.Settings.Links.BugReport
		}
	}

	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTooltip(Tooltip(activeName))

	// Header: clicking it feeds the flyout state machine.
	headerItem = systray.AddMenuItem("Loadout", "Show or hide the profile list")

	systray.AddSeparator()

	// Pre-allocate profile slots (systray cannot remove items)
	for i := 0; i < maxProfileSlots; i++ {
		profileSlots[i] = systray.AddMenuItem("", "")
		profileSlots[i].Hide()
	}

	noProfilesItem = systray.AddMenuItem("No profiles", "")
	noProfilesItem.Disable()
	noProfilesItem.Hide()

	deactivateItem = systray.AddMenuItem("Deactivate", "Deactivate the current profile")
	deactivateItem.Hide()

	systray.AddSeparator()

	toggleItem = systray.AddMenuItem(toggleTitle(), "Toggle the crosshair overlay")
	settingsItem = systray.AddMenuItem("Open Settings", "Open the Loadout data directory")
	docsItem = systray.AddMenuItem("Documentation", "Open the documentation")
	bugItem = systray.AddMenuItem("Report Bug", "Report a problem")

	systray.AddSeparator()

	exitItem = systray.AddMenuItem("Exit", "Shut down Loadout")

	rebuildFlyout()

	go handleEvents()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

// handleEvents is the controller loop: a 50ms tick drains the bus and
// advances the click tracker; menu clicks are handled as they arrive.
// Nothing here blocks on a single event source.
func handleEvents() {
	ticker := time.NewTicker(tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !drainBus() {
				systray.Quit()
				return
			}
			applyAction(tracker.Tick(time.Now()))

		case <-headerItem.ClickedCh:
			applyAction(tracker.Click(time.Now()))

		case <-profileSlots[0].ClickedCh:
			selectSlot(0)
		case <-profileSlots[1].ClickedCh:
			selectSlot(1)
		case <-profileSlots[2].ClickedCh:
			selectSlot(2)
		case <-profileSlots[3].ClickedCh:
			selectSlot(3)
		case <-profileSlots[4].ClickedCh:
			selectSlot(4)
		case <-profileSlots[5].ClickedCh:
			selectSlot(5)
		case <-profileSlots[6].ClickedCh:
			selectSlot(6)
		case <-profileSlots[7].ClickedCh:
			selectSlot(7)
		case <-profileSlots[8].ClickedCh:
			selectSlot(8)
		case <-profileSlots[9].ClickedCh:
			selectSlot(9)

		case <-deactivateItem.ClickedCh:
			selectEntry(Entry{Kind: EntryDeactivate})

		case <-toggleItem.ClickedCh:
			send(bus.ToggleOverlay{})

		case <-settingsItem.ClickedCh:
			send(bus.OpenSettings{})

		case <-docsItem.ClickedCh:
			openURL(docsURL)

		case <-bugItem.ClickedCh:
			openURL(bugURL)

		case <-exitItem.ClickedCh:
			selectEntry(Entry{Kind: EntryExit})
		}
	}
}

// drainBus consumes every queued editor message. Returns false when the
// tray should terminate: Shutdown received or the bus disconnected.
func drainBus() bool {
	for {
		msg, ok, err := end.TryReceive()
		if err != nil {
			if !errors.Is(err, bus.ErrDisconnected) {
				log.Printf("Tray bus receive: %v", err)
			}
			return false
		}
		if !ok {
			return true
		}

		switch m := msg.(type) {
		case bus.ProfilesUpdated:
			profiles = m.Profiles
			rebuildFlyout()
		case bus.ActiveProfileChanged:
			activeName = m.Name
			systray.SetTooltip(Tooltip(activeName))
			rebuildFlyout()
		case bus.OverlayVisibilityChanged:
			overlayVisible = m.Visible
			toggleItem.SetTitle(toggleTitle())
		case bus.Shutdown:
			return false
		}
	}
}

func applyAction(action Action) {
	switch action {
	case ActionOpenEditor:
		if onOpenEditor != nil {
			onOpenEditor()
		}
	case ActionOpenFlyout:
		setFlyoutShown(true)
	case ActionCloseFlyout:
		setFlyoutShown(false)
	}
}

// selectSlot handles a click on the profile slot at index i.
func selectSlot(i int) {
	slotMu.RLock()
	entry := slotEntries[i]
	slotMu.RUnlock()

	if entry.Kind != EntryProfile || entry.ProfileName == "" {
		return
	}
	selectEntry(entry)
}

// selectEntry translates a flyout selection into exactly one bus
// message and closes the flyout.
func selectEntry(e Entry) {
	msg, ok := Select(e)
	if !ok {
		return
	}
	tracker.FlyoutClosed()
	setFlyoutShown(false)
	send(msg)
}

func send(msg bus.TrayMsg) {
	if err := end.Send(msg); err != nil {
		log.Printf("Tray send %T: %v", msg, err)
		systray.Quit()
	}
}

// rebuildFlyout recomputes the flyout rows and pushes them into the
// pre-allocated menu slots.
func rebuildFlyout() {
	entries := BuildFlyout(profiles, activeName)

	slotMu.Lock()
	for i := range slotEntries {
		slotEntries[i] = Entry{}
	}
	showPlaceholder := false
	showDeactivate := false
	slot := 0
	for _, e := range entries {
		switch e.Kind {
		case EntryProfile:
			if slot < maxProfileSlots {
				slotEntries[slot] = e
				slot++
			}
		case EntryPlaceholder:
			showPlaceholder = true
		case EntryDeactivate:
			showDeactivate = true
		}
	}
	slotMu.Unlock()

	for i := 0; i < maxProfileSlots; i++ {
		if slotEntries[i].Kind == EntryProfile && slotEntries[i].ProfileName != "" {
			profileSlots[i].SetTitle(slotEntries[i].Title)
		}
	}
	noProfilesItem.Hide()
	deactivateItem.Hide()
	if flyoutShown {
		if showPlaceholder {
			noProfilesItem.Show()
		}
		if showDeactivate {
			deactivateItem.Show()
		}
	}
	refreshSlotVisibility()
}

func setFlyoutShown(shown bool) {
	flyoutShown = shown
	rebuildFlyout()
}

func refreshSlotVisibility() {
	slotMu.RLock()
	defer slotMu.RUnlock()
	for i := 0; i < maxProfileSlots; i++ {
		if flyoutShown && slotEntries[i].Kind == EntryProfile && slotEntries[i].ProfileName != "" {
			profileSlots[i].Show()
		} else {
			profileSlots[i].Hide()
		}
	}
}

func toggleTitle() string {
	if overlayVisible {
		return "Hide Overlay"
	}
	return "Show Overlay"
}

// openURL launches the system browser. $BROWSER wins when set.
func openURL(url string) {
	if url == "" {
		return
	}
	if browser := strings.TrimSpace(os.Getenv("BROWSER")); browser != "" {
		parts := strings.Fields(browser)
		cmd := exec.Command(parts[0], append(parts[1:], url)...)
		if err := cmd.Start(); err == nil {
			return
		}
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open %s: %v", url, err)
	}
}
