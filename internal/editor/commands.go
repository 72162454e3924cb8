package editor

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/loadout-app/loadout/internal/config"
	"github.com/loadout-app/loadout/internal/models"
	"github.com/loadout-app/loadout/internal/profile"
	"github.com/loadout-app/loadout/internal/watcher"
)

func loadProfilesCmd() tea.Cmd {
	return func() tea.Msg {
		dir, err := config.DataDir()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		profiles, err := profile.Load(dir)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load profiles: %w", err)}
		}
		return ProfilesLoadedMsg{Profiles: profiles}
	}
}

func saveProfilesCmd(profiles []models.Profile) tea.Cmd {
	return func() tea.Msg {
		dir, err := config.DataDir()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		if err := profile.Save(profiles, dir); err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to save profiles: %w", err)}
		}
		return ProfilesSavedMsg{Profiles: profiles}
	}
}

func refreshProcessesCmd(lister processLister) tea.Cmd {
	return func() tea.Msg {
		processes, err := lister.List()
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to list processes: %w", err)}
		}
		return ProcessesLoadedMsg{Processes: processes}
	}
}

// activateCmd runs the activation sequence off the UI thread and
// delivers exactly one completion message.
func activateCmd(sess sessionAPI, p models.Profile) tea.Cmd {
	return func() tea.Msg {
		return ActivationResultMsg{Result: sess.Activate(p)}
	}
}

func deactivateCmd(sess sessionAPI) tea.Cmd {
	return func() tea.Msg {
		sess.Deactivate()
		return DeactivatedMsg{}
	}
}

func toggleOverlayCmd(sess sessionAPI) tea.Cmd {
	return func() tea.Msg {
		return OverlayToggledMsg{Visible: sess.ToggleOverlay()}
	}
}

// busTickCmd schedules the next bus poll.
func busTickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(_ time.Time) tea.Msg {
		return BusTickMsg{}
	})
}

// watchEventsCmd blocks on the watcher's event channel; re-armed after
// every delivery.
func watchEventsCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-w.Events()
		if !ok {
			return nil
		}
		return WatcherEventMsg{Event: ev}
	}
}

// openDataDirCmd reveals ~/.loadout in the system file manager.
func openDataDirCmd() tea.Cmd {
	return func() tea.Msg {
		dir, err := config.DataDir()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		if err := config.EnsureDataDir(); err != nil {
			return ErrorMsg{Err: err}
		}

		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", dir)
		case "windows":
			cmd = exec.Command("explorer", dir)
		default:
			cmd = exec.Command("xdg-open", dir)
		}
		if err := cmd.Start(); err != nil {
			log.Printf("Failed to open %s: %v", dir, err)
			return ErrorMsg{Err: fmt.Errorf("failed to open settings: %w", err)}
		}
		return StatusMsg{Text: "Opened " + dir}
	}
}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(_ time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
