package cli

import (
	"errors"
	"log"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/loadout-app/loadout/internal/bus"
	"github.com/loadout-app/loadout/internal/config"
	"github.com/loadout-app/loadout/internal/models"
	"github.com/loadout-app/loadout/internal/procguard"
	"github.com/loadout-app/loadout/internal/profile"
	"github.com/loadout-app/loadout/internal/session"
	"github.com/loadout-app/loadout/internal/tray"
	"github.com/loadout-app/loadout/internal/watcher"
)

var trayCmd = &cobra.Command{
	Use:   "tray",
	Short: "Run the tray surface only",
	Long: `Run Loadout without the terminal editor: the tray icon with its
profile flyout, backed by a headless activation service. Useful for
autostart entries.`,
	Args: cobra.NoArgs,
	RunE: runTray,
}

func runTray(cmd *cobra.Command, args []string) error {
	state, cleanup, err := startup()
	if err != nil {
		return err
	}
	defer cleanup()

	guard := procguard.New()
	editorEnd, trayEnd := bus.New()
	sess := session.New(guard, editorEnd, *state.cfg)

	w, err := watcher.New()
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}

	// Headless command processor standing in for the editor surface.
	svcDone := make(chan struct{})
	go func() {
		defer close(svcDone)
		serviceLoop(editorEnd, sess, w, pollInterval(state))
		tray.Quit()
	}()

	tray.Run(tray.Options{
		Bus:            trayEnd,
		Settings:       state.settings,
		Profiles:       state.profiles,
		ActiveProfile:  state.cfg.ActiveProfile,
		OverlayVisible: state.cfg.OverlayVisible,
		OnOpenEditor: func() {
			log.Println(`No editor in tray mode; run "loadout edit" in a terminal`)
		},
		OnExit: func() {
			trayEnd.Close()
		},
	})

	<-svcDone
	return nil
}

func pollInterval(state *appState) time.Duration {
	if state.settings != nil && state.settings.Polling.EditorTickMs > 0 {
		return time.Duration(state.settings.Polling.EditorTickMs) * time.Millisecond
	}
	return 100 * time.Millisecond
}

// serviceLoop drains tray commands the way the editor surface would,
// minus any UI. Terminates on Exit or bus disconnect.
func serviceLoop(end *bus.EditorEnd, sess *session.Session, w *watcher.Watcher, every time.Duration) {
	defer func() {
		sess.Shutdown()
		w.Stop()
		end.Close()
	}()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var profiles = loadProfilesOrLog()

	for {
		select {
		case ev, ok := <-w.Events():
			if !ok {
				continue
			}
			if ev.Type == watcher.EventProfilesChanged {
				profiles = loadProfilesOrLog()
				_ = end.Send(bus.ProfilesUpdated{Profiles: profiles})
			}

		case <-ticker.C:
			msg, ok, err := end.TryReceive()
			if err != nil {
				if !errors.Is(err, bus.ErrDisconnected) {
					log.Printf("Service receive: %v", err)
				}
				return
			}
			if !ok {
				continue
			}
			switch t := msg.(type) {
			case bus.ActivateProfile:
				if i := profile.FindIndex(profiles, t.Name); i >= 0 {
					res := sess.Activate(profiles[i])
					log.Printf("Activated %s: %s", t.Name, res.KillReport.Summary())
					if res.OverlayErr != nil {
						log.Printf("Overlay unavailable: %v", res.OverlayErr)
					}
				} else {
					log.Printf("Unknown profile: %s", t.Name)
				}
			case bus.DeactivateProfile:
				sess.Deactivate()
			case bus.ToggleOverlay:
				sess.ToggleOverlay()
			case bus.OpenSettings:
				openSettingsDir()
			case bus.Exit:
				_ = end.Send(bus.Shutdown{})
				return
			}
		}
	}
}

func loadProfilesOrLog() []models.Profile {
	dir, err := config.DataDir()
	if err != nil {
		log.Printf("Data dir: %v", err)
		return nil
	}
	profiles, err := profile.Load(dir)
	if err != nil {
		log.Printf("Loading profiles: %v", err)
		return nil
	}
	return profiles
}

// openSettingsDir reveals ~/.loadout in the system file manager.
func openSettingsDir() {
	dir, err := config.DataDir()
	if err != nil {
		log.Printf("Data dir: %v", err)
		return
	}
	if err := config.EnsureDataDir(); err != nil {
		log.Printf("Data dir: %v", err)
		return
	}

	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", dir)
	case "windows":
		c = exec.Command("explorer", dir)
	default:
		c = exec.Command("xdg-open", dir)
	}
	if err := c.Start(); err != nil {
		log.Printf("Failed to open %s: %v", dir, err)
	}
}
