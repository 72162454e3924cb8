package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/loadout-app/loadout/internal/bus"
	"github.com/loadout-app/loadout/internal/config"
	"github.com/loadout-app/loadout/internal/editor"
	"github.com/loadout-app/loadout/internal/models"
	"github.com/loadout-app/loadout/internal/procguard"
	"github.com/loadout-app/loadout/internal/profile"
	"github.com/loadout-app/loadout/internal/session"
	"github.com/loadout-app/loadout/internal/tray"
	"github.com/loadout-app/loadout/internal/watcher"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the tray and the profile editor together",
	Long: `Run the full application: the system tray icon plus the interactive
profile editor. This is also what bare "loadout" does.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

// appState is everything the long-running commands share at startup.
type appState struct {
	settings *models.Settings
	cfg      *models.AppConfig
	profiles []models.Profile
}

// startup acquires the single-instance lock, redirects logging to the
// data directory and loads persisted state. The returned cleanup
// releases the lock and the log file.
func startup() (*appState, func(), error) {
	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return nil, nil, fmt.Errorf("checking running instance: %w", err)
	}
	if running {
		return nil, nil, fmt.Errorf("loadout is already running (pid %d)", info.PID)
	}
	if err := config.SaveInstanceInfo(models.NewInstanceInfo(os.Getpid())); err != nil {
		return nil, nil, fmt.Errorf("writing instance file: %w", err)
	}

	closeLog, err := config.SetupLogFile()
	if err != nil {
		_ = config.RemoveInstanceInfo()
		return nil, nil, err
	}

	cleanup := func() {
		_ = config.RemoveInstanceInfo()
		closeLog()
	}

	settings, err := config.LoadSettings()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	cfg, err := config.LoadAppConfig()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	dir, err := config.DataDir()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	profiles, err := profile.Load(dir)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &appState{settings: settings, cfg: cfg, profiles: profiles}, cleanup, nil
}

func runRun(cmd *cobra.Command, args []string) error {
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

	// The editor runs off the main goroutine; systray insists on main.
	editorDone := make(chan error, 1)
	go func() {
		editorDone <- editor.Run(editor.Options{
			Session:  sess,
			Guard:    guard,
			Bus:      editorEnd,
			Watcher:  w,
			Settings: state.settings,
		})
		// Whatever ended the editor, take the tray down with it.
		tray.Quit()
	}()

	tray.Run(tray.Options{
		Bus:            trayEnd,
		Settings:       state.settings,
		Profiles:       state.profiles,
		ActiveProfile:  state.cfg.ActiveProfile,
		OverlayVisible: state.cfg.OverlayVisible,
		OnOpenEditor: func() {
			// Editor is already on the launching terminal.
			log.Println("Editor is running in the launching terminal")
		},
		OnExit: func() {
			trayEnd.Close()
		},
	})

	if err := <-editorDone; err != nil {
		log.Printf("Editor exited: %v", err)
		return err
	}
	return nil
}
