package cli

import (
	"github.com/spf13/cobra"

	"github.com/loadout-app/loadout/internal/editor"
	"github.com/loadout-app/loadout/internal/procguard"
	"github.com/loadout-app/loadout/internal/session"
	"github.com/loadout-app/loadout/internal/watcher"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Run the profile editor without the tray",
	Args:  cobra.NoArgs,
	RunE:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	state, cleanup, err := startup()
	if err != nil {
		return err
	}
	defer cleanup()

	guard := procguard.New()
	sess := session.New(guard, nil, *state.cfg)

	w, err := watcher.New()
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}

	return editor.Run(editor.Options{
		Session:  sess,
		Guard:    guard,
		Watcher:  w,
		Settings: state.settings,
	})
}
