// Package cli implements the loadout CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "loadout",
	Short: "Gaming profiles: process cleanup, crosshair overlay, fan control",
	Long: `Loadout manages named gaming profiles. Activating a profile terminates
the configured background processes, shows an optional crosshair overlay
and flags maximum fan speed. Profiles are managed from a terminal editor
or from the system tray.`,
	// Bare "loadout" runs both surfaces.
	RunE: runRun,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(deactivateCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(psCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(trayCmd)
	rootCmd.AddCommand(versionCmd)
}
