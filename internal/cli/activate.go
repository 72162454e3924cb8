package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loadout-app/loadout/internal/config"
	"github.com/loadout-app/loadout/internal/procguard"
	"github.com/loadout-app/loadout/internal/profile"
)

var activateCmd = &cobra.Command{
	Use:   "activate <profile>",
	Short: "Activate a profile from the command line",
	Long: `Kill the profile's target processes and mark it active. One-shot:
no overlay surface is created; a running tray or editor instance picks
the new state up from config.json.`,
	Args: cobra.ExactArgs(1),
	RunE: runActivate,
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Clear the active profile",
	Args:  cobra.NoArgs,
	RunE:  runDeactivate,
}

func runActivate(cmd *cobra.Command, args []string) error {
	dir, err := config.DataDir()
	if err != nil {
		return err
	}
	profiles, err := profile.Load(dir)
	if err != nil {
		return err
	}

	i := profile.FindIndex(profiles, args[0])
	if i < 0 {
		return fmt.Errorf("no profile named %q", args[0])
	}
	p := profiles[i]

	report := procguard.New().Kill(p.ProcessesToKill)

	cfg, err := config.LoadAppConfig()
	if err != nil {
		return err
	}
	cfg.ActiveProfile = &p.Name
	if err := config.SaveAppConfig(cfg); err != nil {
		return err
	}

	fmt.Println(styleSuccess.Render(fmt.Sprintf("Activated %s", p.Name)))
	if !report.Empty() {
		fmt.Println(styleLabel.Render("  " + report.Summary()))
	}
	if len(report.Failed) > 0 {
		fmt.Println(styleWarning.Render("  some processes could not be terminated"))
	}
	if p.OverlayEnabled && p.CrosshairImagePath != "" {
		fmt.Println(styleHint.Render("  overlay requires the tray or editor surface"))
	}
	return nil
}

func runDeactivate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return err
	}
	if cfg.ActiveProfile == nil {
		fmt.Println(styleHint.Render("No profile is active"))
		return nil
	}
	name := *cfg.ActiveProfile
	cfg.ActiveProfile = nil
	if err := config.SaveAppConfig(cfg); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render(fmt.Sprintf("Deactivated %s", name)))
	return nil
}
