package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/loadout-app/loadout/internal/procguard"
)

var psCmd = &cobra.Command{
	Use:   "ps [filter]",
	Short: "List running processes",
	Long: `List running processes as the kill-list picker sees them. An optional
filter matches process names case-insensitively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPs,
}

func runPs(cmd *cobra.Command, args []string) error {
	processes, err := procguard.New().List()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	filter := ""
	if len(args) > 0 {
		filter = strings.ToLower(args[0])
	}

	header := fmt.Sprintf("%-32s %8s %12s %8s", "NAME", "PID", "MEM (KB)", "CPU %")
	fmt.Println(styleLabel.Render(header))

	shown := 0
	for _, p := range processes {
		if filter != "" && !strings.Contains(strings.ToLower(p.Name), filter) {
			continue
		}
		name := ansi.Truncate(p.Name, 32, "…")
		line := fmt.Sprintf("%-32s %8d %12d %8.1f", name, p.PID, p.MemoryKB, p.CPUPercent)
		if procguard.IsProtected(p.Name) {
			fmt.Println(styleHint.Render(line + "  (protected)"))
		} else {
			fmt.Println(styleValue.Render(line))
		}
		shown++
	}

	if shown == 0 {
		fmt.Println(styleHint.Render("no matching processes"))
	}
	return nil
}
