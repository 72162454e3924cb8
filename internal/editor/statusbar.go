package editor

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func renderStatusBar(m *Model, width int) string {
	if m.confirmMode == confirmDelete {
		name := ""
		if m.confirmIndex >= 0 && m.confirmIndex < len(m.profiles) {
			name = m.profiles[m.confirmIndex].Name
		}
		return renderConfirmBar(fmt.Sprintf("Delete profile %q? (y/n)", name), width)
	}
	if m.confirmMode == confirmQuit {
		return renderConfirmBar("Activation in progress. Quit? (y/n)", width)
	}

	if m.status != "" {
		line := " " + ansi.Truncate(m.status, width-2, "…")
		if m.statusErr {
			return statusBarStyle.Background(colorRed).Width(width).Render(line)
		}
		return statusBarStyle.Width(width).Render(
			" " + lipgloss.NewStyle().Foreground(colorGreen).Render(ansi.Truncate(m.status, width-2, "…")))
	}

	hints := getKeyHints(m)
	return statusBarStyle.Width(width).Render(" " + ansi.Truncate(hints, width-2, "…"))
}

func getKeyHints(m *Model) string {
	if m.picker != nil {
		return keyHint("Space", "toggle") + "  " + keyHint("Ctrl+r", "refresh") + "  " + keyHint("Esc", "done")
	}
	if m.form != nil {
		return keyHint("Ctrl+s", "save") + "  " + keyHint("Tab", "next field") + "  " + keyHint("Esc", "cancel")
	}
	return keyHint("Ctrl+q", "quit") + "  " + keyHint("a", "add") + "  " + keyHint("e", "edit") + "  " +
		keyHint("s", "activate") + "  " + keyHint("d", "deactivate") + "  " +
		keyHint("o", "overlay") + "  " + keyHint("x", "delete")
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderConfirmBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorYellow).
		Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}).
		Width(width).
		Render(" " + msg)
}
