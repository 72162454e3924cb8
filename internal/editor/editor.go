// Package editor implements the interactive profile editor surface.
package editor

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/loadout-app/loadout/internal/bus"
	"github.com/loadout-app/loadout/internal/models"
	"github.com/loadout-app/loadout/internal/procguard"
	"github.com/loadout-app/loadout/internal/session"
	"github.com/loadout-app/loadout/internal/watcher"
)

// ErrNoTTY is returned when the editor is started without a terminal.
var ErrNoTTY = errors.New("editor requires an interactive terminal")

// Options carries the editor surface's collaborators.
type Options struct {
	Session  *session.Session
	Guard    *procguard.Guard
	Bus      *bus.EditorEnd
	Watcher  *watcher.Watcher
	Settings *models.Settings
}

// Run launches the editor TUI. Blocks until the user quits or the tray
// asks for shutdown.
func Run(opts Options) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTTY
	}

	model := NewModel(opts.Session, opts.Guard, opts.Bus, opts.Watcher, opts.Settings)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
