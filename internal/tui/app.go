package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MH0386/doctainr/internal/config"
	"github.com/MH0386/doctainr/internal/state"
)

// Run starts the dashboard loop and blocks until the user quits.
func Run(app *state.AppState, cfg *config.Config, cfgPath string) error {
	m := newModel(app, cfg, cfgPath)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
