package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// stateChangedMsg is sent when any engine signal changes.
type stateChangedMsg struct{}

// refreshTickMsg triggers a periodic full refresh.
type refreshTickMsg time.Time

// waitForChange blocks on the engine's coalesced notification channel and
// emits a stateChangedMsg. Update re-arms it after every delivery.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return stateChangedMsg{}
	}
}

// tickCmd returns a command that fires after the refresh interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}
