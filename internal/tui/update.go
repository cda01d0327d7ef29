package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MH0386/doctainr/internal/config"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateChangedMsg:
		m.cursor = clamp(m.cursor, len(m.app.Containers.Get()))
		return m, waitForChange(m.changes)

	case refreshTickMsg:
		m.app.RefreshAll()
		return m, tickCmd(m.refreshInterval())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.editingHost {
			return m.handleHostEditing(msg)
		}
		return m.handleNormalMode(msg)
	}

	return m, nil
}

// handleHostEditing handles keys while the settings host field is focused.
func (m model) handleHostEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editingHost = false
		m.hostInput.Blur()
		m.app.SetDockerHost(m.hostInput.Value())
		m.app.RecordAction("Docker host updated (takes effect on restart)")
		return m, nil
	case "esc":
		m.editingHost = false
		m.hostInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.hostInput, cmd = m.hostInput.Update(msg)
	return m, cmd
}

func (m model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.active = (m.active + 1) % tab(len(tabNames))
		return m, nil

	case "shift+tab":
		m.active = (m.active + tab(len(tabNames)) - 1) % tab(len(tabNames))
		return m, nil

	case "1", "2", "3", "4", "5":
		m.active = tab(msg.String()[0] - '1')
		return m, nil

	case "r":
		m.app.RefreshAll()
		return m, nil

	case "up", "k":
		if m.active == tabContainers && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.active == tabContainers {
			m.cursor = clamp(m.cursor+1, len(m.app.Containers.Get()))
		}
		return m, nil

	case "enter":
		if m.active == tabContainers {
			containers := m.app.Containers.Get()
			if m.cursor < len(containers) {
				c := containers[m.cursor]
				m.app.SetContainerState(c.ID, c.State.Toggle())
			}
		}
		return m, nil

	case "e":
		if m.active == tabSettings {
			m.editingHost = true
			m.hostInput.SetValue(m.app.DockerHost.Get())
			m.hostInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case "t":
		if m.active == tabSettings {
			m.app.TestConnection()
		}
		return m, nil

	case "s":
		if m.active == tabSettings {
			m.cfg.DockerHost = m.app.DockerHost.Get()
			if err := config.Save(m.cfgPath, m.cfg); err != nil {
				m.app.RecordError("Failed to save settings: " + err.Error())
			} else {
				m.app.RecordAction("Saved settings")
			}
		}
		return m, nil
	}

	return m, nil
}

// clamp keeps a cursor inside a list of length n.
func clamp(cursor, n int) int {
	if n == 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
