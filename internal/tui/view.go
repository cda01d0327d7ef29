package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MH0386/doctainr/internal/docker"
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.active {
	case tabDashboard:
		b.WriteString(m.renderDashboard())
	case tabContainers:
		b.WriteString(m.renderContainers())
	case tabImages:
		b.WriteString(m.renderImages())
	case tabVolumes:
		b.WriteString(m.renderVolumes())
	case tabSettings:
		b.WriteString(m.renderSettings())
	}

	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(m.width, 1))))
	b.WriteString("\n")
	b.WriteString(hotkeysStyle.Render(m.hotkeys()))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	return b.String()
}

func (m model) renderHeader() string {
	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	title := headerStyle.Render("Doctainr")
	return lipgloss.JoinHorizontal(lipgloss.Top, title, bar)
}

func (m model) renderDashboard() string {
	containers := m.app.Containers.Get()
	running := 0
	for _, c := range containers {
		if c.State == docker.StateRunning {
			running++
		}
	}
	stopped := len(containers) - running

	var b strings.Builder
	b.WriteString(sectionTitle("Dashboard", "Overview of your local Docker engine"))

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("Running containers", fmt.Sprintf("%d", running), "Across all projects"),
		metricCard("Stopped containers", fmt.Sprintf("%d", stopped), "Ready to restart"),
		metricCard("Images", fmt.Sprintf("%d", len(m.app.Images.Get())), "Local cache"),
		metricCard("Volumes", fmt.Sprintf("%d", len(m.app.Volumes.Get())), "Persistent data"),
	)
	b.WriteString(cards)
	b.WriteString("\n")

	host := m.app.DockerHost.Get()
	if host == "" {
		host = "environment default"
	}
	conn := "connected"
	if !m.app.Connected() {
		conn = "unavailable"
	}
	engine := cardStyle.Render(
		cardTitleStyle.Render("Engine") + "\n" +
			cardValueStyle.Render("Host: "+host) + "\n" +
			cardHintStyle.Render("Daemon: "+conn),
	)
	b.WriteString(engine)
	b.WriteString("\n")
	return b.String()
}

func metricCard(title, value, hint string) string {
	return cardStyle.Render(
		cardTitleStyle.Render(title) + "\n" +
			cardValueStyle.Render(value) + "\n" +
			cardHintStyle.Render(hint),
	)
}

func (m model) renderContainers() string {
	containers := m.app.Containers.Get()

	var b strings.Builder
	b.WriteString(sectionTitle("Containers", "Manage running services"))
	if len(containers) == 0 {
		b.WriteString(emptyStyle.Render("No containers. Press r to refresh."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(tableHeaderStyle.Render(containerRow("NAME", "IMAGE", "PORTS", pad("STATE", 10), "STATUS")))
	b.WriteString("\n")
	for i, c := range containers {
		// Pad before styling so the ANSI codes don't skew the column width.
		pill := statusStopped.Render(pad(c.State.Label(), 10))
		if c.State == docker.StateRunning {
			pill = statusRunning.Render(pad(c.State.Label(), 10))
		}
		line := containerRow(c.Name, c.Image, c.Ports, pill, c.Status)
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render("▸ " + line))
		} else {
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func containerRow(name, image, ports, state, status string) string {
	return fmt.Sprintf("%s  %s  %s  %s  %s",
		pad(name, 20), pad(image, 24), pad(ports, 16), state, status)
}

func (m model) renderImages() string {
	images := m.app.Images.Get()

	var b strings.Builder
	b.WriteString(sectionTitle("Images", "Local image cache"))
	if len(images) == 0 {
		b.WriteString(emptyStyle.Render("No images. Press r to refresh."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(tableHeaderStyle.Render(imageRow("REPOSITORY", "TAG", "IMAGE ID", "SIZE")))
	b.WriteString("\n")
	for _, img := range images {
		b.WriteString(rowStyle.Render(imageRow(img.Repository, img.Tag, img.ID, img.Size)))
		b.WriteString("\n")
	}
	return b.String()
}

func imageRow(repo, tag, id, size string) string {
	return fmt.Sprintf("%s  %s  %s  %s", pad(repo, 32), pad(tag, 12), pad(id, 14), size)
}

func (m model) renderVolumes() string {
	volumes := m.app.Volumes.Get()

	var b strings.Builder
	b.WriteString(sectionTitle("Volumes", "Persistent storage"))
	if len(volumes) == 0 {
		b.WriteString(emptyStyle.Render("No volumes. Press r to refresh."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(tableHeaderStyle.Render(volumeRow("NAME", "DRIVER", "MOUNTPOINT", "SIZE")))
	b.WriteString("\n")
	for _, v := range volumes {
		b.WriteString(rowStyle.Render(volumeRow(v.Name, v.Driver, v.Mountpoint, v.Size)))
		b.WriteString("\n")
	}
	return b.String()
}

func volumeRow(name, driver, mountpoint, size string) string {
	return fmt.Sprintf("%s  %s  %s  %s", pad(name, 24), pad(driver, 10), pad(mountpoint, 40), size)
}

func (m model) renderSettings() string {
	var b strings.Builder
	b.WriteString(sectionTitle("Settings", "Connection and preferences"))

	b.WriteString(rowStyle.Render("Docker host"))
	b.WriteString("\n")
	if m.editingHost {
		b.WriteString(rowStyle.Render(m.hostInput.View()))
	} else {
		host := m.app.DockerHost.Get()
		if host == "" {
			host = "(environment default)"
		}
		b.WriteString(rowStyle.Render(host))
	}
	b.WriteString("\n\n")
	b.WriteString(rowStyle.Render(fmt.Sprintf("Refresh interval: %ds", m.cfg.RefreshSeconds)))
	b.WriteString("\n")
	return b.String()
}

func (m model) renderStatus() string {
	if m.app.Loading.Get() {
		return actionStyle.Render(m.spin.View() + " Loading...")
	}
	if errMsg := m.app.LastError.Get(); errMsg != "" {
		return errorStyle.Render("Error: " + errMsg)
	}
	if action := m.app.LastAction.Get(); action != "" {
		return actionStyle.Render("Last action: " + action)
	}
	return actionStyle.Render("Ready")
}

func (m model) hotkeys() string {
	switch {
	case m.editingHost:
		return "[enter] apply  [esc] cancel"
	case m.active == tabContainers:
		action := "start/stop"
		if containers := m.app.Containers.Get(); m.cursor < len(containers) {
			action = strings.ToLower(containers[m.cursor].State.ActionLabel())
		}
		return fmt.Sprintf("[↑↓] select  [enter] %s  [r]efresh  [tab] next page  [q]uit", action)
	case m.active == tabSettings:
		return "[e]dit host  [t]est connection  [s]ave  [tab] next page  [q]uit"
	default:
		return "[1-5] pages  [tab] next page  [r]efresh  [q]uit"
	}
}

func sectionTitle(title, subtitle string) string {
	return sectionTitleStyle.Render(title) + "\n" +
		sectionSubtitleStyle.Render(subtitle) + "\n\n"
}

// pad truncates or right-pads a plain string to display width w, measured
// with lipgloss so multi-byte and wide runes keep columns aligned. Styled
// strings must be padded before styling.
func pad(s string, w int) string {
	if w < 1 {
		return ""
	}
	if lipgloss.Width(s) > w {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes)) > w-1 {
			runes = runes[:len(runes)-1]
		}
		// A trimmed wide rune can leave the cell a column short, so
		// space-fill back up to w.
		s = string(runes) + "…"
	}
	return s + strings.Repeat(" ", w-lipgloss.Width(s))
}
