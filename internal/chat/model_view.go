package chat

import (
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	statusLine := lipgloss.NewStyle().Foreground(statusColor).Render(m.statusLine())

	var lines []string
	if overlay := m.renderSearchOverlay(); overlay != "" {
		lines = append(lines, overlay)
	}
	lines = append(lines, m.viewport.View())
	if suggestions := m.renderSuggestions(); suggestions != "" {
		lines = append(lines, suggestions)
	}
	lines = append(lines, "") // margin above the composer
	lines = append(lines, m.renderInput(), statusLine)

	main := lipgloss.JoinVertical(lipgloss.Left, lines...)

	panels := make([]string, 0, 3)
	if m.sidebarOpen {
		if panel := m.renderSidebar(); panel != "" {
			panels = append(panels, panel)
		}
	}
	panels = append(panels, main)
	if m.thread.IsOpen() {
		if panel := m.renderThreadPanel(); panel != "" {
			panels = append(panels, panel)
		}
	}

	output := main
	if len(panels) > 1 {
		output = lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	}
	return m.zones.Scan(output)
}
