package chat

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type sidebarRowKind int

const (
	rowCategory sidebarRowKind = iota
	rowChannel
)

type sidebarRow struct {
	kind    sidebarRowKind
	id      string
	label   string
	unread  int
	current bool
}

// sidebarRows flattens the category tree into navigable rows, skipping the
// channels of collapsed categories.
func (m *Model) sidebarRows() []sidebarRow {
	var rows []sidebarRow
	selected := m.directory.SelectedID()
	for _, category := range m.directory.Categories() {
		rows = append(rows, sidebarRow{
			kind:  rowCategory,
			id:    category.ID,
			label: category.Name,
		})
		if !m.directory.IsExpanded(category.ID) {
			continue
		}
		for _, channel := range category.Channels {
			rows = append(rows, sidebarRow{
				kind:    rowChannel,
				id:      channel.ID,
				label:   channel.Name,
				unread:  m.unread[channel.ID],
				current: channel.ID == selected,
			})
		}
	}
	return rows
}

func (m *Model) syncSidebarIndex() {
	rows := m.sidebarRows()
	for i, row := range rows {
		if row.current {
			m.sidebarIndex = i
			return
		}
	}
	if m.sidebarIndex >= len(rows) {
		m.sidebarIndex = 0
	}
}

func (m *Model) handleSidebarKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !m.sidebarFocus {
		return false, nil
	}
	rows := m.sidebarRows()
	if len(rows) == 0 {
		if msg.Type == tea.KeyTab || msg.Type == tea.KeyEsc {
			m.toggleSidebar()
			return true, nil
		}
		return false, nil
	}
	if m.sidebarIndex >= len(rows) {
		m.sidebarIndex = len(rows) - 1
	}

	switch msg.Type {
	case tea.KeyEsc, tea.KeyTab:
		m.sidebarFocus = false
		return true, nil
	case tea.KeyUp:
		if m.sidebarIndex > 0 {
			m.sidebarIndex--
		}
		return true, nil
	case tea.KeyDown:
		if m.sidebarIndex < len(rows)-1 {
			m.sidebarIndex++
		}
		return true, nil
	case tea.KeyLeft, tea.KeyRight, tea.KeySpace:
		if rows[m.sidebarIndex].kind == rowCategory {
			m.directory.ToggleExpansion(rows[m.sidebarIndex].id)
		}
		return true, nil
	case tea.KeyEnter:
		row := rows[m.sidebarIndex]
		if row.kind == rowCategory {
			m.directory.ToggleExpansion(row.id)
			return true, nil
		}
		m.sidebarFocus = false
		if row.id == m.directory.SelectedID() {
			return true, nil
		}
		return true, m.switchChannel(row.id)
	}
	return false, nil
}

func (m *Model) renderSidebar() string {
	width := m.sidebarWidth()
	if width == 0 {
		return ""
	}
	innerWidth := width - 2

	titleStyle := lipgloss.NewStyle().Foreground(textColor).Bold(true)
	categoryStyle := lipgloss.NewStyle().Foreground(metaColor).Bold(true)
	channelStyle := lipgloss.NewStyle().Foreground(blurText)
	currentStyle := lipgloss.NewStyle().Foreground(sidebarSelect).Bold(true)
	cursorStyle := lipgloss.NewStyle().Foreground(caretColor)
	unreadStyle := lipgloss.NewStyle().Foreground(mentionColor).Bold(true)

	lines := []string{titleStyle.Render(truncateLine("agora", innerWidth)), ""}
	for i, row := range m.sidebarRows() {
		var line string
		switch row.kind {
		case rowCategory:
			marker := "▾ "
			if !m.directory.IsExpanded(row.id) {
				marker = "▸ "
			}
			line = categoryStyle.Render(truncateLine(marker+strings.ToUpper(row.label), innerWidth))
		case rowChannel:
			label := "# " + row.label
			style := channelStyle
			if row.current {
				style = currentStyle
			}
			line = style.Render(truncateLine("  "+label, innerWidth))
			if row.unread > 0 {
				line += unreadStyle.Render(fmt.Sprintf(" %d", row.unread))
			}
		}
		if m.sidebarFocus && i == m.sidebarIndex {
			line = cursorStyle.Render("›") + line
		} else {
			line = " " + line
		}
		zoneID := sidebarZoneID(row)
		lines = append(lines, m.zones.Mark(zoneID, line))
	}

	body := strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(m.height).
		Padding(0, 1).
		BorderRight(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(metaColor).
		Render(body)
}

func sidebarZoneID(row sidebarRow) string {
	if row.kind == rowCategory {
		return "cat-" + row.id
	}
	return "chan-" + row.id
}
