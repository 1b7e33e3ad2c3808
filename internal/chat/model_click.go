package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openagora/agora/internal/types"
)

func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	return m.handleClick(msg)
}

// handleClick resolves the bubblezone hit under the cursor. Zones are
// named kind-id, so the prefix picks the action.
func (m *Model) handleClick(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if zoneInfo := m.zones.Get("new-messages-bar"); zoneInfo.InBounds(msg) {
		m.refreshViewport(true)
		return m, nil
	}

	for _, row := range m.sidebarRows() {
		if !m.zones.Get(sidebarZoneID(row)).InBounds(msg) {
			continue
		}
		if row.kind == rowCategory {
			m.directory.ToggleExpansion(row.id)
			return m, nil
		}
		if row.id == m.directory.SelectedID() {
			return m, nil
		}
		return m, m.switchChannel(row.id)
	}

	for _, message := range m.feed.Messages() {
		if m.zones.Get("thread-"+message.ID).InBounds(msg) {
			return m, m.openThread(message.ID)
		}
		for _, pill := range message.Reactions {
			zoneID := "pill-" + message.ID + "-" + pill.EmojiCode
			if m.zones.Get(zoneID).InBounds(msg) {
				return m, m.toggleReactionCmd(message.ID, pill.EmojiCode)
			}
		}
		if m.zones.Get("author-"+message.ID).InBounds(msg) {
			m.insertMentionOf(message)
			return m, nil
		}
		if m.zones.Get("msg-"+message.ID).InBounds(msg) {
			if message.IsThreadStarter() {
				return m, m.openThread(message.ID)
			}
			return m, nil
		}
	}
	return m, nil
}

// insertMentionOf drops an @-mention of the clicked author into the composer.
func (m *Model) insertMentionOf(message types.MessageWithDetails) {
	name := authorHandle(message)
	if message.Author != nil && message.Author.DisplayName != "" {
		name = message.Author.DisplayName
	}
	if name == "" {
		return
	}
	value := m.input.Value()
	if value != "" && !strings.HasSuffix(value, " ") {
		value += " "
	}
	m.input.SetValue(value + "@" + name + " ")
	m.input.CursorEnd()
	m.lastInputValue = m.input.Value()
	m.lastInputPos = m.inputCursorPos()
	m.resize()
}
