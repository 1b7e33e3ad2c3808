package chat

import tea "github.com/charmbracelet/bubbletea"

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	case liveEventMsg:
		return m.handleLiveEvent(msg)
	case directoryMsg:
		return m.handleDirectoryMsg(msg)
	case usersMsg:
		return m.handleUsersMsg(msg)
	case notificationsMsg:
		return m.handleNotificationsMsg(msg)
	case historyMsg:
		return m.handleHistoryMsg(msg)
	case threadMsg:
		return m.handleThreadMsg(msg)
	case sentMsg:
		return m.handleSentMsg(msg)
	case editResultMsg:
		return m.handleEditResultMsg(msg)
	case deleteResultMsg:
		return m.handleDeleteResultMsg(msg)
	case toggleResultMsg:
		return m.handleToggleResultMsg(msg)
	case directoryEditMsg:
		return m.handleDirectoryEditMsg(msg)
	case searchDebounceMsg:
		return m, m.handleSearchDebounceMsg(msg)
	case searchResultMsg:
		return m.handleSearchResultMsg(msg)
	case typingIdleMsg:
		return m, m.handleTypingIdleMsg()
	case typingPruneMsg:
		return m, nil // repaint; View prunes expired entries itself
	default:
		cmd := m.updateInput(msg)
		m.refreshSuggestions()
		return m, cmd
	}
}

func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}
