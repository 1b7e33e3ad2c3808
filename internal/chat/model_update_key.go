package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.handleSearchKeys(msg); handled {
		return m, cmd
	}
	if handled, cmd := m.handleSuggestionKeys(msg); handled {
		return m, cmd
	}
	if handled, cmd := m.handleSidebarKeys(msg); handled {
		return m, cmd
	}

	if msg.Type == tea.KeyUp && m.input.Value() == "" && m.editingMessageID == "" {
		if m.prefillEditFromHistory() {
			return m, nil
		}
	}

	// Enter submits only with the modifier held; plain Enter is a newline.
	if msg.Type == tea.KeyEnter {
		if msg.Alt {
			return m, m.submitComposer()
		}
		m.insertInputText("\n")
		return m, nil
	}

	if msg.Type == tea.KeyRunes && !msg.Paste && strings.ContainsRune(string(msg.Runes), '\n') {
		m.insertInputText(normalizeNewlines(string(msg.Runes)))
		return m, m.noteComposerActivity()
	}
	if msg.Type == tea.KeyRunes && msg.Paste {
		m.insertInputText(normalizeNewlines(string(msg.Runes)))
		return m, m.noteComposerActivity()
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() != "" {
			m.stopTypingBroadcast()
			if m.editingMessageID != "" {
				m.exitEditMode()
			}
			m.resetComposer()
			return m, nil
		}
		return m, tea.Quit
	case tea.KeyEsc:
		if m.editingMessageID != "" {
			m.exitEditMode()
			m.resize()
			return m, nil
		}
		if m.thread.IsOpen() {
			m.closeThread()
			return m, nil
		}
		return m, nil
	case tea.KeyTab:
		m.toggleSidebar()
		return m, nil
	case tea.KeyCtrlF:
		m.startSearch("")
		return m, nil
	case tea.KeyCtrlT:
		// Toggle composer target between channel and the open thread.
		if m.thread.IsOpen() {
			m.threadFocus = !m.threadFocus
			m.resize()
		}
		return m, nil
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyEnd:
		m.refreshViewport(true)
		return m, nil
	}

	cmd := m.updateInput(msg)
	m.refreshSuggestions()
	return m, tea.Batch(cmd, m.noteComposerActivity())
}
