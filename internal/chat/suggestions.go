package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openagora/agora/internal/core"
)

const suggestionLimit = 8

type suggestionKind int

const (
	suggestionNone suggestionKind = iota
	suggestionMention
	suggestionCommand
)

type suggestionItem struct {
	Display string
	Insert  string
}

func (m *Model) clearSuggestions() {
	m.suggestions = nil
	m.suggestionIndex = -1
	m.suggestionStart = 0
	m.suggestionKind = suggestionNone
}

// refreshSuggestions re-derives the popup from the composer content and
// cursor. Runs after every input change; the mention token is whatever sits
// between the nearest unescaped '@' and the cursor.
func (m *Model) refreshSuggestions() {
	value := m.input.Value()
	pos := m.inputCursorPos()
	if value == m.lastInputValue && pos == m.lastInputPos {
		return
	}
	m.lastInputValue = value
	m.lastInputPos = pos

	if strings.HasPrefix(value, "/") && !strings.Contains(value, " ") {
		m.buildCommandSuggestions(value)
		m.resize()
		return
	}

	query, ok := core.DetectMentionQuery(value, pos)
	if !ok {
		if m.suggestionKind != suggestionNone {
			m.clearSuggestions()
			m.resize()
		}
		return
	}

	candidates := core.FilterCandidates(m.mentionPool, query.Query, suggestionLimit)
	if len(candidates) == 0 {
		m.clearSuggestions()
		m.resize()
		return
	}

	items := make([]suggestionItem, 0, len(candidates))
	for _, user := range candidates {
		display := "@" + user.DisplayName
		if !strings.EqualFold(user.DisplayName, user.Username) {
			display += "  (" + user.Username + ")"
		}
		items = append(items, suggestionItem{Display: display, Insert: user.DisplayName})
	}
	m.suggestions = items
	m.suggestionIndex = 0
	m.suggestionStart = query.Start
	m.suggestionKind = suggestionMention
	m.resize()
}

func (m *Model) buildCommandSuggestions(value string) {
	var items []suggestionItem
	for _, command := range allCommands {
		if strings.HasPrefix(command.Name, value) {
			display := command.Name
			if command.Usage != "" {
				display += " " + command.Usage
			}
			display += "  · " + command.Desc
			items = append(items, suggestionItem{Display: display, Insert: command.Name})
		}
		if len(items) == suggestionLimit {
			break
		}
	}
	if len(items) == 0 {
		m.clearSuggestions()
		return
	}
	m.suggestions = items
	m.suggestionIndex = 0
	m.suggestionStart = 0
	m.suggestionKind = suggestionCommand
}

// handleSuggestionKeys owns the keyboard while the popup is visible. Enter
// inserts the highlighted candidate and never submits; arrow keys cycle.
func (m *Model) handleSuggestionKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	if len(m.suggestions) == 0 {
		return false, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.clearSuggestions()
		m.resize()
		return true, nil
	case tea.KeyUp:
		m.suggestionIndex--
		if m.suggestionIndex < 0 {
			m.suggestionIndex = len(m.suggestions) - 1
		}
		return true, nil
	case tea.KeyDown:
		m.suggestionIndex++
		if m.suggestionIndex >= len(m.suggestions) {
			m.suggestionIndex = 0
		}
		return true, nil
	case tea.KeyTab, tea.KeyEnter:
		if m.suggestionIndex < 0 {
			m.suggestionIndex = 0
		}
		if m.suggestionIndex < len(m.suggestions) {
			m.applySuggestion(m.suggestions[m.suggestionIndex])
		}
		return true, nil
	}
	return false, nil
}

func (m *Model) applySuggestion(item suggestionItem) {
	if m.suggestionKind == suggestionCommand {
		m.input.SetValue(item.Insert + " ")
		m.input.CursorEnd()
		m.clearSuggestions()
		m.lastInputValue = m.input.Value()
		m.lastInputPos = m.inputCursorPos()
		m.resize()
		return
	}

	updated, cursor := core.InsertMention(
		m.input.Value(), m.inputCursorPos(), m.suggestionStart, item.Insert)
	m.input.SetValue(updated)
	m.setInputCursor(cursor)
	m.clearSuggestions()
	m.lastInputValue = m.input.Value()
	m.lastInputPos = m.inputCursorPos()
	m.resize()
}

func (m *Model) suggestionHeight() int {
	if len(m.suggestions) == 0 {
		return 0
	}
	return lipgloss.Height(m.renderSuggestions())
}

func (m *Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return ""
	}
	normalStyle := lipgloss.NewStyle().Foreground(metaColor)
	selectedStyle := lipgloss.NewStyle().Foreground(mentionColor).Bold(true)

	lines := make([]string, 0, len(m.suggestions))
	for i, suggestion := range m.suggestions {
		prefix := "  "
		style := normalStyle
		if i == m.suggestionIndex {
			prefix = "> "
			style = selectedStyle
		}
		line := prefix + suggestion.Display
		if width := m.mainWidth(); width > 0 {
			line = truncateLine(line, width)
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}
