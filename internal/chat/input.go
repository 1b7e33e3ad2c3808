package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
)

func newInputModel() textarea.Model {
	input := textarea.New()
	input.Placeholder = "Message"
	input.Prompt = "> "
	input.CharLimit = 4000
	input.ShowLineNumbers = false
	input.SetHeight(1)
	applyInputStyles(&input, textColor, blurText)
	input.Focus()
	return input
}

func applyInputStyles(input *textarea.Model, focusColor, blurColor lipgloss.Color) {
	input.FocusedStyle.Base = lipgloss.NewStyle().Foreground(focusColor).Background(inputBg)
	input.FocusedStyle.Text = lipgloss.NewStyle().Foreground(focusColor).Background(inputBg)
	input.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(caretColor).Background(inputBg)
	input.FocusedStyle.CursorLine = lipgloss.NewStyle().Background(inputBg)
	input.BlurredStyle.Base = lipgloss.NewStyle().Foreground(blurColor).Background(inputBg)
	input.BlurredStyle.Text = lipgloss.NewStyle().Foreground(blurColor).Background(inputBg)
	input.BlurredStyle.Prompt = lipgloss.NewStyle().Foreground(caretColor).Background(inputBg)
	input.BlurredStyle.CursorLine = lipgloss.NewStyle().Background(inputBg)
}

func (m *Model) insertInputText(text string) {
	if text == "" {
		return
	}
	m.input.InsertString(text)
	m.refreshSuggestions()
	m.resize()
}

// inputCursorPos maps the textarea's (row, col) cursor onto a rune offset
// into the full value, which is what the mention detector works in.
func (m *Model) inputCursorPos() int {
	value := m.input.Value()
	if value == "" {
		return 0
	}
	lines := strings.Split(value, "\n")
	row := m.input.Line()
	if row < 0 {
		row = 0
	}
	if row >= len(lines) {
		row = len(lines) - 1
	}
	col := m.input.LineInfo().ColumnOffset
	if col < 0 {
		col = 0
	}
	lineRunes := []rune(lines[row])
	if col > len(lineRunes) {
		col = len(lineRunes)
	}

	pos := 0
	for i := 0; i < row; i++ {
		pos += len([]rune(lines[i])) + 1
	}
	pos += col

	total := len([]rune(value))
	if pos > total {
		pos = total
	}
	return pos
}

// setInputCursor moves the textarea cursor to a rune offset into the value,
// the inverse of inputCursorPos. SetValue parks the cursor on the last row,
// so the row walk only ever moves up.
func (m *Model) setInputCursor(pos int) {
	runes := []rune(m.input.Value())
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	row, col := 0, 0
	for _, r := range runes[:pos] {
		if r == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	// CursorUp steps one display line at a time, so a soft-wrapped row takes
	// several calls. The guard bounds a cursor that cannot reach the row.
	for guard := 0; m.input.Line() > row && guard < 10000; guard++ {
		m.input.CursorUp()
	}
	for guard := 0; m.input.Line() < row && guard < 10000; guard++ {
		m.input.CursorDown()
	}
	m.input.SetCursor(col)
}

func normalizeNewlines(value string) string {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	value = strings.ReplaceAll(value, "\r", "\n")
	return value
}

func (m *Model) renderInput() string {
	var parts []string
	if bar := m.renderNewMessagesBar(); bar != "" {
		parts = append(parts, bar)
	}
	if m.editingMessageID != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(metaColor).Italic(true).
			Render("editing message · esc to cancel"))
	} else if m.thread.IsOpen() && m.threadFocus {
		parts = append(parts, lipgloss.NewStyle().Foreground(metaColor).Italic(true).
			Render("replying in thread · esc to leave"))
	}

	content := m.input.View()
	style := lipgloss.NewStyle().Background(inputBg).Padding(0, inputPadding, 0, 0)
	if width := m.mainWidth(); width > 0 {
		style = style.Width(width)
	}
	blank := style.Render("")
	parts = append(parts, blank, style.Render(content), blank)
	return strings.Join(parts, "\n")
}

func (m *Model) renderNewMessagesBar() string {
	if len(m.newMsgAuthors) == 0 {
		return ""
	}
	var text string
	if len(m.newMsgAuthors) == 1 {
		text = "new message from @" + m.newMsgAuthors[0]
	} else {
		mentions := make([]string, len(m.newMsgAuthors))
		for i, author := range m.newMsgAuthors {
			mentions[i] = "@" + author
		}
		text = "new messages from " + strings.Join(mentions, " ")
	}

	barStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(barBg).
		Padding(0, 1)
	if width := m.mainWidth(); width > 0 {
		barStyle = barStyle.Width(width)
	}
	return m.zones.Mark("new-messages-bar", barStyle.Render(text))
}
