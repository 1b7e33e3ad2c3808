package chat

import "github.com/charmbracelet/lipgloss"

func (m *Model) refreshViewport(scrollToBottom bool) {
	content := m.renderMessages()
	// Keep content strictly taller than the viewport; an exact height match
	// makes the renderer clip the first line.
	contentHeight := lipgloss.Height(content)
	if contentHeight > 0 && contentHeight <= m.viewport.Height {
		content = "\n" + content
	}
	m.viewport.SetContent(content)
	if m.pendingScroll {
		scrollToBottom = true
		m.pendingScroll = false
	}
	if scrollToBottom {
		m.viewport.GotoBottom()
		m.clearNewMessageNotification()
		return
	}
	if m.viewport.Height <= 0 {
		return
	}
	maxOffset := lipgloss.Height(content) - m.viewport.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.viewport.YOffset > maxOffset {
		m.viewport.SetYOffset(maxOffset)
	}
}

// atBottom reports whether the viewport is within a few lines of the end.
// Live messages only force-scroll when the reader was already there. Counts
// content lines, not rendered lines; View() pads to the viewport height and
// would report bottom from anywhere.
func (m *Model) atBottom() bool {
	if m.viewport.Height <= 0 {
		return true
	}
	maxOffset := m.viewport.TotalLineCount() - m.viewport.Height
	if maxOffset <= 0 {
		return true
	}
	return m.viewport.YOffset >= maxOffset-3
}

func (m *Model) addNewMessageAuthor(author string) {
	for _, existing := range m.newMsgAuthors {
		if existing == author {
			return
		}
	}
	m.newMsgAuthors = append(m.newMsgAuthors, author)
}

func (m *Model) clearNewMessageNotification() {
	m.newMsgAuthors = nil
}
