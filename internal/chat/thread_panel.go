package chat

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/openagora/agora/internal/board"
	"github.com/openagora/agora/internal/types"
)

// renderThreadPanel shows the root message pinned on top with its replies
// below, scoped to the open thread only.
func (m *Model) renderThreadPanel() string {
	if !m.thread.IsOpen() {
		return ""
	}
	width := m.threadPanelWidth()
	innerWidth := width - 3

	headerStyle := lipgloss.NewStyle().Foreground(textColor).Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(metaColor)

	title := "thread"
	if m.threadFocus {
		title += " · replying here"
	}
	lines := []string{headerStyle.Render(truncateLine(title, innerWidth)), ""}

	root := m.thread.Root()
	lines = append(lines, m.formatThreadEntry(root, innerWidth)...)
	lines = append(lines, metaStyle.Render(strings.Repeat("─", max(1, innerWidth))))

	replies := m.thread.Replies()
	if len(replies) == 0 {
		lines = append(lines, metaStyle.Render("no replies yet"))
	}
	for _, reply := range replies {
		lines = append(lines, m.formatThreadEntry(reply, innerWidth)...)
		lines = append(lines, "")
	}
	lines = append(lines, metaStyle.Render("esc to close"))

	body := strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(m.height).
		Padding(0, 1).
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(metaColor).
		Render(body)
}

func (m *Model) formatThreadEntry(message types.MessageWithDetails, width int) []string {
	color := colorForAuthor(message.AuthorID)
	if message.AuthorID == m.self.ID {
		color = selfColor
	}
	nameStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(metaColor)
	textStyle := lipgloss.NewStyle().Foreground(textColor)

	header := nameStyle.Render("@" + authorHandle(message))
	header += " " + metaStyle.Render(formatTimestamp(message.CreatedAt))
	if message.Edited() {
		header += " " + metaStyle.Render("(edited)")
	}

	body := textStyle.Render(message.Content)
	if width > 0 {
		body = ansi.Wrap(body, width, "")
	}
	out := []string{header}
	out = append(out, strings.Split(body, "\n")...)
	if pills := board.AggregateReactions(message.Reactions, m.self.ID); len(pills) > 0 {
		rendered := make([]string, 0, len(pills))
		for _, pill := range pills {
			style := lipgloss.NewStyle().Foreground(textColor).Background(pillBg)
			if pill.Reacted {
				style = style.Background(pillActiveBg).Bold(true)
			}
			label := ":" + pill.EmojiCode + ":"
			if pill.Count > 1 {
				label += " " + strconv.Itoa(pill.Count)
			}
			rendered = append(rendered, style.Render(label))
		}
		out = append(out, strings.Join(rendered, " "))
	}
	return out
}
