package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/openagora/agora/internal/board"
	"github.com/openagora/agora/internal/core"
	"github.com/openagora/agora/internal/types"
)

func (m *Model) renderMessages() string {
	messages := m.feed.Messages()
	if len(messages) == 0 {
		return lipgloss.NewStyle().Foreground(metaColor).Render("  no messages yet")
	}
	chunks := make([]string, 0, len(messages))
	for _, message := range messages {
		chunks = append(chunks, m.formatMessage(message))
	}
	return strings.Join(chunks, "\n\n")
}

func (m *Model) formatMessage(message types.MessageWithDetails) string {
	color := colorForAuthor(message.AuthorID)
	if message.AuthorID == m.self.ID {
		color = selfColor
	}

	header := m.formatHeader(message, color)
	body := m.formatBody(message, color)

	parts := []string{header, body}
	if pills := m.formatReactionPills(message); pills != "" {
		parts = append(parts, pills)
	}
	if replies := m.formatReplyCount(message); replies != "" {
		parts = append(parts, replies)
	}
	return strings.Join(parts, "\n")
}

func (m *Model) formatHeader(message types.MessageWithDetails, color lipgloss.Color) string {
	nameStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(metaColor)

	name := authorHandle(message)
	if message.Author != nil && message.Author.DisplayName != "" {
		name = message.Author.DisplayName
	}
	header := m.zones.Mark("author-"+message.ID, nameStyle.Render("@"+name))
	header += " " + metaStyle.Render(formatTimestamp(message.CreatedAt))
	if message.Edited() {
		header += " " + metaStyle.Render("(edited)")
	}
	if m.presence.IsOnline(message.AuthorID) {
		header += " " + lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	}
	return header
}

// formatBody styles mention tokens and highlights fenced code. Mentions of
// the current user get the loudest treatment.
func (m *Model) formatBody(message types.MessageWithDetails, color lipgloss.Color) string {
	textStyle := lipgloss.NewStyle().Foreground(textColor)
	mentionStyle := lipgloss.NewStyle().Foreground(mentionColor).Bold(true)
	selfMentionStyle := lipgloss.NewStyle().Foreground(contrastTextColor(mentionColor)).
		Background(mentionColor).Bold(true)

	content := highlightCodeBlocks(message.Content)
	lines := strings.Split(content, "\n")
	styled := make([]string, len(lines))
	inFence := false
	for i, line := range lines {
		if isFenceLine(line) {
			inFence = !inFence
			styled[i] = lipgloss.NewStyle().Foreground(metaColor).Render(line)
			continue
		}
		if inFence {
			styled[i] = line // already colored by chroma
			continue
		}
		var out strings.Builder
		for _, segment := range core.SplitMentions(line) {
			if !segment.Mention {
				out.WriteString(textStyle.Render(segment.Text))
				continue
			}
			if core.MentionsUser(segment.Text, m.self) {
				out.WriteString(selfMentionStyle.Render(segment.Text))
			} else {
				out.WriteString(mentionStyle.Render(segment.Text))
			}
		}
		styled[i] = out.String()
	}

	body := strings.Join(styled, "\n")
	if width := m.mainWidth(); width > 0 {
		body = ansi.Wrap(body, width-2, "")
	}
	return m.zones.Mark("msg-"+message.ID, body)
}

func (m *Model) formatReactionPills(message types.MessageWithDetails) string {
	pills := board.AggregateReactions(message.Reactions, m.self.ID)
	if len(pills) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(pills))
	for _, pill := range pills {
		style := lipgloss.NewStyle().Foreground(textColor).Background(pillBg).Padding(0, 1)
		if pill.Reacted {
			style = style.Background(pillActiveBg).Bold(true)
		}
		label := fmt.Sprintf(":%s: %d", pill.EmojiCode, pill.Count)
		zoneID := "pill-" + message.ID + "-" + pill.EmojiCode
		rendered = append(rendered, m.zones.Mark(zoneID, style.Render(label)))
	}
	return strings.Join(rendered, " ")
}

func (m *Model) formatReplyCount(message types.MessageWithDetails) string {
	if !message.IsThreadStarter() || message.ThreadReplyCount == 0 {
		return ""
	}
	noun := "replies"
	if message.ThreadReplyCount == 1 {
		noun = "reply"
	}
	label := fmt.Sprintf("└ %d %s", message.ThreadReplyCount, noun)
	style := lipgloss.NewStyle().Foreground(sidebarSelect)
	return m.zones.Mark("thread-"+message.ID, style.Render(label))
}

func formatTimestamp(at time.Time) string {
	local := at.Local()
	if local.Year() == time.Now().Year() && local.YearDay() == time.Now().YearDay() {
		return local.Format("15:04")
	}
	return local.Format("Jan 2 15:04")
}

func isFenceLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

func truncateLine(line string, width int) string {
	if width <= 0 || ansi.StringWidth(line) <= width {
		return line
	}
	if width <= 1 {
		return "…"
	}
	return ansi.Truncate(line, width-1, "…")
}
