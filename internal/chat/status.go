package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// statusLine composes the bottom line: breadcrumb and transient status on
// the left, presence and unread notification counts on the right.
func (m *Model) statusLine() string {
	left := m.breadcrumb()
	if typing := m.renderTypingLine(); typing != "" {
		left += " · " + typing
	}
	if m.status != "" {
		left = m.status + " · " + left
	}

	var right []string
	if online := m.presence.Count(); online > 0 {
		right = append(right, fmt.Sprintf("%d online", online))
	}
	if unread := m.unreadNotificationCount(); unread > 0 {
		right = append(right, fmt.Sprintf("🔔 %d", unread))
	}
	return alignStatusLine(left, strings.Join(right, " · "), m.mainWidth())
}

func (m *Model) breadcrumb() string {
	channel, ok := m.directory.Selected()
	if !ok {
		return "agora"
	}
	crumb := "# " + channel.Name
	if category, found := m.categoryOf(channel.CategoryID); found {
		crumb = category.Name + " / " + crumb
	}
	if m.thread.IsOpen() {
		crumb += " / thread"
	}
	return crumb
}

func (m *Model) unreadNotificationCount() int {
	count := 0
	for _, notification := range m.notifications {
		if !notification.IsRead {
			count++
		}
	}
	return count
}

func alignStatusLine(left, right string, width int) string {
	if width <= 0 || right == "" {
		return left
	}
	leftWidth := ansi.StringWidth(left)
	rightWidth := ansi.StringWidth(right)
	gap := width - leftWidth - rightWidth
	if gap < 1 {
		return truncateLine(left, width)
	}
	return left + strings.Repeat(" ", gap) + right
}
