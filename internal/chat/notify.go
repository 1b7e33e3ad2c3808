package chat

import (
	"github.com/gen2brain/beeep"

	"github.com/openagora/agora/internal/core"
	"github.com/openagora/agora/internal/types"
)

// notifyIfMentioned fires a desktop notification when a live message from
// someone else mentions the current user. Failures are ignored; a missing
// notification daemon must never surface in the UI.
func (m *Model) notifyIfMentioned(message types.MessageWithDetails) {
	if !mentionsSelf(message, m.self) {
		return
	}
	title := "agora"
	if message.Author != nil {
		title = "@" + message.Author.Username
	}
	_ = beeep.Notify(title, notificationPreview(message.Content), "")
}

// mentionsSelf trusts the server-resolved mention rows when present and
// falls back to scanning the content for messages that arrived without them.
func mentionsSelf(message types.MessageWithDetails, self types.User) bool {
	for _, mention := range message.Mentions {
		if mention.MentionedUserID == self.ID {
			return true
		}
	}
	if len(message.Mentions) > 0 {
		return false
	}
	return core.MentionsUser(message.Content, self)
}

func notificationPreview(content string) string {
	const max = 120
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max-1]) + "…"
}
