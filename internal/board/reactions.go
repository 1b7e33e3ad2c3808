package board

import (
	"github.com/openagora/agora/internal/types"
)

// ReactionPill is one emoji aggregate on a message, rendered as a toggle
// button.
type ReactionPill struct {
	EmojiCode string
	Count     int
	Reacted   bool
}

// AggregateReactions groups a message's reactions by emoji, counting
// distinct users and flagging whether the current user is among them. A user
// appearing twice under one emoji still counts once, so repeated toggles can
// never inflate a count. Pills keep first-appearance order.
func AggregateReactions(reactions []types.Reaction, currentUserID string) []ReactionPill {
	var order []string
	users := make(map[string]map[string]struct{})

	for _, reaction := range reactions {
		byUser, ok := users[reaction.EmojiCode]
		if !ok {
			byUser = make(map[string]struct{})
			users[reaction.EmojiCode] = byUser
			order = append(order, reaction.EmojiCode)
		}
		byUser[reaction.UserID] = struct{}{}
	}

	pills := make([]ReactionPill, 0, len(order))
	for _, emoji := range order {
		byUser := users[emoji]
		_, reacted := byUser[currentUserID]
		pills = append(pills, ReactionPill{
			EmojiCode: emoji,
			Count:     len(byUser),
			Reacted:   reacted,
		})
	}
	return pills
}
