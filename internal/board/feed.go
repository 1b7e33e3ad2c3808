// Package board holds the client-side state engines for the messaging core:
// the message feed, thread view, channel directory, and the ephemeral
// presence and typing trackers. The engines own their state and perform no
// I/O; callers feed them history loads and live events and render the result.
package board

import (
	"github.com/openagora/agora/internal/types"
)

// Feed is the ordered message list for one channel. Inserts are a set-union
// keyed by message id: the optimistic local append and the echoed live event
// can race to add the same logical message, and the second one must lose.
type Feed struct {
	channelID string
	messages  []types.MessageWithDetails
	index     map[string]int
}

// NewFeed returns an empty feed bound to no channel.
func NewFeed() *Feed {
	return &Feed{index: make(map[string]int)}
}

// ChannelID returns the channel the feed currently holds.
func (f *Feed) ChannelID() string { return f.channelID }

// Len returns the number of visible messages.
func (f *Feed) Len() int { return len(f.messages) }

// Messages returns the visible messages oldest to newest. The slice is owned
// by the feed; callers must not mutate it.
func (f *Feed) Messages() []types.MessageWithDetails { return f.messages }

// Get returns the message with the given id, if present.
func (f *Feed) Get(id string) (types.MessageWithDetails, bool) {
	if i, ok := f.index[id]; ok {
		return f.messages[i], true
	}
	return types.MessageWithDetails{}, false
}

// Replace swaps in a freshly loaded history for a newly selected channel.
// Soft-deleted rows are filtered out in case the gateway ever returns them.
func (f *Feed) Replace(channelID string, messages []types.MessageWithDetails) {
	f.channelID = channelID
	f.messages = f.messages[:0]
	f.index = make(map[string]int, len(messages))
	for _, msg := range messages {
		if msg.DeletedAt != nil {
			continue
		}
		if _, dup := f.index[msg.ID]; dup {
			continue
		}
		f.index[msg.ID] = len(f.messages)
		f.messages = append(f.messages, msg)
	}
}

// ApplyInsert appends a message unless an entry with the same id already
// exists. Messages for other channels and soft-deleted rows are discarded.
// Arrival order is preserved; the feed is never re-sorted.
func (f *Feed) ApplyInsert(msg types.MessageWithDetails) bool {
	if f.channelID == "" || msg.ChannelID != f.channelID {
		return false
	}
	if msg.DeletedAt != nil {
		return false
	}
	if _, dup := f.index[msg.ID]; dup {
		return false
	}
	f.index[msg.ID] = len(f.messages)
	f.messages = append(f.messages, msg)
	return true
}

// ApplyUpdate patches the mutable fields of a matching entry. An update for
// a message the feed never loaded is silently dropped: the transport gives no
// ordering across event kinds for the same id. An update carrying a deletion
// removes the entry.
func (f *Feed) ApplyUpdate(msg types.Message) bool {
	i, ok := f.index[msg.ID]
	if !ok {
		return false
	}
	if msg.DeletedAt != nil {
		f.removeAt(i)
		return true
	}
	entry := &f.messages[i]
	entry.Content = msg.Content
	entry.UpdatedAt = msg.UpdatedAt
	entry.LikeCount = msg.LikeCount
	return true
}

// ApplyDelete removes the matching entry from the visible feed. The row
// stays in storage; only the view forgets it.
func (f *Feed) ApplyDelete(id string) bool {
	i, ok := f.index[id]
	if !ok {
		return false
	}
	f.removeAt(i)
	return true
}

// ApplyReactionAdded records a reaction on a message already in the feed.
// Events for absent messages belong to another channel's feed and are
// discarded. Adding a tuple that is already present is a no-op, which makes
// the authoritative toggle result and the echoed live event idempotent
// against each other.
func (f *Feed) ApplyReactionAdded(reaction types.Reaction) bool {
	i, ok := f.index[reaction.MessageID]
	if !ok {
		return false
	}
	entry := &f.messages[i]
	for _, existing := range entry.Reactions {
		if existing.UserID == reaction.UserID && existing.EmojiCode == reaction.EmojiCode {
			return false
		}
	}
	entry.Reactions = append(entry.Reactions, reaction)
	return true
}

// ApplyReactionRemoved strips a (user, emoji) tuple from a message already in
// the feed. Removing an absent tuple is a no-op.
func (f *Feed) ApplyReactionRemoved(messageID, userID, emojiCode string) bool {
	i, ok := f.index[messageID]
	if !ok {
		return false
	}
	entry := &f.messages[i]
	for j, existing := range entry.Reactions {
		if existing.UserID == userID && existing.EmojiCode == emojiCode {
			entry.Reactions = append(entry.Reactions[:j], entry.Reactions[j+1:]...)
			return true
		}
	}
	return false
}

// BumpReplyCount adjusts the reply indicator on a thread root.
func (f *Feed) BumpReplyCount(rootID string, delta int) bool {
	i, ok := f.index[rootID]
	if !ok {
		return false
	}
	entry := &f.messages[i]
	entry.ThreadReplyCount += delta
	if entry.ThreadReplyCount < 0 {
		entry.ThreadReplyCount = 0
	}
	return true
}

func (f *Feed) removeAt(i int) {
	removed := f.messages[i].ID
	f.messages = append(f.messages[:i], f.messages[i+1:]...)
	delete(f.index, removed)
	for j := i; j < len(f.messages); j++ {
		f.index[f.messages[j].ID] = j
	}
}
