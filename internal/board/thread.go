package board

import (
	"github.com/openagora/agora/internal/types"
)

// ThreadView is the secondary feed for a single root message's replies. It
// reads the root at open time and keeps its own copy; the main feed's entry
// may diverge until the thread is reopened. Reply reconciliation reuses the
// same set-union insert as the main feed.
type ThreadView struct {
	root    types.MessageWithDetails
	replies *Feed
	open    bool
}

// NewThreadView returns a closed thread view.
func NewThreadView() *ThreadView {
	return &ThreadView{replies: NewFeed()}
}

// Open binds the view to a root message and clears any previous replies.
func (t *ThreadView) Open(root types.MessageWithDetails) {
	t.root = root
	t.open = true
	t.replies.Replace(root.ChannelID, nil)
}

// Close unbinds the view. The caller tears down the thread's subscription.
func (t *ThreadView) Close() {
	t.open = false
	t.root = types.MessageWithDetails{}
	t.replies.Replace("", nil)
}

// IsOpen reports whether a thread is being viewed.
func (t *ThreadView) IsOpen() bool { return t.open }

// Root returns the thread's root message as of open time.
func (t *ThreadView) Root() types.MessageWithDetails { return t.root }

// RootID returns the root message id, or "" when closed.
func (t *ThreadView) RootID() string {
	if !t.open {
		return ""
	}
	return t.root.ID
}

// Replies returns the reply list oldest to newest.
func (t *ThreadView) Replies() []types.MessageWithDetails { return t.replies.Messages() }

// SetReplies replaces the reply list from a thread history load.
func (t *ThreadView) SetReplies(replies []types.MessageWithDetails) {
	if !t.open {
		return
	}
	t.replies.Replace(t.root.ChannelID, replies)
}

// ApplyInsert adds a reply if it belongs to this thread and is not already
// present. Covers both the optimistic append and the echoed live event.
func (t *ThreadView) ApplyInsert(msg types.MessageWithDetails) bool {
	if !t.open || msg.ThreadID == nil || *msg.ThreadID != t.root.ID {
		return false
	}
	return t.replies.ApplyInsert(msg)
}

// ApplyUpdate patches a reply in place; drops updates for unknown ids.
func (t *ThreadView) ApplyUpdate(msg types.Message) bool {
	if !t.open {
		return false
	}
	return t.replies.ApplyUpdate(msg)
}

// ApplyDelete removes a reply from the view.
func (t *ThreadView) ApplyDelete(id string) bool {
	if !t.open {
		return false
	}
	return t.replies.ApplyDelete(id)
}

// ApplyReactionAdded records a reaction on a reply in the view.
func (t *ThreadView) ApplyReactionAdded(reaction types.Reaction) bool {
	if !t.open {
		return false
	}
	return t.replies.ApplyReactionAdded(reaction)
}

// ApplyReactionRemoved strips a reaction from a reply in the view.
func (t *ThreadView) ApplyReactionRemoved(messageID, userID, emojiCode string) bool {
	if !t.open {
		return false
	}
	return t.replies.ApplyReactionRemoved(messageID, userID, emojiCode)
}
