package types

import "time"

// MessageType represents the kind of a message.
type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeSystem MessageType = "system"
)

// User is a directory entry used for authorship and mention resolution.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Category is an ordered grouping of channels.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	SortOrder   int       `json:"sort_order"`
	Channels    []Channel `json:"channels,omitempty"`
}

// Channel is a named sub-forum within a category.
type Channel struct {
	ID              string `json:"id"`
	CategoryID      string `json:"category_id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	CreatedByUserID string `json:"created_by_user_id"`
}

// Message is a board message. A nil ThreadID marks a thread root.
type Message struct {
	ID          string      `json:"id"`
	ChannelID   string      `json:"channel_id"`
	ThreadID    *string     `json:"thread_id,omitempty"`
	AuthorID    string      `json:"author_id"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"message_type"`
	LikeCount   int         `json:"like_count"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	DeletedAt   *time.Time  `json:"deleted_at,omitempty"`
}

// IsThreadStarter reports whether the message is a thread root.
func (m Message) IsThreadStarter() bool {
	return m.ThreadID == nil
}

// Edited reports whether the message was modified after creation.
func (m Message) Edited() bool {
	return m.UpdatedAt.After(m.CreatedAt)
}

// MessageWithDetails embeds the author, reactions, mentions, and the reply
// count the gateway resolves server-side.
type MessageWithDetails struct {
	Message
	Author           *User      `json:"author,omitempty"`
	Reactions        []Reaction `json:"reactions"`
	Mentions         []Mention  `json:"mentions"`
	ThreadReplyCount int        `json:"thread_reply_count"`
}

// Reaction ties an emoji to a message by a user. Identity is the
// (message, user, emoji) tuple.
type Reaction struct {
	ID        string    `json:"id"`
	MessageID string    `json:"message_id"`
	UserID    string    `json:"user_id"`
	EmojiCode string    `json:"emoji_code"`
	CreatedAt time.Time `json:"created_at"`
}

// Mention records that a message referenced a user by display name.
type Mention struct {
	ID              string `json:"id"`
	MessageID       string `json:"message_id"`
	MentionedUserID string `json:"mentioned_user_id"`
}

// Notification is fanned out server-side on mention creation and consumed
// read-only by this client.
type Notification struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Type            string    `json:"type"`
	Content         string    `json:"content"`
	IsRead          bool      `json:"is_read"`
	CreatedAt       time.Time `json:"created_at"`
	LinkedMessageID string    `json:"linked_message_id,omitempty"`
}

// PresenceEntry is an ephemeral per-connection presence record. It exists
// only while a session is attached to a channel's presence topic.
type PresenceEntry struct {
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	OnlineAt    time.Time `json:"online_at"`
}

// TypingEntry is an ephemeral typing indicator. Entries expire three seconds
// after the last broadcast or on an explicit stop.
type TypingEntry struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// SearchResult is the free-text search response across the board.
type SearchResult struct {
	Channels   []Channel            `json:"channels"`
	Categories []Category           `json:"categories"`
	Messages   []MessageWithDetails `json:"messages"`
}
