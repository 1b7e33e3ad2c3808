// Package realtime multiplexes topic-scoped subscriptions over one websocket
// connection to the board service's changefeed. Incoming frames are decoded
// into tagged event variants at the subscription layer, so handlers receive a
// concrete event type instead of interpreting a polymorphic payload.
package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/openagora/agora/internal/types"
)

// Event is a decoded changefeed event. Exactly one concrete type exists per
// (topic kind, event name) pair.
type Event interface {
	isEvent()
}

// MessageInserted signals a new message in a subscribed channel.
type MessageInserted struct {
	Message types.MessageWithDetails
}

// MessageUpdated signals an edit or a soft delete on a message. A set
// DeletedAt doubles as the delete signal on feeds that only watch updates.
type MessageUpdated struct {
	Message types.Message
}

// MessageDeleted signals a soft delete.
type MessageDeleted struct {
	MessageID string
	ChannelID string
}

// ReactionAdded signals a stored reaction row.
type ReactionAdded struct {
	Reaction types.Reaction
}

// ReactionRemoved signals a removed reaction row.
type ReactionRemoved struct {
	Reaction types.Reaction
}

// ThreadReplyInserted signals a new reply under a subscribed thread root.
type ThreadReplyInserted struct {
	Reply types.MessageWithDetails
}

// CategoryCreated signals a new category anywhere on the board.
type CategoryCreated struct {
	Category types.Category
}

// ChannelCreated signals a new channel anywhere on the board.
type ChannelCreated struct {
	Channel types.Channel
}

// NotificationCreated signals a notification fanned out to the current user.
type NotificationCreated struct {
	Notification types.Notification
}

// PresenceSync carries the full presence set for a channel, keyed by
// connection.
type PresenceSync struct {
	Entries map[string]types.PresenceEntry
}

// PresenceJoined signals a connection attaching to a channel's presence
// topic.
type PresenceJoined struct {
	ConnKey string
	Entry   types.PresenceEntry
}

// PresenceLeft signals a connection detaching.
type PresenceLeft struct {
	ConnKey string
}

// TypingStarted signals a typing broadcast.
type TypingStarted struct {
	Entry types.TypingEntry
}

// TypingStopped signals an explicit stop-typing broadcast.
type TypingStopped struct {
	UserID string
}

func (MessageInserted) isEvent()     {}
func (MessageUpdated) isEvent()      {}
func (MessageDeleted) isEvent()      {}
func (ReactionAdded) isEvent()       {}
func (ReactionRemoved) isEvent()     {}
func (ThreadReplyInserted) isEvent() {}
func (CategoryCreated) isEvent()     {}
func (ChannelCreated) isEvent()      {}
func (NotificationCreated) isEvent() {}
func (PresenceSync) isEvent()        {}
func (PresenceJoined) isEvent()      {}
func (PresenceLeft) isEvent()        {}
func (TypingStarted) isEvent()       {}
func (TypingStopped) isEvent()       {}

// Wire event names.
const (
	evMessageInserted = "message_inserted"
	evMessageUpdated  = "message_updated"
	evMessageDeleted  = "message_deleted"
	evReactionAdded   = "reaction_added"
	evReactionRemoved = "reaction_removed"
	evReplyInserted   = "reply_inserted"
	evCategoryCreated = "category_created"
	evChannelCreated  = "channel_created"
	evNotification    = "notification_created"
	evPresenceSync    = "presence_sync"
	evPresenceJoin    = "presence_join"
	evPresenceLeave   = "presence_leave"
	evTyping          = "typing"
	evStopTyping      = "stop_typing"
)

// frame is the wire format in both directions. Client-to-server frames carry
// an action; server-to-client frames carry an event.
type frame struct {
	Action  string          `json:"action,omitempty"`
	Topic   string          `json:"topic"`
	Event   string          `json:"event,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// decodeEvent turns a wire frame into its tagged variant. Unknown event
// names are an error; the read loop logs and skips them.
func decodeEvent(f frame) (Event, error) {
	switch f.Event {
	case evMessageInserted:
		var payload types.MessageWithDetails
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			return nil, err
		}
		return MessageInserted{Message: payload}, nil
	case evMessageUpdated:
		var payload types.Message
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			return nil, err
		}
		return MessageUpdated{Message: payload}, nil
	case evMessageDeleted:
		var payload struct {
			MessageID string `json:"message_id"`
			ChannelID string `json:"channel_id"`
		}
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			return nil, err
		}
		return MessageDeleted{MessageID: payload.MessageID, ChannelID: payload.ChannelID}, nil
	case evReactionAdded:
		var payload types.Reaction
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			return nil, err
		}
		return ReactionAdded{Reaction: payload}, nil
	case evReactionRemoved:
		var payload types.Reaction
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			return nil, err
		}
		return ReactionRemoved{Reaction: payload}, nil
	case evReplyInserted:
		var payload types.MessageWithDetails
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			return nil, err
		}
		return ThreadReplyInserted{Reply: payload}, nil
	case evCategoryCreated:
		var payload types.Category
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			return nil, err
		}
		return CategoryCreated{Category: payload}, nil
	case evChannelCreated:
		var payload types.Channel
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			return nil, err
		}
		return ChannelCreated{Channel: payload}, nil
	case evNotification:
		var payload types.Notification
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			return nil, err
		}
		return NotificationCreated{Notification: payload}, nil
	case evPresenceSync:
		var payload struct {
			Entries map[string]types.PresenceEntry `json:"entries"`
		}
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			return nil, err
		}
		return PresenceSync{Entries: payload.Entries}, nil
	case evPresenceJoin:
		var payload struct {
			ConnKey string              `json:"conn_key"`
			Entry   types.PresenceEntry `json:"entry"`
		}
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			return nil, err
		}
		return PresenceJoined{ConnKey: payload.ConnKey, Entry: payload.Entry}, nil
	case evPresenceLeave:
		var payload struct {
			ConnKey string `json:"conn_key"`
		}
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			return nil, err
		}
		return PresenceLeft{ConnKey: payload.ConnKey}, nil
	case evTyping:
		var payload types.TypingEntry
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			return nil, err
		}
		return TypingStarted{Entry: payload}, nil
	case evStopTyping:
		var payload struct {
			UserID string `json:"user_id"`
		}
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			return nil, err
		}
		return TypingStopped{UserID: payload.UserID}, nil
	}
	return nil, fmt.Errorf("unknown event %q on topic %q", f.Event, f.Topic)
}
