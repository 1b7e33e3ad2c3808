package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openagora/agora/internal/realtime"
	"github.com/openagora/agora/internal/types"
)

// channelEvent tags a live event with the channel it was subscribed for.
// An empty channelID marks a board-wide event. Tagging lets Update drop
// events that were queued for a channel the user has already left.
type channelEvent struct {
	channelID string
	event     realtime.Event
}

type liveEventMsg channelEvent

func (m *Model) waitEventCmd() tea.Cmd {
	return func() tea.Msg {
		return liveEventMsg(<-m.events)
	}
}

func (m *Model) push(channelID string) realtime.Handler {
	return func(event realtime.Event) {
		select {
		case m.events <- channelEvent{channelID: channelID, event: event}:
		default:
			// UI is hopelessly behind; dropping is better than blocking
			// the websocket read loop.
		}
	}
}

func (m *Model) subscribeBoard() {
	topics := []string{
		realtime.BoardCategoriesTopic,
		realtime.BoardChannelsTopic,
		realtime.UserNotificationsTopic(m.self.ID),
		// Every channel's inserts, for the sidebar unread badges. Selected
		// channel traffic arrives twice; the id-keyed insert dedups it.
		realtime.AllChannelMessagesTopic,
	}
	for _, topic := range topics {
		sub, err := m.live.Subscribe(topic, m.push(""))
		if err != nil {
			m.status = err.Error()
			continue
		}
		m.boardSubs = append(m.boardSubs, sub)
	}
}

// subscribeChannel attaches the four channel-scoped topics and announces
// presence. Called on every channel switch after the old subs are dropped.
func (m *Model) subscribeChannel(channelID string) {
	topics := []string{
		realtime.ChannelMessagesTopic(channelID),
		realtime.ChannelReactionsTopic(channelID),
		realtime.ChannelPresenceTopic(channelID),
		realtime.ChannelTypingTopic(channelID),
	}
	for _, topic := range topics {
		sub, err := m.live.Subscribe(topic, m.push(channelID))
		if err != nil {
			m.status = err.Error()
			continue
		}
		m.channelSubs = append(m.channelSubs, sub)
	}
	if err := m.live.Track(realtime.ChannelPresenceTopic(channelID), types.PresenceEntry{
		UserID:      m.self.ID,
		Username:    m.self.Username,
		DisplayName: m.self.DisplayName,
		OnlineAt:    time.Now(),
	}); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) dropChannelSubs() {
	if channelID := m.feed.ChannelID(); channelID != "" {
		_ = m.live.Untrack(realtime.ChannelPresenceTopic(channelID))
	}
	for _, sub := range m.channelSubs {
		sub.Close()
	}
	m.channelSubs = nil
	m.closeThreadSub()
}

func (m *Model) closeThreadSub() {
	if m.threadSub != nil {
		m.threadSub.Close()
		m.threadSub = nil
	}
}

func (m *Model) handleLiveEvent(msg liveEventMsg) (tea.Model, tea.Cmd) {
	// Events queued for a channel the user already left are stale.
	if msg.channelID != "" && msg.channelID != m.directory.SelectedID() {
		return m, m.waitEventCmd()
	}

	wasAtBottom := m.atBottom()
	var extra tea.Cmd
	switch event := msg.event.(type) {
	case realtime.MessageInserted:
		m.applyInserted(event.Message, wasAtBottom)
	case realtime.MessageUpdated:
		if m.feed.ApplyUpdate(event.Message) || m.thread.ApplyUpdate(event.Message) {
			m.refreshViewport(false)
		}
	case realtime.MessageDeleted:
		if m.feed.ApplyDelete(event.MessageID) || m.thread.ApplyDelete(event.MessageID) {
			m.refreshViewport(false)
		}
	case realtime.ReactionAdded:
		if m.feed.ApplyReactionAdded(event.Reaction) || m.thread.ApplyReactionAdded(event.Reaction) {
			m.refreshViewport(false)
		}
	case realtime.ReactionRemoved:
		r := event.Reaction
		removed := m.feed.ApplyReactionRemoved(r.MessageID, r.UserID, r.EmojiCode)
		if m.thread.ApplyReactionRemoved(r.MessageID, r.UserID, r.EmojiCode) || removed {
			m.refreshViewport(false)
		}
	case realtime.ThreadReplyInserted:
		m.applyReply(event.Reply)
	case realtime.CategoryCreated:
		m.directory.AddCategory(event.Category)
	case realtime.ChannelCreated:
		m.directory.AddChannel(event.Channel)
	case realtime.NotificationCreated:
		m.notifications = append(m.notifications, event.Notification)
	case realtime.PresenceSync:
		m.presence.Sync(event.Entries)
	case realtime.PresenceJoined:
		m.presence.Join(event.ConnKey, event.Entry)
	case realtime.PresenceLeft:
		m.presence.Leave(event.ConnKey)
	case realtime.TypingStarted:
		if event.Entry.UserID != m.self.ID {
			m.typing.Start(event.Entry, time.Now())
			extra = typingPruneCmd()
		}
	case realtime.TypingStopped:
		m.typing.Stop(event.UserID)
	}
	return m, tea.Batch(m.waitEventCmd(), extra)
}

// applyInserted folds a live message into the feed. The optimistic echo of
// our own send deduplicates by id inside Feed.ApplyInsert.
func (m *Model) applyInserted(message types.MessageWithDetails, wasAtBottom bool) {
	if message.ChannelID != m.directory.SelectedID() {
		m.unread[message.ChannelID]++
		return
	}
	if !m.feed.ApplyInsert(message) {
		return
	}
	m.rememberAuthor(message)
	if message.AuthorID != m.self.ID {
		if wasAtBottom {
			m.refreshViewport(true)
		} else {
			m.addNewMessageAuthor(authorHandle(message))
			m.refreshViewport(false)
		}
		m.notifyIfMentioned(message)
		return
	}
	m.refreshViewport(true)
}

func (m *Model) applyReply(reply types.MessageWithDetails) {
	if m.thread.ApplyInsert(reply) {
		m.refreshViewport(false)
	}
	if reply.ThreadID != nil {
		m.feed.BumpReplyCount(*reply.ThreadID, 1)
	}
	if reply.AuthorID != m.self.ID {
		m.notifyIfMentioned(reply)
	}
}

// rememberAuthor refreshes the on-disk directory cache with authors seen on
// live traffic, keeping autocomplete warm for users who joined after the
// last directory fetch.
func (m *Model) rememberAuthor(message types.MessageWithDetails) {
	if m.users == nil || message.Author == nil {
		return
	}
	_ = m.users.Upsert(*message.Author)
}

func authorHandle(message types.MessageWithDetails) string {
	if message.Author != nil && message.Author.Username != "" {
		return message.Author.Username
	}
	return message.AuthorID
}
