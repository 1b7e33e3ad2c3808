package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openagora/agora/internal/realtime"
	"github.com/openagora/agora/internal/types"
)

const requestTimeout = 10 * time.Second

type directoryMsg struct {
	categories []types.Category
	err        error
}

type usersMsg struct {
	users []types.User
	err   error
}

type notificationsMsg struct {
	notifications []types.Notification
	err           error
}

type historyMsg struct {
	channelID string
	messages  []types.MessageWithDetails
	err       error
}

type threadMsg struct {
	rootID   string
	messages []types.MessageWithDetails
	err      error
}

func (m *Model) loadDirectoryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		categories, err := m.gateway.FetchCategories(ctx)
		return directoryMsg{categories: categories, err: err}
	}
}

func (m *Model) loadUsersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		users, err := m.gateway.FetchUsers(ctx)
		return usersMsg{users: users, err: err}
	}
}

func (m *Model) loadNotificationsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		notifications, err := m.gateway.FetchNotifications(ctx)
		return notificationsMsg{notifications: notifications, err: err}
	}
}

func (m *Model) loadHistoryCmd(channelID string) tea.Cmd {
	limit := m.cfg.Chat.HistoryLimit
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		messages, err := m.gateway.FetchMessages(ctx, channelID, limit)
		return historyMsg{channelID: channelID, messages: messages, err: err}
	}
}

func (m *Model) loadThreadCmd(rootID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		messages, err := m.gateway.FetchThread(ctx, rootID)
		return threadMsg{rootID: rootID, messages: messages, err: err}
	}
}

func (m *Model) handleDirectoryMsg(msg directoryMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	selected := m.directory.SelectedID()
	m.directory.Load(msg.categories)
	if m.startChannel != "" && m.directory.Select(m.startChannel) {
		m.startChannel = ""
	} else if selected != "" {
		m.directory.Select(selected)
	}
	if id := m.directory.SelectedID(); id != "" && id != m.loadedChannelID {
		return m, m.switchChannel(id)
	}
	return m, nil
}

func (m *Model) handleUsersMsg(msg usersMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Keep whatever the cache had; mentions degrade, nothing breaks.
		m.status = msg.err.Error()
		return m, nil
	}
	m.mentionPool = msg.users
	if m.users != nil {
		_ = m.users.Replace(msg.users)
	}
	return m, nil
}

func (m *Model) handleNotificationsMsg(msg notificationsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	m.notifications = msg.notifications
	return m, nil
}

// handleHistoryMsg reconciles the fetched window with whatever arrived live
// while the fetch was in flight. The union is keyed by message id, so the
// overlap between snapshot and stream collapses to one copy.
func (m *Model) handleHistoryMsg(msg historyMsg) (tea.Model, tea.Cmd) {
	if msg.channelID != m.directory.SelectedID() {
		return m, nil // switched away before the fetch landed
	}
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	buffered := m.feed.Messages()
	m.feed.Replace(msg.channelID, msg.messages)
	for _, message := range buffered {
		m.feed.ApplyInsert(message)
	}
	m.loadedChannelID = msg.channelID
	m.refreshViewport(true)
	return m, nil
}

func (m *Model) handleThreadMsg(msg threadMsg) (tea.Model, tea.Cmd) {
	if !m.thread.IsOpen() || m.thread.RootID() != msg.rootID {
		return m, nil // thread closed or changed before the fetch landed
	}
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	buffered := m.thread.Replies()
	m.thread.SetReplies(msg.messages)
	for _, reply := range buffered {
		m.thread.ApplyInsert(reply)
	}
	m.refreshViewport(false)
	return m, nil
}

// switchChannel swaps every piece of channel-scoped state: subscriptions,
// presence, typing, the thread panel, the composer, and the feed itself.
func (m *Model) switchChannel(channelID string) tea.Cmd {
	if channelID == "" {
		return nil
	}
	m.dropChannelSubs()
	m.closeThread()
	m.stopTypingBroadcast()

	m.directory.Select(channelID)
	m.feed.Replace(channelID, nil)
	m.presence.Reset(channelID)
	m.typing.Reset(channelID)
	delete(m.unread, channelID)
	m.clearNewMessageNotification()

	if m.editingMessageID != "" {
		m.exitEditMode()
	}
	if m.input.Value() != "" {
		m.input.Reset()
		m.clearSuggestions()
		m.lastInputValue = ""
		m.lastInputPos = 0
	}

	// Subscribe before fetching so nothing published during the fetch is
	// missed; the union in handleHistoryMsg absorbs the overlap.
	m.subscribeChannel(channelID)
	m.initialScroll = true
	m.resize()
	return m.loadHistoryCmd(channelID)
}

// openThread opens the reply panel for a feed message. Replies live on
// their own topic, scoped to the root.
func (m *Model) openThread(rootID string) tea.Cmd {
	root, ok := m.feed.Get(rootID)
	if !ok {
		return nil
	}
	m.closeThreadSub()
	m.thread.Open(root)
	m.threadFocus = true

	sub, err := m.live.Subscribe(
		realtime.ThreadRepliesTopic(rootID), m.push(m.directory.SelectedID()))
	if err != nil {
		m.status = err.Error()
	} else {
		m.threadSub = sub
	}
	m.resize()
	return m.loadThreadCmd(rootID)
}

func (m *Model) closeThread() {
	m.closeThreadSub()
	m.thread.Close()
	m.threadFocus = false
	m.resize()
}
