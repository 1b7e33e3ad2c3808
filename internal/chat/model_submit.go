package chat

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openagora/agora/internal/gateway"
	"github.com/openagora/agora/internal/types"
)

type sentMsg struct {
	channelID string
	threadID  string
	content   string
	message   *types.MessageWithDetails
	err       error
}

type editResultMsg struct {
	messageID string
	message   *types.MessageWithDetails
	err       error
}

type deleteResultMsg struct {
	messageID string
	err       error
}

type toggleResultMsg struct {
	messageID string
	emojiCode string
	action    gateway.ToggleAction
	err       error
}

// submitComposer sends the composer content to the right destination: an
// edit in flight, the open thread when it has focus, or the channel feed.
func (m *Model) submitComposer() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return nil // rejected locally, no request
	}

	if m.editingMessageID != "" {
		messageID := m.editingMessageID
		m.exitEditMode()
		m.resetComposer()
		return m.submitEdit(messageID, value)
	}

	if handled, cmd := m.handleSlashCommand(value); handled {
		m.resetComposer()
		return cmd
	}

	channelID := m.directory.SelectedID()
	if channelID == "" {
		m.status = "no channel selected"
		return nil
	}

	var threadID string
	if m.thread.IsOpen() && m.threadFocus {
		threadID = m.thread.RootID()
	}

	m.resetComposer()
	m.stopTypingBroadcast()
	m.clearNewMessageNotification()
	m.pendingScroll = threadID == ""
	return m.sendCmd(channelID, threadID, value)
}

func (m *Model) sendCmd(channelID, threadID, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		var (
			message *types.MessageWithDetails
			err     error
		)
		if threadID != "" {
			message, err = m.gateway.CreateThreadReply(ctx, threadID, content)
		} else {
			message, err = m.gateway.CreateMessage(ctx, gateway.CreateMessageInput{
				ChannelID: channelID,
				Content:   content,
			})
		}
		return sentMsg{
			channelID: channelID,
			threadID:  threadID,
			content:   content,
			message:   message,
			err:       err,
		}
	}
}

// handleSentMsg applies the optimistic append. If the live echo beat the
// response here, ApplyInsert finds the id already present and no-ops.
func (m *Model) handleSentMsg(msg sentMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Put the content back so a transient failure costs nothing typed.
		m.status = msg.err.Error()
		if m.input.Value() == "" && msg.channelID == m.directory.SelectedID() {
			m.input.SetValue(msg.content)
			m.input.CursorEnd()
			m.resize()
		}
		return m, nil
	}
	if msg.channelID != m.directory.SelectedID() || msg.message == nil {
		return m, nil
	}
	if msg.threadID != "" {
		m.applyReply(*msg.message)
		return m, nil
	}
	if m.feed.ApplyInsert(*msg.message) {
		m.refreshViewport(true)
	}
	return m, nil
}

func (m *Model) submitEdit(messageID, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		message, err := m.gateway.UpdateMessage(ctx, messageID, content)
		return editResultMsg{messageID: messageID, message: message, err: err}
	}
}

func (m *Model) handleEditResultMsg(msg editResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	if msg.message != nil {
		if m.feed.ApplyUpdate(msg.message.Message) || m.thread.ApplyUpdate(msg.message.Message) {
			m.refreshViewport(false)
		}
	}
	return m, nil
}

func (m *Model) deleteMessageCmd(messageID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return deleteResultMsg{messageID: messageID, err: m.gateway.DeleteMessage(ctx, messageID)}
	}
}

func (m *Model) handleDeleteResultMsg(msg deleteResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	if m.feed.ApplyDelete(msg.messageID) || m.thread.ApplyDelete(msg.messageID) {
		m.refreshViewport(false)
	}
	return m, nil
}

// toggleReactionCmd asks the gateway which way the toggle went; the local
// state only flips on the authoritative answer.
func (m *Model) toggleReactionCmd(messageID, emojiCode string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		action, err := m.gateway.ToggleReaction(ctx, messageID, emojiCode)
		return toggleResultMsg{messageID: messageID, emojiCode: emojiCode, action: action, err: err}
	}
}

func (m *Model) handleToggleResultMsg(msg toggleResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	switch msg.action {
	case gateway.ToggleAdded:
		reaction := types.Reaction{
			MessageID: msg.messageID,
			UserID:    m.self.ID,
			EmojiCode: msg.emojiCode,
		}
		if m.feed.ApplyReactionAdded(reaction) || m.thread.ApplyReactionAdded(reaction) {
			m.refreshViewport(false)
		}
	case gateway.ToggleRemoved:
		removed := m.feed.ApplyReactionRemoved(msg.messageID, m.self.ID, msg.emojiCode)
		if m.thread.ApplyReactionRemoved(msg.messageID, m.self.ID, msg.emojiCode) || removed {
			m.refreshViewport(false)
		}
	}
	return m, nil
}

func (m *Model) resetComposer() {
	m.input.Reset()
	m.clearSuggestions()
	m.lastInputValue = ""
	m.lastInputPos = 0
	m.resize()
}

// prefillEditFromHistory loads the user's latest editable feed message into
// the composer. Bound to ArrowUp on an empty composer.
func (m *Model) prefillEditFromHistory() bool {
	messages := m.feed.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].AuthorID != m.self.ID {
			continue
		}
		m.editingMessageID = messages[i].ID
		m.input.SetValue(messages[i].Content)
		m.input.CursorEnd()
		m.lastInputValue = m.input.Value()
		m.lastInputPos = m.inputCursorPos()
		m.resize()
		return true
	}
	return false
}

func (m *Model) exitEditMode() {
	m.editingMessageID = ""
	m.input.Reset()
	m.clearSuggestions()
	m.lastInputValue = ""
	m.lastInputPos = 0
}
