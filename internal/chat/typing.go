package chat

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openagora/agora/internal/board"
	"github.com/openagora/agora/internal/types"
)

type typingIdleMsg struct{}
type typingPruneMsg struct{}

// typingRefresh caps the broadcast rate during continuous typing. Receivers
// expire indicators after TypingExpiry, so the refresh interval must stay
// comfortably under it.
const typingRefresh = time.Second

// noteComposerActivity broadcasts a typing start on the first keystroke of a
// burst and refreshes it at most once per typingRefresh while keys keep
// coming, so receivers never expire a still-active typist.
func (m *Model) noteComposerActivity() tea.Cmd {
	if strings.TrimSpace(m.input.Value()) == "" {
		return nil
	}
	m.lastKeystroke = time.Now()
	channelID := m.directory.SelectedID()
	if channelID == "" {
		return nil
	}
	if m.typingSent {
		if time.Since(m.lastTypingSent) >= typingRefresh {
			m.lastTypingSent = time.Now()
			_ = m.live.BroadcastTyping(channelID, m.selfTypingEntry(), true)
		}
		return nil
	}
	m.typingSent = true
	m.lastTypingSent = time.Now()
	_ = m.live.BroadcastTyping(channelID, m.selfTypingEntry(), true)
	return tea.Tick(board.TypingExpiry, func(time.Time) tea.Msg { return typingIdleMsg{} })
}

func (m *Model) handleTypingIdleMsg() tea.Cmd {
	if !m.typingSent {
		return nil
	}
	if idle := time.Since(m.lastKeystroke); idle < board.TypingExpiry {
		return tea.Tick(board.TypingExpiry-idle, func(time.Time) tea.Msg { return typingIdleMsg{} })
	}
	m.stopTypingBroadcast()
	return nil
}

// stopTypingBroadcast sends the explicit stop. Called on idle expiry, on
// submit, and when leaving the channel.
func (m *Model) stopTypingBroadcast() {
	if !m.typingSent {
		return
	}
	m.typingSent = false
	if channelID := m.directory.SelectedID(); channelID != "" {
		_ = m.live.BroadcastTyping(channelID, m.selfTypingEntry(), false)
	}
}

func (m *Model) selfTypingEntry() types.TypingEntry {
	return types.TypingEntry{
		UserID:      m.self.ID,
		Username:    m.self.Username,
		DisplayName: m.self.DisplayName,
	}
}

// typingPruneCmd forces a repaint when the newest indicator would expire,
// so stale "is typing" lines clear even on an otherwise idle screen.
func typingPruneCmd() tea.Cmd {
	return tea.Tick(board.TypingExpiry, func(time.Time) tea.Msg { return typingPruneMsg{} })
}

func (m *Model) renderTypingLine() string {
	entries := m.typing.Active(time.Now())
	if len(entries) == 0 {
		return ""
	}
	switch len(entries) {
	case 1:
		return entries[0].Username + " is typing…"
	case 2:
		return entries[0].Username + " and " + entries[1].Username + " are typing…"
	default:
		return "several people are typing…"
	}
}
