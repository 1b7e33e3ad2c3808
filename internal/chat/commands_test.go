package chat

import (
	"testing"

	"github.com/openagora/agora/internal/types"
)

func feedMessage(m *Model, id, authorID string) {
	m.feed.ApplyInsert(types.MessageWithDetails{
		Message: types.Message{
			ID:        id,
			ChannelID: m.feed.ChannelID(),
			AuthorID:  authorID,
			Content:   "content of " + id,
		},
	})
}

func TestPlainMessageIsNotACommand(t *testing.T) {
	m := testModel()
	handled, _ := m.handleSlashCommand("hello /world")
	if handled {
		t.Error("plain message treated as command")
	}
}

func TestUnknownCommandSetsStatus(t *testing.T) {
	m := testModel()
	handled, cmd := m.handleSlashCommand("/frobnicate")
	if !handled || cmd != nil {
		t.Fatalf("handled=%v cmd=%v", handled, cmd)
	}
	if m.status == "" {
		t.Error("no status for unknown command")
	}
}

func TestCommandUsageErrors(t *testing.T) {
	m := testModel()
	for _, input := range []string{"/category", "/channel", "/react"} {
		m.status = ""
		handled, cmd := m.handleSlashCommand(input)
		if !handled {
			t.Errorf("%s not handled", input)
		}
		if cmd != nil {
			t.Errorf("%s issued a request without args", input)
		}
		if m.status == "" {
			t.Errorf("%s gave no usage hint", input)
		}
	}
}

func TestLatestOwnMessage(t *testing.T) {
	m := testModel()
	m.feed.Replace("ch-1", nil)
	m.directory.Load([]types.Category{{
		ID: "cat-1", Name: "General",
		Channels: []types.Channel{{ID: "ch-1", CategoryID: "cat-1", Name: "general"}},
	}})

	feedMessage(m, "m-1", "u-self")
	feedMessage(m, "m-2", "u-other")
	feedMessage(m, "m-3", "u-self")
	feedMessage(m, "m-4", "u-other")

	own, ok := m.latestOwnMessage()
	if !ok || own.ID != "m-3" {
		t.Errorf("latestOwnMessage = %v %v", own.ID, ok)
	}

	latest, ok := m.latestMessage()
	if !ok || latest.ID != "m-4" {
		t.Errorf("latestMessage = %v %v", latest.ID, ok)
	}
}

func TestLatestMessagePrefersOpenThread(t *testing.T) {
	m := testModel()
	m.feed.Replace("ch-1", nil)
	feedMessage(m, "m-root", "u-other")

	root, _ := m.feed.Get("m-root")
	m.thread.Open(root)
	m.threadFocus = true
	rootID := "m-root"
	m.thread.ApplyInsert(types.MessageWithDetails{
		Message: types.Message{
			ID: "m-reply", ChannelID: "ch-1", ThreadID: &rootID, AuthorID: "u-self",
		},
	})

	latest, ok := m.latestMessage()
	if !ok || latest.ID != "m-reply" {
		t.Errorf("latestMessage with thread focus = %v %v", latest.ID, ok)
	}
}
