package chat

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openagora/agora/internal/gateway"
	"github.com/openagora/agora/internal/types"
)

type commandDef struct {
	Name  string
	Desc  string
	Usage string
}

var allCommands = []commandDef{
	{Name: "/quit", Desc: "Exit"},
	{Name: "/help", Desc: "Show key bindings"},
	{Name: "/category", Desc: "Create a category", Usage: "<name>"},
	{Name: "/rename-category", Desc: "Rename current category", Usage: "<name>"},
	{Name: "/delete-category", Desc: "Delete current category"},
	{Name: "/channel", Desc: "Create a channel here", Usage: "<name>"},
	{Name: "/rename", Desc: "Rename current channel", Usage: "<name>"},
	{Name: "/delete-channel", Desc: "Delete current channel"},
	{Name: "/react", Desc: "Toggle reaction on latest message", Usage: "<emoji-code>"},
	{Name: "/delete", Desc: "Delete your latest message"},
	{Name: "/copy", Desc: "Copy latest message text"},
	{Name: "/search", Desc: "Search the board", Usage: "<query>"},
}

type directoryEditMsg struct {
	err error
}

// handleSlashCommand dispatches "/..." composer input. Returns false when
// the text is a plain message.
func (m *Model) handleSlashCommand(value string) (bool, tea.Cmd) {
	if !strings.HasPrefix(value, "/") {
		return false, nil
	}
	name, args, _ := strings.Cut(value, " ")
	args = strings.TrimSpace(args)

	switch name {
	case "/quit", "/exit":
		return true, tea.Quit
	case "/help":
		m.status = "tab sidebar · alt+enter send · enter newline · up edit · ctrl+f search · esc close"
		return true, nil
	case "/category":
		if args == "" {
			m.status = "usage: /category <name>"
			return true, nil
		}
		return true, m.createCategoryCmd(args)
	case "/rename-category":
		return true, m.renameCategory(args)
	case "/delete-category":
		return true, m.deleteCategory()
	case "/channel":
		if args == "" {
			m.status = "usage: /channel <name>"
			return true, nil
		}
		return true, m.createChannelCmd(args)
	case "/rename":
		return true, m.renameChannel(args)
	case "/delete-channel":
		return true, m.deleteChannel()
	case "/react":
		if args == "" {
			m.status = "usage: /react <emoji-code>"
			return true, nil
		}
		if target, ok := m.latestMessage(); ok {
			return true, m.toggleReactionCmd(target.ID, strings.Trim(args, ":"))
		}
		m.status = "nothing to react to"
		return true, nil
	case "/delete":
		if target, ok := m.latestOwnMessage(); ok {
			return true, m.deleteMessageCmd(target.ID)
		}
		m.status = "no message of yours to delete"
		return true, nil
	case "/copy":
		if target, ok := m.latestMessage(); ok {
			if err := copyToClipboard(target.Content); err != nil {
				m.status = err.Error()
			} else {
				m.status = "copied"
			}
		}
		return true, nil
	case "/search":
		m.startSearch(args)
		return true, nil
	}
	m.status = "unknown command " + name
	return true, nil
}

func (m *Model) latestMessage() (types.MessageWithDetails, bool) {
	var pool []types.MessageWithDetails
	if m.thread.IsOpen() && m.threadFocus {
		pool = m.thread.Replies()
	} else {
		pool = m.feed.Messages()
	}
	if len(pool) == 0 {
		return types.MessageWithDetails{}, false
	}
	return pool[len(pool)-1], true
}

func (m *Model) latestOwnMessage() (types.MessageWithDetails, bool) {
	pool := m.feed.Messages()
	if m.thread.IsOpen() && m.threadFocus {
		pool = m.thread.Replies()
	}
	for i := len(pool) - 1; i >= 0; i-- {
		if pool[i].AuthorID == m.self.ID {
			return pool[i], true
		}
	}
	return types.MessageWithDetails{}, false
}

func (m *Model) createCategoryCmd(name string) tea.Cmd {
	order := len(m.directory.Categories())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := m.gateway.CreateCategory(ctx, gateway.CategoryFields{
			Name:      name,
			SortOrder: order,
		})
		return directoryEditMsg{err: err}
	}
}

func (m *Model) renameCategory(name string) tea.Cmd {
	if name == "" {
		m.status = "usage: /rename-category <name>"
		return nil
	}
	channel, ok := m.directory.Selected()
	if !ok {
		m.status = "no channel selected"
		return nil
	}
	category, ok := m.categoryOf(channel.CategoryID)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := m.gateway.UpdateCategory(ctx, category.ID, gateway.CategoryFields{
			Name:      name,
			Color:     category.Color,
			SortOrder: category.SortOrder,
		})
		return directoryEditMsg{err: err}
	}
}

func (m *Model) deleteCategory() tea.Cmd {
	channel, ok := m.directory.Selected()
	if !ok {
		m.status = "no channel selected"
		return nil
	}
	categoryID := channel.CategoryID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return directoryEditMsg{err: m.gateway.DeleteCategory(ctx, categoryID)}
	}
}

func (m *Model) createChannelCmd(name string) tea.Cmd {
	channel, ok := m.directory.Selected()
	if !ok {
		m.status = "select a channel first to pick the category"
		return nil
	}
	categoryID := channel.CategoryID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := m.gateway.CreateChannel(ctx, gateway.ChannelFields{
			CategoryID: categoryID,
			Name:       name,
		})
		return directoryEditMsg{err: err}
	}
}

func (m *Model) renameChannel(name string) tea.Cmd {
	if name == "" {
		m.status = "usage: /rename <name>"
		return nil
	}
	channel, ok := m.directory.Selected()
	if !ok {
		m.status = "no channel selected"
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := m.gateway.UpdateChannel(ctx, channel.ID, gateway.ChannelFields{
			CategoryID:  channel.CategoryID,
			Name:        name,
			Description: channel.Description,
		})
		return directoryEditMsg{err: err}
	}
}

func (m *Model) deleteChannel() tea.Cmd {
	channel, ok := m.directory.Selected()
	if !ok {
		m.status = "no channel selected"
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return directoryEditMsg{err: m.gateway.DeleteChannel(ctx, channel.ID)}
	}
}

// handleDirectoryEditMsg refetches the tree after any board edit. The live
// category/channel topics cover creations by others; a full refetch after
// our own edit also covers renames and deletions.
func (m *Model) handleDirectoryEditMsg(msg directoryEditMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	return m, m.loadDirectoryCmd()
}

func (m *Model) categoryOf(categoryID string) (types.Category, bool) {
	for _, category := range m.directory.Categories() {
		if category.ID == categoryID {
			return category, true
		}
	}
	return types.Category{}, false
}
