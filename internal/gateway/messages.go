package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/openagora/agora/internal/types"
)

// FetchMessages returns a channel's most recent messages oldest to newest,
// already filtered for soft deletion. A positive limit caps the window; zero
// leaves the window size to the service.
func (c *Client) FetchMessages(ctx context.Context, channelID string, limit int) ([]types.MessageWithDetails, error) {
	var out struct {
		Messages []types.MessageWithDetails `json:"messages"`
	}
	path := "/api/channels/" + url.PathEscape(channelID) + "/messages"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// CreateMessageInput carries the fields for a new message. A non-nil
// ThreadID makes the message a reply to that thread root.
type CreateMessageInput struct {
	ChannelID string  `json:"channel_id"`
	Content   string  `json:"content"`
	ThreadID  *string `json:"thread_id,omitempty"`
}

// CreateMessage persists a message. Mentions are derived server-side from
// the content and fan out notifications to the referenced users.
func (c *Client) CreateMessage(ctx context.Context, input CreateMessageInput) (*types.MessageWithDetails, error) {
	var out struct {
		Message types.MessageWithDetails `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/messages", input, &out); err != nil {
		return nil, err
	}
	return &out.Message, nil
}

// UpdateMessage replaces a message's content. Only the author may edit;
// anyone else gets a permission error.
func (c *Client) UpdateMessage(ctx context.Context, id, content string) (*types.MessageWithDetails, error) {
	var out struct {
		Message types.MessageWithDetails `json:"message"`
	}
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPatch, "/api/messages/"+url.PathEscape(id), body, &out); err != nil {
		return nil, err
	}
	return &out.Message, nil
}

// DeleteMessage soft-deletes a message. The row stays in storage with
// deleted_at set and drops out of every feed.
func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/messages/"+url.PathEscape(id), nil, nil)
}

// ToggleAction is the service's verdict on a reaction toggle.
type ToggleAction string

const (
	ToggleAdded   ToggleAction = "added"
	ToggleRemoved ToggleAction = "removed"
)

// ToggleReaction adds or removes the caller's reaction. The service checks
// for an existing (message, user, emoji) row and decides; callers must not
// pre-decide from local state.
func (c *Client) ToggleReaction(ctx context.Context, messageID, emojiCode string) (ToggleAction, error) {
	var out struct {
		Action ToggleAction `json:"action"`
	}
	body := map[string]string{"emoji_code": emojiCode}
	path := "/api/messages/" + url.PathEscape(messageID) + "/reactions/toggle"
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return "", err
	}
	return out.Action, nil
}

// FetchThread returns a root message's replies oldest to newest.
func (c *Client) FetchThread(ctx context.Context, rootID string) ([]types.MessageWithDetails, error) {
	var out struct {
		Replies []types.MessageWithDetails `json:"replies"`
	}
	path := "/api/messages/" + url.PathEscape(rootID) + "/thread"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Replies, nil
}

// CreateThreadReply persists a reply under the given root.
func (c *Client) CreateThreadReply(ctx context.Context, rootID, content string) (*types.MessageWithDetails, error) {
	var out struct {
		Reply types.MessageWithDetails `json:"reply"`
	}
	body := map[string]string{"content": content}
	path := "/api/messages/" + url.PathEscape(rootID) + "/thread"
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out.Reply, nil
}
