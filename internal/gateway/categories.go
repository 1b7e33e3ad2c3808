package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/openagora/agora/internal/types"
)

// FetchCategories returns the full category tree with nested channels, in
// the service's sort order.
func (c *Client) FetchCategories(ctx context.Context) ([]types.Category, error) {
	var out struct {
		Categories []types.Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// CategoryFields are the writable fields of a category.
type CategoryFields struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	SortOrder   int    `json:"sort_order,omitempty"`
}

// CreateCategory creates a category and returns the stored row.
func (c *Client) CreateCategory(ctx context.Context, fields CategoryFields) (*types.Category, error) {
	var out struct {
		Category types.Category `json:"category"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/categories", fields, &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}

// UpdateCategory updates a category's fields.
func (c *Client) UpdateCategory(ctx context.Context, id string, fields CategoryFields) (*types.Category, error) {
	var out struct {
		Category types.Category `json:"category"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/categories/"+url.PathEscape(id), fields, &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}

// DeleteCategory deletes a category. The service rejects the call with a
// business error while the category still owns channels.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, nil)
}

// ChannelFields are the writable fields of a channel.
type ChannelFields struct {
	CategoryID  string `json:"category_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateChannel creates a channel inside a category.
func (c *Client) CreateChannel(ctx context.Context, fields ChannelFields) (*types.Channel, error) {
	var out struct {
		Channel types.Channel `json:"channel"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/channels", fields, &out); err != nil {
		return nil, err
	}
	return &out.Channel, nil
}

// UpdateChannel updates a channel's fields. The category is immutable
// server-side; a category_id change is rejected as a business error.
func (c *Client) UpdateChannel(ctx context.Context, id string, fields ChannelFields) (*types.Channel, error) {
	var out struct {
		Channel types.Channel `json:"channel"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/channels/"+url.PathEscape(id), fields, &out); err != nil {
		return nil, err
	}
	return &out.Channel, nil
}

// DeleteChannel deletes a channel. Rejected with a business error while the
// channel still owns messages.
func (c *Client) DeleteChannel(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/channels/"+url.PathEscape(id), nil, nil)
}
