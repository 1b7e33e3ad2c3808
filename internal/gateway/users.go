package gateway

import (
	"context"
	"net/http"

	"github.com/openagora/agora/internal/types"
)

// FetchUsers returns the user directory used for mention resolution.
func (c *Client) FetchUsers(ctx context.Context) ([]types.User, error) {
	var out struct {
		Users []types.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// FetchNotifications returns the caller's notifications, newest first.
func (c *Client) FetchNotifications(ctx context.Context) ([]types.Notification, error) {
	var out struct {
		Notifications []types.Notification `json:"notifications"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out.Notifications, nil
}
