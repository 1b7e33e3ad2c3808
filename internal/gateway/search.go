package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/openagora/agora/internal/types"
)

// SearchBoard runs a free-text search across channels, messages, and
// categories. The service treats queries shorter than two characters as
// empty; callers debounce and enforce the minimum before reaching here.
func (c *Client) SearchBoard(ctx context.Context, query string, limit int) (*types.SearchResult, error) {
	values := url.Values{}
	values.Set("q", query)
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var out types.SearchResult
	if err := c.do(ctx, http.MethodGet, "/api/search?"+values.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
