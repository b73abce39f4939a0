package wpcom

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client exposes one method per WordPress.com endpoint. Each method is a
// single call through the embedded Dispatcher.
type Client struct {
	*Dispatcher
}

// NewClient returns a Client bound to token.
func NewClient(token string, opts ...Option) (*Client, error) {
	d, err := New(token, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{Dispatcher: d}, nil
}

func (c *Client) get(ctx context.Context, route string, params Params) (any, error) {
	return c.Do(ctx, http.MethodGet, route, params)
}

func (c *Client) post(ctx context.Context, route string, params Params) (any, error) {
	return c.Do(ctx, http.MethodPost, route, params)
}

// SiteRoute builds sites/{site}/{parts...} with every segment path-escaped.
func SiteRoute(site string, parts ...string) string {
	segs := make([]string, 0, len(parts)+2)
	segs = append(segs, "sites", url.PathEscape(strings.TrimSpace(site)))
	for _, p := range parts {
		segs = append(segs, url.PathEscape(p))
	}
	return strings.Join(segs, "/")
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

// withParam returns a copy of params with key set.
func withParam(params Params, key string, v any) Params {
	out := make(Params, len(params)+1)
	for k, val := range params {
		out[k] = val
	}
	out[key] = v
	return out
}

// MeSites lists the current user's sites.
func (c *Client) MeSites(ctx context.Context, params Params) (any, error) {
	return c.get(ctx, "me/sites", params)
}
