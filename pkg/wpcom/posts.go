package wpcom

import "context"

// Posts lists a site's posts. Common params: number, page_handle, status, type.
func (c *Client) Posts(ctx context.Context, site string, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "posts"), params)
}

// Categories lists a site's categories.
func (c *Client) Categories(ctx context.Context, site string, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "categories"), params)
}

// Tags lists a site's tags.
func (c *Client) Tags(ctx context.Context, site string, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "tags"), params)
}
