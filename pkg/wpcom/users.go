package wpcom

import "context"

// Users lists a site's users.
func (c *Client) Users(ctx context.Context, site string, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "users"), params)
}

// User fetches a single user of a site.
func (c *Client) User(ctx context.Context, site string, userID int64, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "users", id(userID)), params)
}

// UpdateUser edits a site user's details or role.
func (c *Client) UpdateUser(ctx context.Context, site string, userID int64, params Params) (any, error) {
	return c.post(ctx, SiteRoute(site, "users", id(userID)), params)
}
