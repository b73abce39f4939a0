package wpcom

import "context"

// Menus lists a site's navigation menus.
func (c *Client) Menus(ctx context.Context, site string, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "menus"), params)
}

// Menu fetches one menu.
func (c *Client) Menu(ctx context.Context, site string, menuID int64, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "menus", id(menuID)), params)
}

// CreateMenu creates a menu; params must carry at least "name".
func (c *Client) CreateMenu(ctx context.Context, site string, params Params) (any, error) {
	return c.post(ctx, SiteRoute(site, "menus", "new"), params)
}

func (c *Client) UpdateMenu(ctx context.Context, site string, menuID int64, params Params) (any, error) {
	return c.post(ctx, SiteRoute(site, "menus", id(menuID)), params)
}

func (c *Client) DeleteMenu(ctx context.Context, site string, menuID int64) (any, error) {
	return c.post(ctx, SiteRoute(site, "menus", id(menuID), "delete"), nil)
}
