package wpcom

import "context"

// RenderShortcode renders shortcode in the context of site.
func (c *Client) RenderShortcode(ctx context.Context, site, shortcode string, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "shortcodes", "render"), withParam(params, "shortcode", shortcode))
}

func (c *Client) AvailableShortcodes(ctx context.Context, site string, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "shortcodes"), params)
}

func (c *Client) AvailableEmbeds(ctx context.Context, site string, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "embeds"), params)
}

func (c *Client) Widgets(ctx context.Context, site string, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "widgets"), params)
}

func (c *Client) PostTypes(ctx context.Context, site string, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "post-types"), params)
}

// PostTypeCount returns post counts by status for postType.
func (c *Client) PostTypeCount(ctx context.Context, site, postType string, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "post-counts", postType), params)
}

func (c *Client) PageTemplates(ctx context.Context, site string, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "page-templates"), params)
}
