package wpcom

import "context"

// AllMedia lists a site's media library.
func (c *Client) AllMedia(ctx context.Context, site string, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "media")+"/", params)
}

// MediaItem fetches a single media item.
func (c *Client) MediaItem(ctx context.Context, site string, mediaID int64, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "media", id(mediaID)), params)
}

// UploadMedia sideloads remote files into the media library. Each entry of
// mediaURLs is fetched by WordPress.com itself.
func (c *Client) UploadMedia(ctx context.Context, site string, mediaURLs []string, params Params) (any, error) {
	return c.post(ctx, SiteRoute(site, "media", "new"), withParam(params, "media_urls", mediaURLs))
}

// UpdateMediaItem edits title, caption, description or alt text of a media item.
func (c *Client) UpdateMediaItem(ctx context.Context, site string, mediaID int64, params Params) (any, error) {
	return c.post(ctx, SiteRoute(site, "media", id(mediaID)), params)
}

// DeleteMedia permanently removes a media item.
func (c *Client) DeleteMedia(ctx context.Context, site string, mediaID int64) (any, error) {
	return c.post(ctx, SiteRoute(site, "media", id(mediaID), "delete"), nil)
}
