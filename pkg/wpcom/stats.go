package wpcom

import (
	"context"
	"strings"
)

// Reports accepted by StatsReport, relative to sites/{site}/stats.
const (
	ReportSummary      = "summary"
	ReportTopPosts     = "top-posts"
	ReportReferrers    = "referrers"
	ReportCountryViews = "country-views"
	ReportClicks       = "clicks"
	ReportTags         = "tags"
	ReportTopAuthors   = "top-authors"
	ReportComments     = "comments"
	ReportVideoPlays   = "video-plays"
	ReportFollowers    = "followers"
)

// Reports lists every named stats report.
var Reports = []string{
	ReportSummary, ReportTopPosts, ReportReferrers, ReportCountryViews, ReportClicks,
	ReportTags, ReportTopAuthors, ReportComments, ReportVideoPlays, ReportFollowers,
}

// Stats returns the site's stats overview.
func (c *Client) Stats(ctx context.Context, site string, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "stats"), params)
}

// StatsReport fetches sites/{site}/stats/{report}; an empty report is the overview.
func (c *Client) StatsReport(ctx context.Context, site, report string, params Params) (any, error) {
	return c.get(ctx, StatsRoute(site, report), params)
}

// StatsRoute is the route StatsReport requests. A nested report such as
// "video/5" keeps its slashes; each segment is escaped on its own.
func StatsRoute(site, report string) string {
	parts := []string{"stats"}
	for _, seg := range strings.Split(report, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			parts = append(parts, seg)
		}
	}
	return SiteRoute(site, parts...)
}

func (c *Client) StatsSummary(ctx context.Context, site string, params Params) (any, error) {
	return c.StatsReport(ctx, site, ReportSummary, params)
}

func (c *Client) TopPosts(ctx context.Context, site string, params Params) (any, error) {
	return c.StatsReport(ctx, site, ReportTopPosts, params)
}

// VideoStats returns play stats for a single video post.
func (c *Client) VideoStats(ctx context.Context, site string, postID int64, params Params) (any, error) {
	return c.get(ctx, SiteRoute(site, "stats", "video", id(postID)), params)
}

func (c *Client) Referrers(ctx context.Context, site string, params Params) (any, error) {
	return c.StatsReport(ctx, site, ReportReferrers, params)
}

func (c *Client) CountryViews(ctx context.Context, site string, params Params) (any, error) {
	return c.StatsReport(ctx, site, ReportCountryViews, params)
}

func (c *Client) OutboundClicks(ctx context.Context, site string, params Params) (any, error) {
	return c.StatsReport(ctx, site, ReportClicks, params)
}

func (c *Client) StatsByTags(ctx context.Context, site string, params Params) (any, error) {
	return c.StatsReport(ctx, site, ReportTags, params)
}

func (c *Client) TopAuthors(ctx context.Context, site string, params Params) (any, error) {
	return c.StatsReport(ctx, site, ReportTopAuthors, params)
}

func (c *Client) StatsComments(ctx context.Context, site string, params Params) (any, error) {
	return c.StatsReport(ctx, site, ReportComments, params)
}

func (c *Client) VideoPlays(ctx context.Context, site string, params Params) (any, error) {
	return c.StatsReport(ctx, site, ReportVideoPlays, params)
}

func (c *Client) Followers(ctx context.Context, site string, params Params) (any, error) {
	return c.StatsReport(ctx, site, ReportFollowers, params)
}
