package jobs

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samvad-hq/wpcom-harvester/internal/domain"
	"github.com/samvad-hq/wpcom-harvester/pkg/wpcom"
)

type postsResponse struct {
	Found int         `json:"found"`
	Posts []wpcomPost `json:"posts"`
}

type wpcomPost struct {
	ID            int64  `json:"ID"`
	Title         string `json:"title"`
	URL           string `json:"URL"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt"`
	Date          string `json:"date"`
	FeaturedImage string `json:"featured_image"`
	Author        struct {
		Name string `json:"name"`
	} `json:"author"`
}

// postsFetcher emits one item per post returned by sites/{site}/posts.
type postsFetcher struct {
	api API
}

func NewPostsFetcher(api API) Fetcher {
	return &postsFetcher{api: api}
}

func (f *postsFetcher) ID() string { return KindPosts }

func (f *postsFetcher) Fetch(ctx context.Context, job Job) ([]domain.Item, error) {
	if !strings.EqualFold(job.Kind, KindPosts) {
		return nil, fmt.Errorf("posts fetcher received incompatible job kind %q", job.Kind)
	}
	if f.api == nil {
		return nil, fmt.Errorf("posts fetcher has no api client")
	}

	payload, err := f.api.Posts(ctx, job.Site, jobParams(job))
	if err != nil {
		return nil, fmt.Errorf("fetch %s posts: %w", job.Site, err)
	}

	var resp postsResponse
	if err := reshape(payload, &resp); err != nil {
		return nil, fmt.Errorf("decode %s posts: %w", job.Site, err)
	}

	route := wpcom.SiteRoute(job.Site, "posts")
	items := make([]domain.Item, 0, len(resp.Posts))
	for _, p := range resp.Posts {
		if p.ID == 0 {
			continue
		}
		items = append(items, domain.Item{
			ID:          hashKey(job.Site, strconv.FormatInt(p.ID, 10)),
			Kind:        domain.ItemPost,
			Site:        job.Site,
			Route:       route,
			Title:       p.Title,
			URL:         p.URL,
			Excerpt:     p.Excerpt,
			ImageURL:    p.FeaturedImage,
			Author:      p.Author.Name,
			PublishedAt: p.Date,
			Content:     p.Content,
		})
	}
	return items, nil
}
