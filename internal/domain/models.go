package domain

// Domain contains core models and interfaces.

// Item kinds produced by harvest jobs.
const (
	ItemPost     = "post"
	ItemSnapshot = "snapshot"
)

// Item is one unit of harvested content: a post, or a snapshot of any
// other endpoint's payload.
type Item struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Site        string `json:"site"`
	Route       string `json:"route"`
	Title       string `json:"title,omitempty"`
	URL         string `json:"url,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Author      string `json:"author,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	// Content holds raw HTML for posts; it is reduced to Excerpt by enrichment.
	Content string `json:"-"`
	Payload any    `json:"payload,omitempty"`
}
