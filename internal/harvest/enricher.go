package harvest

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/wpcom-harvester/internal/domain"
	"github.com/samvad-hq/wpcom-harvester/pkg/jobs"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB
	maxExcerptRunes  = 300
)

// Enricher reduces post HTML to plain text and picks a lead image.
// Snapshot items pass through untouched.
type Enricher struct{}

func NewEnricher() *Enricher { return &Enricher{} }

func (e *Enricher) Enrich(ctx context.Context, _ jobs.Job, items []domain.Item) []domain.Item {
	out := make([]domain.Item, len(items))
	copy(out, items)

	for i := range out {
		if ctx.Err() != nil {
			return out
		}
		if out[i].Kind != domain.ItemPost {
			continue
		}
		out[i] = enrichPost(out[i])
	}
	return out
}

func enrichPost(item domain.Item) domain.Item {
	item.Title = plainText(item.Title)

	excerpt := plainText(item.Excerpt)
	var doc *goquery.Document
	if item.Content != "" {
		doc, _ = parseHTML(item.Content)
	}
	if excerpt == "" && doc != nil {
		excerpt = collapseSpace(doc.Text())
	}
	item.Excerpt = truncate(excerpt, maxExcerptRunes)

	if item.ImageURL == "" && doc != nil {
		if src, ok := doc.Find("img[src]").First().Attr("src"); ok {
			item.ImageURL = resolveURL(strings.TrimSpace(src), item.URL)
		}
	}
	return item
}

func parseHTML(fragment string) (*goquery.Document, error) {
	if len(fragment) > maxHTMLBodyBytes {
		fragment = fragment[:maxHTMLBodyBytes]
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// plainText strips tags and decodes entities.
func plainText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := parseHTML(fragment)
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return collapseSpace(doc.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most n runes on a word boundary, appending an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:n])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

func resolveURL(ref, base string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if u.IsAbs() || base == "" {
		return u.String()
	}
	b, err := url.Parse(base)
	if err != nil {
		return u.String()
	}
	return b.ResolveReference(u).String()
}
