package harvest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/samvad-hq/wpcom-harvester/internal/domain"
	"github.com/samvad-hq/wpcom-harvester/pkg/jobs"
	"github.com/samvad-hq/wpcom-harvester/pkg/publishers"
)

// fakeFetcher returns preset items or an error.
type fakeFetcher struct {
	id    string
	items []domain.Item
	err   error
	calls int
}

func (f *fakeFetcher) ID() string { return f.id }
func (f *fakeFetcher) Fetch(_ context.Context, _ jobs.Job) ([]domain.Item, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

// fakeRegistry resolves every job to a single fetcher.
type fakeRegistry struct {
	fetcher jobs.Fetcher
}

func (f *fakeRegistry) FetcherFor(_ jobs.Job) (jobs.Fetcher, error) {
	if f.fetcher == nil {
		return nil, errors.New("missing fetcher")
	}
	return f.fetcher, nil
}

// fakeEnricher prefixes titles.
type fakeEnricher struct {
	prefix string
}

func (f fakeEnricher) Enrich(_ context.Context, _ jobs.Job, items []domain.Item) []domain.Item {
	out := make([]domain.Item, len(items))
	for i, it := range items {
		it.Title = f.prefix + it.Title
		out[i] = it
	}
	return out
}

// fakePublisher records published events and can inject errors.
type fakePublisher struct {
	mu      sync.Mutex
	events  []publishers.Event
	errOnID string
}

func (f *fakePublisher) Publish(_ context.Context, evt publishers.Event) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	if evt.Item.ID == f.errOnID {
		return 0, errors.New("boom")
	}
	return 1, nil
}

// fakeDeduper tracks seen IDs and the job that marked them.
type fakeDeduper struct {
	mu       sync.Mutex
	seen     map[string]bool
	markedBy map[string]string
	failID   string
	failErr  error
}

func (f *fakeDeduper) Seen(id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == f.failID && f.failErr != nil {
		return false, f.failErr
	}
	return f.seen[id], nil
}

func (f *fakeDeduper) Mark(id, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	if f.markedBy == nil {
		f.markedBy = make(map[string]string)
	}
	f.seen[id] = true
	f.markedBy[id] = jobID
	return nil
}

func TestJobProcessorPublishesFreshItemsOnly(t *testing.T) {
	job := jobs.Job{ID: "j1", Name: "Blog", Kind: jobs.KindPosts}
	items := []domain.Item{
		{ID: "a1", Title: "old", Kind: domain.ItemPost},
		{ID: "a2", Title: "new", Kind: domain.ItemPost},
	}

	deduper := &fakeDeduper{seen: map[string]bool{"a1": true}}
	pub := &fakePublisher{}

	processor := NewJobProcessor(&fakeRegistry{
		fetcher: &fakeFetcher{id: "posts", items: items},
	}, fakeEnricher{prefix: "enriched-"}, pub, nil, deduper)

	if err := processor.Process(context.Background(), job); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	evt := pub.events[0]
	if evt.Item.ID != "a2" || evt.Item.Title != "enriched-new" {
		t.Fatalf("unexpected item %+v", evt.Item)
	}
	if evt.JobID != "j1" || evt.JobName != "Blog" || evt.Kind != domain.ItemPost {
		t.Fatalf("unexpected event envelope %+v", evt)
	}
	if !deduper.seen["a2"] {
		t.Fatalf("Mark not called for new item")
	}
	if deduper.markedBy["a2"] != "j1" {
		t.Fatalf("expected a2 marked by j1, got %q", deduper.markedBy["a2"])
	}
}

func TestJobProcessorAggregatesPublishErrorsAndSkipsMark(t *testing.T) {
	pub := &fakePublisher{errOnID: "bad"}
	deduper := &fakeDeduper{}
	processor := NewJobProcessor(&fakeRegistry{
		fetcher: &fakeFetcher{id: "posts", items: []domain.Item{{ID: "bad"}, {ID: "good"}}},
	}, nil, pub, nil, deduper)

	err := processor.Process(context.Background(), jobs.Job{ID: "j1"})
	if err == nil || !strings.Contains(err.Error(), "bad") {
		t.Fatalf("expected error mentioning bad item, got %v", err)
	}
	if deduper.seen["bad"] {
		t.Fatalf("failed item must not be marked")
	}
	if !deduper.seen["good"] {
		t.Fatalf("successful item should be marked")
	}
}

func TestJobProcessorWithoutPublisherStillMarks(t *testing.T) {
	deduper := &fakeDeduper{}
	processor := NewJobProcessor(&fakeRegistry{
		fetcher: &fakeFetcher{id: "route", items: []domain.Item{{ID: "s1", Kind: domain.ItemSnapshot}}},
	}, nil, nil, nil, deduper)

	if err := processor.Process(context.Background(), jobs.Job{ID: "j"}); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !deduper.seen["s1"] {
		t.Fatalf("expected snapshot to be marked")
	}
}

func TestJobProcessorWrapsFetchErrors(t *testing.T) {
	cause := errors.New("status 500")
	processor := NewJobProcessor(&fakeRegistry{fetcher: &fakeFetcher{id: "p", err: cause}}, nil, nil, nil, nil)

	err := processor.Process(context.Background(), jobs.Job{ID: "j"})
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
}

func TestFilterNewItemsHandlesDeduperErrors(t *testing.T) {
	deduper := &fakeDeduper{
		seen:    map[string]bool{"keep": false, "skip": true},
		failID:  "error",
		failErr: errors.New("lookup failed"),
	}
	processor := NewJobProcessor(&fakeRegistry{fetcher: &fakeFetcher{id: "p"}}, nil, nil, nil, deduper)
	items := []domain.Item{{ID: "keep"}, {ID: "skip"}, {ID: "error"}}

	filtered := processor.filterNewItems(jobs.Job{ID: "p"}, items)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 items after filter, got %d", len(filtered))
	}
	if filtered[0].ID != "keep" || filtered[1].ID != "error" {
		t.Fatalf("unexpected filter result %#v", filtered)
	}
}
