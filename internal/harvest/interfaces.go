package harvest

import (
	"context"

	"github.com/samvad-hq/wpcom-harvester/internal/domain"
	"github.com/samvad-hq/wpcom-harvester/pkg/jobs"
	"github.com/samvad-hq/wpcom-harvester/pkg/publishers"
)

// ItemEnricher normalizes harvested items before they are published.
type ItemEnricher interface {
	Enrich(ctx context.Context, job jobs.Job, items []domain.Item) []domain.Item
}

// EventPublisher publishes events downstream and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers which items were already published and by which job.
type Deduper interface {
	Seen(id string) (bool, error)
	Mark(id, jobID string) error
}
