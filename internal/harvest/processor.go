package harvest

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/wpcom-harvester/internal/domain"
	"github.com/samvad-hq/wpcom-harvester/internal/logger"
	"github.com/samvad-hq/wpcom-harvester/pkg/jobs"
	"github.com/samvad-hq/wpcom-harvester/pkg/publishers"
)

// JobProcessor runs one job end to end: fetch, enrich, dedupe, publish, mark.
type JobProcessor struct {
	registry  jobs.FetcherRegistry
	enricher  ItemEnricher
	publisher EventPublisher
	log       logger.Logger
	deduper   Deduper
}

// NewJobProcessor wires a processor. enricher, publisher and deduper may be nil.
func NewJobProcessor(reg jobs.FetcherRegistry, enricher ItemEnricher, pub EventPublisher, log logger.Logger, deduper Deduper) *JobProcessor {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &JobProcessor{
		registry:  reg,
		enricher:  enricher,
		publisher: pub,
		log:       log,
		deduper:   deduper,
	}
}

// Process runs job once. An item is marked seen only after every sink accepted it,
// so a partially failed item is retried on the next pass.
func (p *JobProcessor) Process(ctx context.Context, job jobs.Job) error {
	if p == nil || p.registry == nil {
		return fmt.Errorf("job processor is not initialized")
	}

	fetcher, err := p.registry.FetcherFor(job)
	if err != nil {
		return fmt.Errorf("resolve fetcher for job %s: %w", job.ID, err)
	}

	items, err := fetcher.Fetch(ctx, job)
	if err != nil {
		return fmt.Errorf("fetch job %s: %w", job.ID, err)
	}

	if p.enricher != nil {
		items = p.enricher.Enrich(ctx, job, items)
	}

	fresh := p.filterNewItems(job, items)

	var errs []error
	published := 0
	for _, item := range fresh {
		if ctx.Err() != nil {
			break
		}
		if err := p.publish(ctx, job, item); err != nil {
			errs = append(errs, err)
			continue
		}
		published++
	}

	p.log.InfoObj("job harvest completed", "job_result", map[string]any{
		"job_id":          job.ID,
		"items_collected": len(items),
		"items_new":       len(fresh),
		"items_published": published,
	})

	return errors.Join(errs...)
}

func (p *JobProcessor) publish(ctx context.Context, job jobs.Job, item domain.Item) error {
	evt := publishers.NewEvent(job.ID, job.Name, item)

	if p.publisher == nil {
		p.log.InfoObj("item harvested", "event", evt)
	} else if _, err := p.publisher.Publish(ctx, evt); err != nil {
		return fmt.Errorf("publish item %s of job %s: %w", item.ID, job.ID, err)
	}

	if p.deduper != nil {
		if err := p.deduper.Mark(item.ID, job.ID); err != nil {
			return fmt.Errorf("mark item %s: %w", item.ID, err)
		}
	}
	return nil
}

// filterNewItems drops items the deduper has seen. Lookup failures keep the item.
func (p *JobProcessor) filterNewItems(job jobs.Job, items []domain.Item) []domain.Item {
	if p.deduper == nil {
		return items
	}

	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		seen, err := p.deduper.Seen(item.ID)
		if err != nil {
			p.log.WarnObj("seen lookup failed", "dedupe_error", map[string]any{
				"job_id":  job.ID,
				"item_id": item.ID,
				"error":   err.Error(),
			})
			out = append(out, item)
			continue
		}
		if !seen {
			out = append(out, item)
		}
	}
	return out
}
