// Package harvest runs configured jobs against the WordPress.com API and
// publishes items that were not seen before.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/wpcom-harvester/internal/logger"
	"github.com/samvad-hq/wpcom-harvester/pkg/jobs"
)

// Service runs jobs sequentially, one harvest pass at a time.
type Service struct {
	processor *JobProcessor
	log       logger.Logger
}

// NewService wires a harvest service around the fetcher registry.
func NewService(reg jobs.FetcherRegistry, pub EventPublisher, log logger.Logger, deduper Deduper) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{
		processor: NewJobProcessor(reg, NewEnricher(), pub, log, deduper),
		log:       log,
	}
}

// Run executes one pass over js. Per-job failures are joined; a cancelled
// context stops the pass without reporting the remaining jobs.
func (s *Service) Run(ctx context.Context, js []jobs.Job) error {
	if s == nil || s.processor == nil {
		return fmt.Errorf("harvest service is not initialized")
	}
	if len(js) == 0 {
		return fmt.Errorf("no jobs configured for harvesting")
	}

	if errs := s.runAll(ctx, js); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *Service) runAll(ctx context.Context, js []jobs.Job) []error {
	errs := make([]error, 0, len(js))

	for i, job := range js {
		if ctx.Err() != nil {
			return errs
		}

		if err := s.processor.Process(ctx, job); err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("job harvest failed", "job_error", map[string]any{
				"job_id": job.ID,
				"error":  err.Error(),
			})
		}

		if i < len(js)-1 && !sleep(ctx, job.RequestDelay()) {
			return errs
		}
	}

	return errs
}

// sleep waits d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
