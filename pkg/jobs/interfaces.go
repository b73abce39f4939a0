package jobs

import (
	"context"

	"github.com/samvad-hq/wpcom-harvester/internal/domain"
	"github.com/samvad-hq/wpcom-harvester/pkg/wpcom"
)

// Fetcher runs a job and converts the response into items.
type Fetcher interface {
	ID() string
	Fetch(ctx context.Context, job Job) ([]domain.Item, error)
}

// FetcherRegistry resolves the fetcher implementation for a given job.
type FetcherRegistry interface {
	FetcherFor(job Job) (Fetcher, error)
}

// API is the slice of *wpcom.Client the fetchers call.
type API interface {
	Posts(ctx context.Context, site string, params wpcom.Params) (any, error)
	StatsReport(ctx context.Context, site, report string, params wpcom.Params) (any, error)
	Do(ctx context.Context, method, route string, params wpcom.Params) (any, error)
}
