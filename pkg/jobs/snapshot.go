package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/samvad-hq/wpcom-harvester/internal/domain"
	"github.com/samvad-hq/wpcom-harvester/pkg/wpcom"
)

// snapshotFetcher emits a single item holding a whole payload. The item id
// hashes the job id and payload, so an unchanged payload dedupes.
type snapshotFetcher struct {
	kind string
	api  API
}

// NewStatsFetcher snapshots sites/{site}/stats or one of its reports (job.Route).
func NewStatsFetcher(api API) Fetcher {
	return &snapshotFetcher{kind: KindStats, api: api}
}

// NewRouteFetcher snapshots an arbitrary route; "{site}" in the route is replaced by job.Site.
func NewRouteFetcher(api API) Fetcher {
	return &snapshotFetcher{kind: KindRoute, api: api}
}

func (f *snapshotFetcher) ID() string { return f.kind }

func (f *snapshotFetcher) Fetch(ctx context.Context, job Job) ([]domain.Item, error) {
	if !strings.EqualFold(job.Kind, f.kind) {
		return nil, fmt.Errorf("%s fetcher received incompatible job kind %q", f.kind, job.Kind)
	}
	if f.api == nil {
		return nil, fmt.Errorf("%s fetcher has no api client", f.kind)
	}

	var (
		payload any
		route   string
		err     error
	)
	switch f.kind {
	case KindStats:
		route = wpcom.StatsRoute(job.Site, job.Route)
		payload, err = f.api.StatsReport(ctx, job.Site, job.Route, jobParams(job))
	default:
		route = strings.ReplaceAll(job.Route, "{site}", job.Site)
		payload, err = f.api.Do(ctx, job.Method, route, jobParams(job))
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", route, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%s returned no payload", route)
	}

	canon, err := canonicalJSON(payload)
	if err != nil {
		return nil, err
	}

	return []domain.Item{{
		ID:      hashKey(job.ID, canon),
		Kind:    domain.ItemSnapshot,
		Site:    job.Site,
		Route:   route,
		Title:   job.Name,
		Payload: payload,
	}}, nil
}
