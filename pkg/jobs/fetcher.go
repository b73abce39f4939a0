package jobs

import (
	"fmt"
	"strings"
	"sync"
)

// fetcherRegistry implements FetcherRegistry.
type fetcherRegistry struct {
	fetchersByID   map[string]Fetcher
	fetchersByKind map[string]Fetcher
	mu             sync.RWMutex
}

// NewFetcherRegistry builds a registry for fetchers keyed by job id.
func NewFetcherRegistry(fetchers ...Fetcher) FetcherRegistry {
	return NewKindFetcherRegistry(nil, fetchers...)
}

// NewKindFetcherRegistry builds a registry with kind-based fetchers and optional job-specific overrides.
func NewKindFetcherRegistry(kindFetchers map[string]Fetcher, fetchers ...Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{
		fetchersByID:   make(map[string]Fetcher),
		fetchersByKind: make(map[string]Fetcher),
	}

	for _, f := range fetchers {
		reg.registerIDFetcher(f)
	}
	for kind, f := range kindFetchers {
		reg.registerKindFetcher(kind, f)
	}

	return reg
}

func (r *fetcherRegistry) registerIDFetcher(f Fetcher) {
	if f == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(f.ID()))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.fetchersByID[key] = f
	r.mu.Unlock()
}

func (r *fetcherRegistry) registerKindFetcher(kind string, f Fetcher) {
	if f == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(kind))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.fetchersByKind[key] = f
	r.mu.Unlock()
}

// FetcherFor selects the fetcher for the given job based on its id or kind.
func (r *fetcherRegistry) FetcherFor(job Job) (Fetcher, error) {
	if r == nil {
		return nil, fmt.Errorf("fetcher registry is nil")
	}
	if strings.TrimSpace(job.ID) == "" {
		return nil, fmt.Errorf("job id is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.fetchersByID[strings.ToLower(strings.TrimSpace(job.ID))]; ok {
		return f, nil
	}
	if kind := strings.ToLower(strings.TrimSpace(job.Kind)); kind != "" {
		if f, ok := r.fetchersByKind[kind]; ok {
			return f, nil
		}
	}

	return nil, fmt.Errorf("no fetcher registered for job %q (kind %q)", job.ID, job.Kind)
}

// DefaultFetcherRegistry wires the built-in fetchers to api.
func DefaultFetcherRegistry(api API) FetcherRegistry {
	return NewKindFetcherRegistry(map[string]Fetcher{
		KindPosts: NewPostsFetcher(api),
		KindStats: NewStatsFetcher(api),
		KindRoute: NewRouteFetcher(api),
	})
}
