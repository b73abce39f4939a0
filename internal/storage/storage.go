// Package storage remembers which harvested items were already published.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store tracks published item IDs together with the job that produced them.
// Entries expire after the configured TTL so a snapshot that reverts to an
// earlier payload is published again eventually.
type Store interface {
	Close() error
	Seen(id string) (bool, error)
	Mark(id, jobID string) error
	// Counts returns live entries per job id.
	Counts() (map[string]int, error)
}

// Options controls retention for concrete store implementations.
type Options struct {
	ItemTTL         time.Duration
	CleanupInterval time.Duration
}

const (
	defaultItemTTL         = 14 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend: "bbolt", "memory" or "none".
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "memory":
		return newMemoryStore(opts), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.ItemTTL <= 0 {
		opts.ItemTTL = defaultItemTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                    { return nil }
func (noopStore) Seen(string) (bool, error)       { return false, nil }
func (noopStore) Mark(string, string) error       { return nil }
func (noopStore) Counts() (map[string]int, error) { return map[string]int{}, nil }
