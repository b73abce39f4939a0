package storage

import (
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// memoryStore keeps seen ids for the life of the process. Values are job ids.
type memoryStore struct {
	lru *expirable.LRU[string, string]
}

func newMemoryStore(opts Options) *memoryStore {
	return &memoryStore{lru: expirable.NewLRU[string, string](0, nil, opts.ItemTTL)}
}

func (m *memoryStore) Close() error {
	m.lru.Purge()
	return nil
}

func (m *memoryStore) Seen(id string) (bool, error) {
	_, ok := m.lru.Get(id)
	return ok, nil
}

func (m *memoryStore) Mark(id, jobID string) error {
	m.lru.Add(id, jobID)
	return nil
}

func (m *memoryStore) Counts() (map[string]int, error) {
	out := make(map[string]int)
	for _, jobID := range m.lru.Values() {
		out[jobID]++
	}
	return out, nil
}
