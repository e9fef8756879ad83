package cache

import (
	"context"
	"sync"
	"time"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

// MemoryStore is an in-process result store for development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry)}
}

func (s *MemoryStore) Find(ctx context.Context, hash string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[hash]
	if !ok {
		return nil, ErrCacheMiss
	}
	return copyEntry(entry), nil
}

func (s *MemoryStore) Merge(ctx context.Context, hash string, results map[domain.Capability]domain.CapabilityResult) error {
	if len(results) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[hash]
	if !ok {
		entry = &Entry{
			Hash:    hash,
			Results: make(map[domain.Capability]domain.CapabilityResult),
		}
		s.entries[hash] = entry
	}
	for cap, res := range results {
		entry.Results[cap] = res
	}
	entry.UpdatedAt = time.Now().UTC()
	return nil
}

func copyEntry(e *Entry) *Entry {
	out := &Entry{
		Hash:      e.Hash,
		Results:   make(map[domain.Capability]domain.CapabilityResult, len(e.Results)),
		UpdatedAt: e.UpdatedAt,
	}
	for cap, res := range e.Results {
		out.Results[cap] = res
	}
	return out
}
