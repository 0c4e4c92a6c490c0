// Package store keeps upstream responses in memory for a bounded time.
package store

import (
	"sync"
	"time"

	"github.com/preston-bernstein/nba-explorer/internal/raw"
)

type entry struct {
	records []raw.Record
	expires time.Time
}

// MemoryStore is a thread-safe TTL cache of raw record batches keyed by request.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// NewMemoryStore constructs an empty MemoryStore whose entries live for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Get returns the batch stored under key if it has not expired.
func (s *MemoryStore) Get(key string) ([]raw.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || !s.now().Before(e.expires) {
		return nil, false
	}
	return append([]raw.Record(nil), e.records...), true
}

// Set stores a batch under key, replacing any previous one, and drops expired entries.
func (s *MemoryStore) Set(key string, records []raw.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, k)
		}
	}
	s.entries[key] = entry{
		records: append([]raw.Record(nil), records...),
		expires: now.Add(s.ttl),
	}
}

// Len reports how many entries are held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
