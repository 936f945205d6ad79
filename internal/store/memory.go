package store

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when no zone lookup is cached for a key.
	ErrNotFound = errors.New("no cached zone for key")
)

// ZoneEntry is a memoized timezone lookup. Found is false for points outside any
// timezone polygon; that negative result is cached as well.
type ZoneEntry struct {
	ZoneID   string
	Found    bool
	StoredAt time.Time
}

// Stats reports cache usage counters.
type Stats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// MemoryStore is a concurrency-safe in-memory cache of timezone lookups.
type MemoryStore struct {
	mu sync.RWMutex

	// key: rounded coordinate, value: lookup result
	data map[string]ZoneEntry
	// insertion order, oldest first
	order []string

	// retention configuration
	maxEntries int           // max number of cached lookups
	maxAge     time.Duration // optional max age for entries

	hits   uint64
	misses uint64

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxEntries is <= 0, it is treated as unlimited; maxAge <= 0 disables expiry.
func NewMemoryStore(maxEntries int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]ZoneEntry),
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveZone stores a lookup result and enforces retention by count.
func (s *MemoryStore) SaveZone(key, zoneID string, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		s.order = append(s.order, key)
	}
	s.data[key] = ZoneEntry{
		ZoneID:   zoneID,
		Found:    found,
		StoredAt: s.now(),
	}

	if s.maxEntries > 0 && len(s.order) > s.maxEntries {
		over := len(s.order) - s.maxEntries
		for _, k := range s.order[:over] {
			delete(s.data, k)
		}
		s.order = s.order[over:]
	}
}

// GetZone returns the cached lookup for key. Expired entries count as missing.
func (s *MemoryStore) GetZone(key string) (ZoneEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.data[key]
	if !ok || s.expired(entry) {
		s.misses++
		return ZoneEntry{}, ErrNotFound
	}
	s.hits++
	return entry, nil
}

// Prune drops expired entries and returns how many were removed.
func (s *MemoryStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxAge <= 0 {
		return 0
	}

	kept := s.order[:0]
	removed := 0
	for _, k := range s.order {
		if s.expired(s.data[k]) {
			delete(s.data, k)
			removed++
			continue
		}
		kept = append(kept, k)
	}
	s.order = kept
	return removed
}

// Stats returns a snapshot of the cache counters.
func (s *MemoryStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Entries: len(s.data),
		Hits:    s.hits,
		Misses:  s.misses,
	}
}

func (s *MemoryStore) expired(e ZoneEntry) bool {
	if s.maxAge <= 0 {
		return false
	}
	cutoff := s.now().Add(-s.maxAge)
	return e.StoredAt.Before(cutoff)
}
