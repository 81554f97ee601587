package ratelimit

import (
	"context"
	"sync"
	"time"

	"madebuy/internal/pkg/clock"
)

const sweepEvery = 512 // expired-entry sweep cadence, in Incr calls

type memoryEntry struct {
	count    int64
	windowAt time.Time // window end
}

// MemoryStore is the single-instance backing store. Entries are swept
// opportunistically so the map does not grow without bound under churning
// client keys.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	clock   clock.Clock
	calls   int
}

func NewMemoryStore(clk clock.Clock) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		clock:   clk,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	s.calls++
	if s.calls%sweepEvery == 0 {
		s.sweepLocked(now)
	}

	e, ok := s.entries[key]
	if !ok || !now.Before(e.windowAt) {
		e = &memoryEntry{windowAt: now.Add(window)}
		s.entries[key] = e
	}

	e.count++
	return e.count, e.windowAt.Sub(now), nil
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	for key, e := range s.entries {
		if !now.Before(e.windowAt) {
			delete(s.entries, key)
		}
	}
}

// Len is exposed for tests.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
