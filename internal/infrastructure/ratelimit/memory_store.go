package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowCounter struct {
	count   int64
	resetAt time.Time
}

// MemoryStore is an in-process fixed-window counter store. Suitable for
// single-instance deployments; multi-instance deployments should use
// the Redis store so limits hold across replicas.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*windowCounter

	// now is swappable for tests
	now func() time.Time
}

// NewMemoryStore creates a memory store and starts a janitor that
// evicts expired windows.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		counters: make(map[string]*windowCounter),
		now:      time.Now,
	}
	go s.janitor(time.Minute)
	return s
}

// Incr bumps the counter for the key's current window
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c, ok := s.counters[key]
	if !ok || !now.Before(c.resetAt) {
		c = &windowCounter{resetAt: now.Add(window)}
		s.counters[key] = c
	}
	c.count++
	return c.count, c.resetAt, nil
}

func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := s.now()
		for key, c := range s.counters {
			if !now.Before(c.resetAt) {
				delete(s.counters, key)
			}
		}
		s.mu.Unlock()
	}
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
