package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryCounterStore is the process-local CounterStore. Expired windows are
// purged lazily on lookup and periodically by the janitor.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]*windowEntry

	stopCh   chan struct{}
	stopOnce sync.Once
}

type windowEntry struct {
	count   int64
	resetAt time.Time
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		counters: make(map[string]*windowEntry),
		stopCh:   make(chan struct{}),
	}
}

func (s *MemoryCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.counters[key]
	if entry == nil || !now.Before(entry.resetAt) {
		entry = &windowEntry{count: 0, resetAt: now.Add(window)}
		s.counters[key] = entry
	}
	entry.count++
	return entry.count, entry.resetAt, nil
}

// StartJanitor sweeps expired windows in bulk every interval until Stop.
func (s *MemoryCounterStore) StartJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				s.sweep(now)
			case <-s.stopCh:
				return
			}
		}
	}()
}

func (s *MemoryCounterStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *MemoryCounterStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.counters {
		if !now.Before(entry.resetAt) {
			delete(s.counters, key)
		}
	}
}

// Len returns the number of live windows, expired included until swept.
func (s *MemoryCounterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counters)
}
