package attempts

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps failure counts in process. Suitable for single-instance
// and sandbox deployments; multi-instance setups use the redis store.
type MemoryStore struct {
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	count     int
	expiresAt time.Time
}

func NewMemoryStore(window time.Duration) *MemoryStore {
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryStore{
		window:  window,
		now:     time.Now,
		entries: make(map[string]*memoryEntry),
	}
}

func (s *MemoryStore) RecordFailure(_ context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.liveEntryLocked(key)
	if entry == nil {
		entry = &memoryEntry{expiresAt: s.now().Add(s.window)}
		s.entries[key] = entry
	}
	entry.count++
	return entry.count, nil
}

func (s *MemoryStore) Count(_ context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry := s.liveEntryLocked(key); entry != nil {
		return entry.count, nil
	}
	return 0, nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) liveEntryLocked(key string) *memoryEntry {
	entry, ok := s.entries[key]
	if !ok {
		return nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return nil
	}
	return entry
}
