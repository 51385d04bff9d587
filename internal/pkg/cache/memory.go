package cache

import (
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is a process-local TTL cache. Entries are evicted lazily on
// read; there is no background sweep because the store only ever holds a
// handful of well-known keys and reads are frequent.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Set(key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return "", false
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return "", false
	}
	return entry.value, true
}

func (s *MemoryStore) Clear(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(keys) == 0 {
		s.entries = make(map[string]memoryEntry)
		return nil
	}
	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}
