package guest

import (
	"sync"
	"time"
)

// Store is the ephemeral key-value storage the serializer writes to.
// Synchronous, tab/session-scoped semantics: values vanish when the
// session expires and are never shared across owners.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// memoryStore is an in-process Store with per-entry TTL. Expired entries
// are dropped lazily on read and on every write sweep.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemoryStore creates a Store whose entries expire after ttl.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (s *memoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return "", false
	}
	return entry.value, true
}

func (s *memoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[key] = memoryEntry{value: value, expiresAt: now.Add(s.ttl)}
}

func (s *memoryStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}
