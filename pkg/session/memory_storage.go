package session

import (
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStorage is an in-memory Storage implementation. It models the
// browser cookie jar in the client runtime and backs tests; expired entries
// are dropped lazily on read.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string]memoryEntry)}
}

// Get returns the named value if present and unexpired.
func (m *MemoryStorage) Get(name string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.entries[name]
	m.mu.RUnlock()

	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, name)
		m.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

// Set stores the named value. A non-positive ttl stores it without expiry.
func (m *MemoryStorage) Set(name, value string, ttl time.Duration) bool {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[name] = entry
	m.mu.Unlock()
	return true
}

// Delete removes the named value.
func (m *MemoryStorage) Delete(name string) {
	m.mu.Lock()
	delete(m.entries, name)
	m.mu.Unlock()
}
