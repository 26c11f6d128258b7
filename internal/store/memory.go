package store

import (
	"fmt"
	"sync"
)

// MemoryStore is an in-process store with an optional byte quota,
// mirroring the quota behavior of browser-local storage.
type MemoryStore struct {
	mu       sync.RWMutex
	items    map[string]string
	maxBytes int
}

// NewMemoryStore creates a store limited to maxBytes of total value
// data. Zero means unlimited.
func NewMemoryStore(maxBytes int) *MemoryStore {
	return &MemoryStore{
		items:    make(map[string]string),
		maxBytes: maxBytes,
	}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.items[key]
	return value, ok
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.maxBytes > 0 {
		total := len(value)
		for k, v := range m.items {
			if k != key {
				total += len(v)
			}
		}
		if total > m.maxBytes {
			return fmt.Errorf("setting %q: %w", key, ErrQuotaExceeded)
		}
	}
	m.items[key] = value
	return nil
}

func (m *MemoryStore) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}
