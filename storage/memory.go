package storage

import (
	"slices"
	"sync"
)

// MemoryArea is an in-memory Area that remembers insertion order.
// It is safe for concurrent use.
type MemoryArea struct {
	mu    sync.RWMutex
	items map[string]string
	order []string
	quota int
	used  int
}

type MemoryOption func(*MemoryArea)

// WithQuota caps the total size of keys and values in bytes.
// Zero or negative means unlimited.
func WithQuota(bytes int) MemoryOption {
	return func(m *MemoryArea) {
		m.quota = bytes
	}
}

// NewMemoryArea constructs an empty MemoryArea.
func NewMemoryArea(options ...MemoryOption) *MemoryArea {
	m := &MemoryArea{
		items: make(map[string]string),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *MemoryArea) GetItem(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *MemoryArea) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, exists := m.items[key]
	used := m.used + len(value)
	if exists {
		used -= len(prev)
	} else {
		used += len(key)
	}
	if m.quota > 0 && used > m.quota {
		return ErrQuotaExceeded
	}

	if !exists {
		m.order = append(m.order, key)
	}
	m.items[key] = value
	m.used = used
	return nil
}

func (m *MemoryArea) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, ok := m.items[key]
	if !ok {
		return nil
	}
	delete(m.items, key)
	m.used -= len(key) + len(prev)
	if i := slices.Index(m.order, key); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	return nil
}

func (m *MemoryArea) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order)
}

// Len returns the number of stored items.
func (m *MemoryArea) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
