package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a process-local Store with per-entry TTL. It is the default
// backend when no redis address is configured.
type Memory struct {
	mu      sync.Mutex
	entries map[Key]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory returns a Memory store whose entries expire after ttl. A zero
// ttl keeps entries until they are invalidated.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[Key]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key Key) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (m *Memory) Set(_ context.Context, key Key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *Memory) Invalidate(_ context.Context, keys ...Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}
