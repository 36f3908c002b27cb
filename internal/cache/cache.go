// internal/cache/cache.go
//
// Small string cache used for process-wide derived values such as the
// average attempts remaining across active games.
// Implementations:
//   - Memory: process-local map with optional expiry.
//   - Redis:  shared across server instances.

package cache

import (
	"context"
	"sync"
	"time"
)

// Cache stores string values by key. A ttl of zero means no expiry.
type Cache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns the value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
}

type entry struct {
	value     string
	expiresAt time.Time // zero for no expiry
}

// Memory is an in-process Cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory constructs an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry), now: time.Now}
}

func (m *Memory) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		return "", false, nil
	}
	return e.value, true, nil
}
