package session

import (
	"context"
	"sync"
	"time"
)

// Persisted keys, one value each per visitor.
const (
	KeyLoggedIn      = "isAdminLoggedIn"
	KeyRedirectAfter = "redirectAfterLogin"
)

// Storage persists gate state per visitor. Get reports ok=false for a
// missing key.
type Storage interface {
	Get(ctx context.Context, visitor, key string) (value string, ok bool, err error)
	Set(ctx context.Context, visitor, key, value string) error
	Delete(ctx context.Context, visitor, key string) error
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStorage keeps gate state in process. Entries expire after ttl
// (zero keeps them forever).
type MemoryStorage struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]memoryEntry
}

func NewMemoryStorage(ttl time.Duration) *MemoryStorage {
	return &MemoryStorage{ttl: ttl, now: time.Now, items: make(map[string]memoryEntry)}
}

func memoryKey(visitor, key string) string { return visitor + "\x00" + key }

func (m *MemoryStorage) Get(ctx context.Context, visitor, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := memoryKey(visitor, key)
	e, ok := m.items[k]
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.items, k)
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *MemoryStorage) Set(ctx context.Context, visitor, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memoryEntry{value: value}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.items[memoryKey(visitor, key)] = e
	return nil
}

func (m *MemoryStorage) Delete(ctx context.Context, visitor, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, memoryKey(visitor, key))
	return nil
}

var _ Storage = (*MemoryStorage)(nil)
