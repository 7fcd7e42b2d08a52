package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	value   string
	expires time.Time
}

// sweepInterval bounds how often a write scans the map for expired entries.
const sweepInterval = time.Minute

type Memory struct {
	mu        sync.Mutex
	items     map[string]entry
	now       func() time.Time
	lastSweep time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]entry), now: time.Now}
}

// get returns the live entry for key, dropping it if expired. Caller holds mu.
func (m *Memory) get(key string) (entry, bool) {
	e, ok := m.items[key]
	if !ok {
		return entry{}, false
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.items, key)
		return entry{}, false
	}
	return e, true
}

func (m *Memory) set(key, value string, ttl time.Duration) {
	now := m.now()
	if now.Sub(m.lastSweep) >= sweepInterval {
		m.sweep(now)
	}
	e := entry{value: value}
	if ttl > 0 {
		e.expires = now.Add(ttl)
	}
	m.items[key] = e
}

// sweep drops every expired entry. Revocation keys of deleted accounts are
// never read again, so reads alone would not reclaim them. Caller holds mu.
func (m *Memory) sweep(now time.Time) {
	for k, e := range m.items {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.items, k)
		}
	}
	m.lastSweep = now
}

func (m *Memory) Revoke(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(key, "1", ttl)
	return nil
}

func (m *Memory) IsRevoked(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.get(key)
	return ok, nil
}

func (m *Memory) TryLock(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.get(key); held {
		return "", false, nil
	}
	token := uuid.NewString()
	m.set(key, token, ttl)
	return token, true, nil
}

func (m *Memory) Unlock(_ context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.get(key); ok && e.value == token {
		delete(m.items, key)
	}
	return nil
}

func (m *Memory) Close() error { return nil }
