package kv

import (
	"context"
	"sync"
	"time"
)

type MemoryRecent struct {
	mu    sync.Mutex
	lists map[string][]string
}

func NewMemoryRecent() *MemoryRecent {
	return &MemoryRecent{lists: make(map[string][]string)}
}

func (m *MemoryRecent) Add(_ context.Context, userID, query string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := []string{query}
	for _, q := range m.lists[userID] {
		if q != query {
			next = append(next, q)
		}
	}
	if len(next) > MaxRecentSearches {
		next = next[:MaxRecentSearches]
	}
	m.lists[userID] = next
	return append([]string(nil), next...), nil
}

func (m *MemoryRecent) List(_ context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.lists[userID]...), nil
}

func (m *MemoryRecent) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lists, userID)
	return nil
}

type idemEntry struct {
	value   string
	expires time.Time
}

type MemoryIdempotency struct {
	mu      sync.Mutex
	entries map[string]idemEntry
	now     func() time.Time
}

func NewMemoryIdempotency() *MemoryIdempotency {
	return &MemoryIdempotency{entries: make(map[string]idemEntry), now: time.Now}
}

func (m *MemoryIdempotency) Get(_ context.Context, userID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := userID + "\x00" + key
	e, ok := m.entries[k]
	if !ok {
		return "", false, nil
	}
	if m.now().After(e.expires) {
		delete(m.entries, k)
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *MemoryIdempotency) Set(_ context.Context, userID, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[userID+"\x00"+key] = idemEntry{value: value, expires: m.now().Add(ttl)}
	return nil
}
