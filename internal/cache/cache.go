package cache

import (
	"context"
	"sync"
	"time"
)

// Store is a named read cache for serialized list results. Repositories set
// entries on list fetches and invalidate on any write to the same entity.
type Store interface {
	Get(ctx context.Context, name string) ([]byte, bool)
	Set(ctx context.Context, name string, payload []byte)
	Invalidate(ctx context.Context, name string)
}

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// Memory is the in-process Store used when no redis is configured.
type Memory struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// NewMemory builds an in-memory Store with the given entry TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (m *Memory) Get(_ context.Context, name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[name]
	if !ok {
		return nil, false
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, name)
		return nil, false
	}
	return e.payload, true
}

func (m *Memory) Set(_ context.Context, name string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[name] = entry{payload: payload, expiresAt: m.now().Add(m.ttl)}
}

func (m *Memory) Invalidate(_ context.Context, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, name)
}
