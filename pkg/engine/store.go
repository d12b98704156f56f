package engine

import (
	"context"
	"sync"
	"time"
)

// SessionStore persists engagement state between turns. Get returns
// (nil, nil) when the session does not exist.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*State, error)
	Save(ctx context.Context, state *State) error
	Delete(ctx context.Context, sessionID string) error
	Count(ctx context.Context) (int, error)
}

// MemoryStore is an in-process SessionStore with TTL-based expiry. Suitable
// for single-instance deployments; use RedisStore when running more than
// one gateway.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry

	maxAge          time.Duration
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
}

type memoryEntry struct {
	state    *State
	lastSeen time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithMaxAge sets how long an idle session survives before eviction.
func WithMaxAge(d time.Duration) MemoryStoreOption {
	return func(m *MemoryStore) {
		if d > 0 {
			m.maxAge = d
		}
	}
}

// WithCleanupInterval sets how often expired sessions are swept.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(m *MemoryStore) {
		if d > 0 {
			m.cleanupInterval = d
		}
	}
}

// NewMemoryStore creates a memory store and starts its cleanup loop.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	m := &MemoryStore{
		sessions:        make(map[string]*memoryEntry),
		maxAge:          30 * time.Minute,
		cleanupInterval: 5 * time.Minute,
		stopCleanup:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	go m.cleanupLoop()
	return m
}

// Get returns a deep copy so callers never observe a state another turn is
// still mutating. Matches RedisStore, where the JSON round trip isolates
// readers the same way.
func (m *MemoryStore) Get(_ context.Context, sessionID string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	if time.Since(entry.lastSeen) > m.maxAge {
		return nil, nil
	}
	return entry.state.clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[state.SessionID] = &memoryEntry{state: state.clone(), lastSeen: time.Now()}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// Count applies the same age filter as Get, so the number reported between
// cleanup sweeps matches what lookups can actually see.
func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, entry := range m.sessions {
		if time.Since(entry.lastSeen) <= m.maxAge {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.evictExpired()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *MemoryStore) evictExpired() {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, entry := range m.sessions {
		if now.Sub(entry.lastSeen) > m.maxAge {
			delete(m.sessions, id)
		}
	}
}

// Close stops the cleanup loop.
func (m *MemoryStore) Close() {
	m.stopOnce.Do(func() { close(m.stopCleanup) })
}
