package flow

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore implements Store with in-process storage. Suitable for tests
// and single-instance deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	ticker   *time.Ticker
	done     chan struct{}
}

// NewMemoryStore creates an in-memory flow store. Sessions expire after
// ttl; a background sweeper runs every cleanupInterval when positive.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		done:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

func (m *MemoryStore) Begin(ctx context.Context, token, providerID, state string) error {
	if token == "" {
		return ErrInvalidToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[token] = memoryEntry{
		session: Session{
			ProviderID: providerID,
			State:      state,
			Phase:      PhaseInitiated,
			StartedAt:  time.Now(),
		},
		expiresAt: time.Now().Add(m.ttl),
	}
	return nil
}

func (m *MemoryStore) Current(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidToken
	}

	m.mu.RLock()
	entry, exists := m.sessions[token]
	m.mu.RUnlock()

	if !exists {
		return Session{}, ErrNoActiveSession
	}

	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return Session{}, ErrNoActiveSession
	}

	if entry.session.Phase != PhaseInitiated {
		return Session{}, ErrNoActiveSession
	}

	return entry.session, nil
}

func (m *MemoryStore) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

// Close stops the background sweeper.
func (m *MemoryStore) Close() {
	if m.ticker != nil {
		m.ticker.Stop()
	}
	close(m.done)
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.done:
			return
		case <-m.ticker.C:
			now := time.Now()
			m.mu.Lock()
			for token, entry := range m.sessions {
				if now.After(entry.expiresAt) {
					delete(m.sessions, token)
				}
			}
			m.mu.Unlock()
		}
	}
}

var _ Store = (*MemoryStore)(nil)
