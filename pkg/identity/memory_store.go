package identity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type identityKey struct {
	providerID     string
	providerUserID string
}

// MemoryStore implements AccountStore with in-process storage. Used in
// tests and local development.
type MemoryStore struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*Account
	byEmail    map[string]uuid.UUID
	links      map[identityKey]uuid.UUID
	lastSignIn map[uuid.UUID]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:       make(map[uuid.UUID]*Account),
		byEmail:    make(map[string]uuid.UUID),
		links:      make(map[identityKey]uuid.UUID),
		lastSignIn: make(map[uuid.UUID]time.Time),
	}
}

func (m *MemoryStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrAccountNotFound
	}
	account := *m.byID[id]
	return &account, nil
}

func (m *MemoryStore) FindByIdentity(ctx context.Context, providerID, providerUserID string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.links[identityKey{providerID, providerUserID}]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	account := *m.byID[id]
	return &account, nil
}

func (m *MemoryStore) Create(ctx context.Context, account *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[account.Email]; exists {
		return ErrDuplicateEmailBlocked
	}

	stored := *account
	m.byID[stored.ID] = &stored
	m.byEmail[stored.Email] = stored.ID
	return nil
}

func (m *MemoryStore) LinkIdentity(ctx context.Context, accountID uuid.UUID, providerID, providerUserID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[accountID]; !exists {
		return ErrAccountNotFound
	}
	m.links[identityKey{providerID, providerUserID}] = accountID
	return nil
}

func (m *MemoryStore) FinalizeSignIn(ctx context.Context, account *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, exists := m.byID[account.ID]
	if !exists {
		return ErrAccountNotFound
	}
	if !stored.Active {
		return ErrAccountInactive
	}
	m.lastSignIn[account.ID] = time.Now()
	return nil
}

// Deactivate flips an account inactive. Test helper mirroring what a host
// admin surface would do.
func (m *MemoryStore) Deactivate(accountID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if account, ok := m.byID[accountID]; ok {
		account.Active = false
	}
}

var _ AccountStore = (*MemoryStore)(nil)
