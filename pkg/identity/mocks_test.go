package identity_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/socialauth/pkg/identity"
)

type mockAccountStore struct {
	mock.Mock
}

var _ identity.AccountStore = (*mockAccountStore)(nil)

func (m *mockAccountStore) FindByEmail(ctx context.Context, email string) (*identity.Account, error) {
	args := m.Called(ctx, email)
	account, _ := args.Get(0).(*identity.Account)
	return account, args.Error(1)
}

func (m *mockAccountStore) FindByIdentity(ctx context.Context, providerID, providerUserID string) (*identity.Account, error) {
	args := m.Called(ctx, providerID, providerUserID)
	account, _ := args.Get(0).(*identity.Account)
	return account, args.Error(1)
}

func (m *mockAccountStore) Create(ctx context.Context, account *identity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountStore) LinkIdentity(ctx context.Context, accountID uuid.UUID, providerID, providerUserID string) error {
	args := m.Called(ctx, accountID, providerID, providerUserID)
	return args.Error(0)
}

func (m *mockAccountStore) FinalizeSignIn(ctx context.Context, account *identity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
