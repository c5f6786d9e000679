package identity

import (
	"context"

	"github.com/google/uuid"
)

// AccountStore is the host account system consumed by reconciliation.
//
// Create must enforce email uniqueness and fail with
// ErrDuplicateEmailBlocked on collision; the reconciler relies on that to
// resolve concurrent first logins of the same identity.
type AccountStore interface {
	// FindByEmail returns the account with the exact (normalized) email,
	// or ErrAccountNotFound.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindByIdentity returns the account linked to the provider identity,
	// or ErrIdentityNotFound.
	FindByIdentity(ctx context.Context, providerID, providerUserID string) (*Account, error)

	// Create persists a new account. ErrDuplicateEmailBlocked on a unique
	// key collision.
	Create(ctx context.Context, account *Account) error

	// LinkIdentity records the provider identity on an account.
	// Recording an already-present link is not an error.
	LinkIdentity(ctx context.Context, accountID uuid.UUID, providerID, providerUserID string) error

	// FinalizeSignIn marks the account as the signed-in identity in the
	// host system. ErrAccountInactive for deactivated accounts.
	FinalizeSignIn(ctx context.Context, account *Account) error
}
