package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/socialauth/pkg/logger"
	"github.com/dmitrymomot/socialauth/pkg/sanitizer"
	"github.com/dmitrymomot/socialauth/pkg/slug"
)

// Reconciler maps an external profile onto a local account under the
// configured duplicate-email policy and finalizes sign-in.
type Reconciler struct {
	store  AccountStore
	policy DuplicateEmailPolicy
	log    *slog.Logger

	usernameFn func(displayName string) string
}

// ReconcilerOption configures a Reconciler during construction.
type ReconcilerOption func(*Reconciler)

// WithLogger configures the logger for the reconciler.
func WithLogger(l *slog.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		if l != nil {
			r.log = l
		}
	}
}

// WithUsernameFunc overrides how usernames are derived from provider
// display names. The account store stays the final uniqueness authority.
func WithUsernameFunc(fn func(displayName string) string) ReconcilerOption {
	return func(r *Reconciler) {
		if fn != nil {
			r.usernameFn = fn
		}
	}
}

// NewReconciler constructs a reconciliation engine.
// Defaults: logger discards, usernames are slugified display names with a
// random suffix fallback for empty results.
func NewReconciler(store AccountStore, policy DuplicateEmailPolicy, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		store:      store,
		policy:     policy,
		log:        logger.NewDiscard(),
		usernameFn: defaultUsername,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps profile to a local account and finalizes sign-in.
//
// The presenting identity is checked first: an account already linked to
// (provider, providerUserID) is an idempotent re-login under every policy,
// including block-and-advise. Only then does the email branch apply:
//
//   - allow: reuse the existing account with that email unchanged;
//   - merge: reuse it and record the identity link on it;
//   - block: fail with ErrDuplicateEmailBlocked, since the email belongs
//     to an account this identity did not create.
//
// With no matching email, a new active account is created and linked. A
// lost create race (unique key collision) re-reads once and resolves the
// winner under the same policy rules.
func (r *Reconciler) Resolve(ctx context.Context, profile Profile) (*Account, error) {
	if profile.Email == "" {
		return nil, ErrMissingEmail
	}
	profile.Email = sanitizer.NormalizeEmail(profile.Email)

	linked, err := r.store.FindByIdentity(ctx, profile.ProviderID, profile.ProviderUserID)
	if err == nil {
		return r.signIn(ctx, linked)
	}
	if !errors.Is(err, ErrIdentityNotFound) {
		return nil, fmt.Errorf("failed to check identity link: %w", err)
	}

	existing, err := r.store.FindByEmail(ctx, profile.Email)
	if err == nil {
		return r.resolveExisting(ctx, existing, profile)
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to look up account by email: %w", err)
	}

	return r.createAccount(ctx, profile)
}

// resolveExisting applies the duplicate-email policy to an account that
// holds the profile's email but carries no link for the presenting identity.
func (r *Reconciler) resolveExisting(ctx context.Context, account *Account, profile Profile) (*Account, error) {
	switch r.policy {
	case PolicyBlockAndAdvise:
		r.log.Info("duplicate email blocked",
			logger.Provider(profile.ProviderID),
			logger.AccountID(account.ID),
			logger.Component("identity"),
		)
		return nil, ErrDuplicateEmailBlocked

	case PolicyMergeIntoExisting:
		if err := r.store.LinkIdentity(ctx, account.ID, profile.ProviderID, profile.ProviderUserID); err != nil {
			return nil, fmt.Errorf("failed to link identity to existing account: %w", err)
		}
		return r.signIn(ctx, account)

	default: // PolicyAllowDuplicate
		return r.signIn(ctx, account)
	}
}

func (r *Reconciler) createAccount(ctx context.Context, profile Profile) (*Account, error) {
	account := &Account{
		ID:        uuid.New(),
		Email:     profile.Email,
		Username:  r.usernameFn(profile.DisplayName),
		Active:    true,
		CreatedAt: time.Now(),
	}

	if err := r.store.Create(ctx, account); err != nil {
		if !errors.Is(err, ErrDuplicateEmailBlocked) {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}

		// Lost a check-then-act race: another request created the account
		// between our lookup and create. Re-read once and resolve the
		// winner under the same policy rules.
		winner, readErr := r.store.FindByEmail(ctx, profile.Email)
		if readErr != nil {
			return nil, fmt.Errorf("failed to re-read account after create collision: %w", readErr)
		}
		return r.resolveExisting(ctx, winner, profile)
	}

	// Record provenance so block-and-advise can distinguish this identity's
	// own account from a foreign one on the next login.
	if err := r.store.LinkIdentity(ctx, account.ID, profile.ProviderID, profile.ProviderUserID); err != nil {
		return nil, fmt.Errorf("failed to link identity: %w", err)
	}

	r.log.Info("account created",
		logger.Provider(profile.ProviderID),
		logger.AccountID(account.ID),
		logger.Component("identity"),
	)

	return r.signIn(ctx, account)
}

func (r *Reconciler) signIn(ctx context.Context, account *Account) (*Account, error) {
	if err := r.store.FinalizeSignIn(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to finalize sign-in: %w", err)
	}
	return account, nil
}

func defaultUsername(displayName string) string {
	username := slug.Make(sanitizer.CollapseWhitespace(displayName), slug.MaxLength(32))
	if username == "" {
		return slug.Make("user", slug.WithSuffix(6))
	}
	return username
}
