package identity

import "errors"

var (
	// ErrMissingEmail means the provider returned no email address, which
	// reconciliation requires.
	ErrMissingEmail = errors.New("provider profile has no email address")
	// ErrDuplicateEmailBlocked means the email already belongs to an
	// unrelated account and the duplicate-email policy forbids creating
	// or reusing one.
	ErrDuplicateEmailBlocked = errors.New("email already registered to an existing account")
	// ErrAccountNotFound is returned by stores on lookup misses.
	ErrAccountNotFound = errors.New("account not found")
	// ErrIdentityNotFound is returned by stores when no account carries
	// the given provider identity link.
	ErrIdentityNotFound = errors.New("provider identity not linked to any account")
	// ErrAccountInactive blocks sign-in finalization for deactivated accounts.
	ErrAccountInactive = errors.New("account is not active")
	// ErrUnknownPolicy rejects unparseable duplicate-email policy values.
	ErrUnknownPolicy = errors.New("unknown duplicate email policy")
)
