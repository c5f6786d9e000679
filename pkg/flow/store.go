package flow

import "context"

// Store persists one flow session per browser session, keyed by an opaque
// token. Implementations must bound session lifetime with a TTL; a user who
// never returns from the provider leaves the entry to expire.
//
// Begin is last-writer-wins: a second login started before the first
// finishes silently abandons the first. That race is accepted, the worst
// outcome is an abandoned attempt, never corrupted state.
type Store interface {
	// Begin creates or overwrites the session for token, setting phase
	// initiated.
	Begin(ctx context.Context, token, providerID, state string) error

	// Current returns the in-flight session for token. It fails with
	// ErrNoActiveSession when no session exists, the session expired, or
	// the phase is not initiated.
	Current(ctx context.Context, token string) (Session, error)

	// End clears the session unconditionally. Ending an absent session is
	// not an error.
	End(ctx context.Context, token string) error
}
