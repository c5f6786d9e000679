package flow

import "errors"

var (
	// ErrNoActiveSession means a callback arrived without a prior
	// initiate, or the session expired in between.
	ErrNoActiveSession = errors.New("no active login session")
	// ErrInvalidToken rejects empty or malformed session tokens.
	ErrInvalidToken = errors.New("invalid flow session token")
)
