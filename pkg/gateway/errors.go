package gateway

import "errors"

var (
	// ErrProfileUnavailable means the provider denied the login or the
	// handshake never completed, so no profile can be fetched.
	ErrProfileUnavailable = errors.New("provider profile unavailable")
	// ErrNoConstructor means a provider is registered and enabled but has
	// no gateway constructor, which is a wiring error.
	ErrNoConstructor = errors.New("no gateway constructor registered for provider")
)
