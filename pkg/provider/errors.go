package provider

import "errors"

var (
	ErrUnknownProvider     = errors.New("unknown provider")
	ErrProviderUnavailable = errors.New("provider is disabled")
	ErrMissingCredentials  = errors.New("provider credentials are not configured")
	ErrInvalidInventory    = errors.New("invalid provider inventory")
)
