package provider

import "fmt"

// Resolver produces the complete Credentials for a provider, validating
// registration, enablement, and credential completeness on every call.
// Configuration is re-resolved on both phases of the login flow; only the
// provider id survives the redirect round trip.
type Resolver struct {
	registry *Registry
	secrets  SecretsSource
}

func NewResolver(registry *Registry, secrets SecretsSource) *Resolver {
	return &Resolver{registry: registry, secrets: secrets}
}

// Resolve returns the credentials for providerID with the given callback
// URL attached. The callback URL is computed fresh per request by the
// caller because it may vary by host and scheme.
//
// Errors: ErrUnknownProvider for an unregistered id, ErrProviderUnavailable
// for a disabled one, ErrMissingCredentials when the key or secret resolves
// to empty. Absent credentials are a configuration error, never a silent
// no-op.
func (r *Resolver) Resolve(providerID, callbackURL string) (Credentials, error) {
	d, err := r.registry.Get(providerID)
	if err != nil {
		return Credentials{}, err
	}
	if !d.Enabled {
		return Credentials{}, fmt.Errorf("%w: %s", ErrProviderUnavailable, providerID)
	}

	key, secret, err := r.secrets.Secrets(providerID)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %s", ErrMissingCredentials, providerID)
	}
	if key == "" || secret == "" {
		return Credentials{}, fmt.Errorf("%w: %s", ErrMissingCredentials, providerID)
	}

	return Credentials{
		Key:         key,
		Secret:      secret,
		CallbackURL: callbackURL,
	}, nil
}
