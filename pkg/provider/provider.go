package provider

// Descriptor identifies a supported external identity provider.
type Descriptor struct {
	// ID is the stable string key, e.g. "linkedin".
	ID string
	// Enabled controls whether logins may be initiated with this provider.
	Enabled bool
	// Order is the display weight for login widgets; lower sorts first.
	// It has no effect on the login flow itself.
	Order int
}

// Credentials is the complete per-provider configuration required to
// construct an external provider gateway.
type Credentials struct {
	Key    string
	Secret string
	// CallbackURL is the single fixed absolute URL of the callback
	// endpoint. It is identical for every provider; the provider id
	// travels in the flow session, not in the URL, because providers
	// require a stable pre-registered callback.
	CallbackURL string
}

// SecretsSource is a read-only view over configuration holding per-provider
// key/secret pairs.
type SecretsSource interface {
	Secrets(providerID string) (key, secret string, err error)
}

// StaticSecrets is a SecretsSource backed by an in-memory map, typically
// populated from the provider inventory file.
type StaticSecrets map[string]KeyPair

// KeyPair holds one provider's opaque credential material.
type KeyPair struct {
	Key    string
	Secret string
}

func (s StaticSecrets) Secrets(providerID string) (string, string, error) {
	kp, ok := s[providerID]
	if !ok {
		return "", "", ErrMissingCredentials
	}
	return kp.Key, kp.Secret, nil
}

var _ SecretsSource = (StaticSecrets)(nil)
