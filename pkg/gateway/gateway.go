package gateway

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/socialauth/pkg/identity"
	"github.com/dmitrymomot/socialauth/pkg/provider"
)

// ProviderGateway is the capability required of any provider
// implementation. The OAuth wire protocol lives entirely behind it.
//
// Authenticate conventionally writes a redirect response, which suspends
// the flow out-of-band: the current request ends and the provider calls
// back into a fresh one. FetchProfile is only valid on that callback
// request.
type ProviderGateway interface {
	// Authenticate begins the provider handshake, normally by emitting a
	// redirect to the provider's authorization endpoint with the given
	// CSRF state.
	Authenticate(w http.ResponseWriter, r *http.Request, state string) error

	// FetchProfile exchanges the callback authorization code for the
	// authenticated profile. Fails with ErrProfileUnavailable when the
	// handshake did not complete or was denied.
	FetchProfile(ctx context.Context, code string) (identity.Profile, error)
}

// Constructor builds a ProviderGateway from resolved credentials. The same
// constructor runs on both phases of the flow; only credentials and the
// provider id carry across the redirect.
type Constructor func(creds provider.Credentials) (ProviderGateway, error)

// Constructors dispatches provider ids to gateway constructors. New
// providers are added by registering an entry, never by editing dispatch
// logic.
type Constructors map[string]Constructor

// Register adds or replaces the constructor for a provider id.
func (c Constructors) Register(providerID string, ctor Constructor) {
	c[providerID] = ctor
}

// DefaultConstructors returns the built-in provider set.
func DefaultConstructors() Constructors {
	return Constructors{
		ProviderGoogle:   GoogleConstructor(),
		ProviderGitHub:   GitHubConstructor(),
		ProviderLinkedIn: LinkedInConstructor(),
		ProviderFacebook: FacebookConstructor(),
	}
}
