package gateway_test

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/socialauth/pkg/gateway"
	"github.com/dmitrymomot/socialauth/pkg/identity"
	"github.com/dmitrymomot/socialauth/pkg/provider"
)

// fakeProviderGateway stands in for an external provider. Authenticate
// issues the redirect a real OAuth gateway would, and records the state so
// tests can echo it back on the callback.
type fakeProviderGateway struct {
	profile   identity.Profile
	authErr   error
	fetchErr  error
	lastState string
	lastCode  string
}

var _ gateway.ProviderGateway = (*fakeProviderGateway)(nil)

func (f *fakeProviderGateway) Authenticate(w http.ResponseWriter, r *http.Request, state string) error {
	if f.authErr != nil {
		return f.authErr
	}
	f.lastState = state
	http.Redirect(w, r, "https://provider.example/authorize?state="+state, http.StatusFound)
	return nil
}

func (f *fakeProviderGateway) FetchProfile(ctx context.Context, code string) (identity.Profile, error) {
	if f.fetchErr != nil {
		return identity.Profile{}, f.fetchErr
	}
	f.lastCode = code
	return f.profile, nil
}

func constructorFor(fake *fakeProviderGateway) gateway.Constructor {
	return func(creds provider.Credentials) (gateway.ProviderGateway, error) {
		return fake, nil
	}
}
