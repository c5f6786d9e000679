package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/socialauth/pkg/identity"
	"github.com/dmitrymomot/socialauth/pkg/provider"
)

// profileFetcher retrieves and normalizes the provider's userinfo using an
// already-authorized access token.
type profileFetcher func(ctx context.Context, client *http.Client, accessToken string) (identity.Profile, error)

// oauth2Gateway satisfies ProviderGateway on top of golang.org/x/oauth2.
// It owns no provider specifics beyond the endpoint, scopes, and userinfo
// mapping supplied by its constructor.
type oauth2Gateway struct {
	providerID string
	conf       *oauth2.Config
	fetch      profileFetcher
	authOpts   []oauth2.AuthCodeOption
	httpClient *http.Client
}

// NewOAuth2Constructor builds a Constructor for a provider that speaks
// standard OAuth2 authorization-code flow.
func NewOAuth2Constructor(providerID string, endpoint oauth2.Endpoint, scopes []string, fetch profileFetcher, authOpts ...oauth2.AuthCodeOption) Constructor {
	return func(creds provider.Credentials) (ProviderGateway, error) {
		return &oauth2Gateway{
			providerID: providerID,
			conf: &oauth2.Config{
				ClientID:     creds.Key,
				ClientSecret: creds.Secret,
				RedirectURL:  creds.CallbackURL,
				Scopes:       scopes,
				Endpoint:     endpoint,
			},
			fetch:      fetch,
			authOpts:   authOpts,
			httpClient: &http.Client{Timeout: 10 * time.Second},
		}, nil
	}
}

// Authenticate redirects the browser to the provider's authorization page.
// The redirect ends the current request; the flow resumes on the callback.
func (g *oauth2Gateway) Authenticate(w http.ResponseWriter, r *http.Request, state string) error {
	http.Redirect(w, r, g.conf.AuthCodeURL(state, g.authOpts...), http.StatusFound)
	return nil
}

// FetchProfile exchanges the authorization code and maps the provider's
// userinfo response to a normalized profile.
func (g *oauth2Gateway) FetchProfile(ctx context.Context, code string) (identity.Profile, error) {
	tok, err := g.conf.Exchange(ctx, code)
	if err != nil {
		// Exchange failures mean the handshake never completed; the exact
		// provider error is kept for logs but classified uniformly.
		return identity.Profile{}, errors.Join(ErrProfileUnavailable, err)
	}

	profile, err := g.fetch(ctx, g.httpClient, tok.AccessToken)
	if err != nil {
		return identity.Profile{}, errors.Join(ErrProfileUnavailable, err)
	}

	profile.ProviderID = g.providerID
	return profile, nil
}

var _ ProviderGateway = (*oauth2Gateway)(nil)
