// Package gateway orchestrates social logins across external identity
// providers.
//
// A login is a two-phase redirect protocol modeled as two separate entry
// points, never as one function that pauses:
//
//	BeginLogin(provider)  resolve configuration, record the flow session,
//	                      redirect the browser to the provider
//	CompleteLogin()       on the fixed callback endpoint, rebuild the
//	                      provider gateway from the session's provider id,
//	                      fetch the profile, reconcile to a local account
//
// Provider implementations satisfy the ProviderGateway capability and are
// dispatched through a constructor registry keyed by provider id. The
// built-ins delegate the OAuth wire protocol to golang.org/x/oauth2;
// nothing in this package touches token formats or provider endpoints
// beyond endpoint URLs and userinfo mapping.
//
//	registry := provider.NewRegistry(descriptors)
//	resolver := provider.NewResolver(registry, secrets)
//	svc, err := gateway.New(registry, resolver, flowStore, reconciler, cookies,
//	    gateway.WithFixedCallbackURL("https://example.com/auth/callback"),
//	)
//	r.Mount("/auth", svc.Handler())
package gateway
