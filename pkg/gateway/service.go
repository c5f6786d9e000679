package gateway

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/socialauth/pkg/cookie"
	"github.com/dmitrymomot/socialauth/pkg/flow"
	"github.com/dmitrymomot/socialauth/pkg/identity"
	"github.com/dmitrymomot/socialauth/pkg/logger"
	"github.com/dmitrymomot/socialauth/pkg/provider"
)

// CallbackURLFunc computes the fixed absolute callback URL for a request.
// The URL is identical for every provider but may vary by host and scheme,
// so it is computed fresh each time rather than stored.
type CallbackURLFunc func(r *http.Request) string

// Service is the externally callable surface of the login gateway: one
// BeginLogin or one CompleteLogin runs to completion within each request.
type Service struct {
	registry     *provider.Registry
	resolver     *provider.Resolver
	flows        flow.Store
	reconciler   *identity.Reconciler
	cookies      *cookie.Manager
	constructors Constructors
	callbackURL  CallbackURLFunc
	cookieName   string
	flowTTL      time.Duration
	successURL   string
	log          *slog.Logger
}

// Option configures a Service during construction.
type Option func(*Service)

// WithLogger configures the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithConstructors replaces the whole gateway constructor set.
func WithConstructors(c Constructors) Option {
	return func(s *Service) {
		if c != nil {
			s.constructors = c
		}
	}
}

// WithConstructor registers a single gateway constructor, e.g. for a
// custom provider on top of the defaults.
func WithConstructor(providerID string, ctor Constructor) Option {
	return func(s *Service) {
		s.constructors.Register(providerID, ctor)
	}
}

// WithCallbackURL computes the callback URL per request.
func WithCallbackURL(fn CallbackURLFunc) Option {
	return func(s *Service) {
		if fn != nil {
			s.callbackURL = fn
		}
	}
}

// WithFixedCallbackURL pins one absolute callback URL regardless of the
// incoming request. Typical behind a reverse proxy.
func WithFixedCallbackURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.callbackURL = func(*http.Request) string { return url }
		}
	}
}

// WithCookieName overrides the flow-session cookie name.
func WithCookieName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.cookieName = name
		}
	}
}

// WithFlowTTL bounds how long a login attempt may stay parked at the
// provider before it expires.
func WithFlowTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.flowTTL = ttl
		}
	}
}

// WithSuccessURL sets where the HTTP handler redirects after a completed
// login.
func WithSuccessURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.successURL = url
		}
	}
}

// New constructs the gateway service.
// Defaults: built-in constructors, 15 minute flow TTL, cookie "sa_flow",
// success redirect "/", callback URL derived from the request host at
// path /auth/callback, logger discards.
func New(registry *provider.Registry, resolver *provider.Resolver, flows flow.Store, reconciler *identity.Reconciler, cookies *cookie.Manager, opts ...Option) (*Service, error) {
	if registry == nil || resolver == nil || flows == nil || reconciler == nil || cookies == nil {
		return nil, errors.New("gateway: all dependencies are required")
	}

	s := &Service{
		registry:     registry,
		resolver:     resolver,
		flows:        flows,
		reconciler:   reconciler,
		cookies:      cookies,
		constructors: DefaultConstructors(),
		callbackURL:  defaultCallbackURL,
		cookieName:   "sa_flow",
		flowTTL:      15 * time.Minute,
		successURL:   "/",
		log:          logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Providers lists the known providers in display order, for login widgets.
func (s *Service) Providers() []provider.Descriptor {
	return s.registry.List()
}

// BeginLogin validates the provider, resolves its configuration, records
// the flow session, and hands control to the provider gateway, which
// redirects the browser.
//
// No session is created on failure: the configuration errors
// (ErrUnknownProvider, ErrProviderUnavailable, ErrMissingCredentials)
// surface before any state is written.
func (s *Service) BeginLogin(w http.ResponseWriter, r *http.Request, providerID string) error {
	ctx := r.Context()

	creds, err := s.resolver.Resolve(providerID, s.callbackURL(r))
	if err != nil {
		return err
	}

	ctor, ok := s.constructors[providerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoConstructor, providerID)
	}
	gw, err := ctor(creds)
	if err != nil {
		return fmt.Errorf("failed to construct provider gateway: %w", err)
	}

	// Reuse the browser's flow token when it already has one so a second
	// login overwrites the first (last-writer-wins); otherwise mint one.
	token, err := s.cookies.GetSigned(r, s.cookieName)
	if err != nil || token == "" {
		token, err = flow.NewToken()
		if err != nil {
			return fmt.Errorf("failed to generate flow token: %w", err)
		}
	}

	state, err := flow.NewState()
	if err != nil {
		return fmt.Errorf("failed to generate state: %w", err)
	}

	if err := s.flows.Begin(ctx, token, providerID, state); err != nil {
		return fmt.Errorf("failed to begin flow session: %w", err)
	}

	s.cookies.SetSigned(w, s.cookieName, token, cookie.WithMaxAge(int(s.flowTTL.Seconds())))

	if err := gw.Authenticate(w, r, state); err != nil {
		// Failed before the redirect could be written: clean up so the
		// user is not left with a stale initiated phase.
		_ = s.flows.End(ctx, token)
		s.cookies.Delete(w, s.cookieName)
		return fmt.Errorf("provider authenticate failed: %w", err)
	}

	s.log.InfoContext(ctx, "login initiated",
		logger.Provider(providerID),
		logger.Phase(string(flow.PhaseInitiated)),
		logger.Component("gateway"),
	)

	return nil
}

// CompleteLogin finishes the flow on the provider callback: it reads the
// provider id from the flow session, re-resolves configuration (only the
// provider id survives the redirect), rebuilds the gateway, fetches the
// profile, and reconciles it to a local account.
//
// The flow session is cleared on every terminal outcome, success or
// failure, so a failed attempt never wedges the browser session.
func (s *Service) CompleteLogin(w http.ResponseWriter, r *http.Request) (*identity.Account, error) {
	ctx := r.Context()

	token, err := s.cookies.GetSigned(r, s.cookieName)
	if err != nil {
		return nil, errors.Join(flow.ErrNoActiveSession, err)
	}

	session, err := s.flows.Current(ctx, token)
	if err != nil {
		s.cookies.Delete(w, s.cookieName)
		return nil, err
	}

	// From here on the attempt is terminal either way.
	defer func() {
		_ = s.flows.End(ctx, token)
		s.cookies.Delete(w, s.cookieName)
	}()

	account, err := s.completeLogin(w, r, session)
	if err != nil {
		s.log.ErrorContext(ctx, "login failed",
			logger.Provider(session.ProviderID),
			logger.Error(err),
			logger.Component("gateway"),
		)
		return nil, err
	}

	s.log.InfoContext(ctx, "login completed",
		logger.Provider(session.ProviderID),
		logger.AccountID(account.ID),
		logger.Phase(string(flow.PhaseCompleted)),
		logger.Component("gateway"),
	)

	return account, nil
}

func (s *Service) completeLogin(w http.ResponseWriter, r *http.Request, session flow.Session) (*identity.Account, error) {
	ctx := r.Context()
	query := r.URL.Query()

	if denied := query.Get("error"); denied != "" {
		return nil, fmt.Errorf("%w: provider returned %q", ErrProfileUnavailable, denied)
	}
	if state := query.Get("state"); state != session.State {
		return nil, fmt.Errorf("%w: state mismatch", ErrProfileUnavailable)
	}
	code := query.Get("code")
	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", ErrProfileUnavailable)
	}

	creds, err := s.resolver.Resolve(session.ProviderID, s.callbackURL(r))
	if err != nil {
		return nil, err
	}

	ctor, ok := s.constructors[session.ProviderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoConstructor, session.ProviderID)
	}
	gw, err := ctor(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to construct provider gateway: %w", err)
	}

	profile, err := gw.FetchProfile(ctx, code)
	if err != nil {
		return nil, err
	}

	return s.reconciler.Resolve(ctx, profile)
}

// defaultCallbackURL derives the callback URL from the incoming request,
// honoring X-Forwarded-Proto behind proxies.
func defaultCallbackURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/auth/callback"
}
