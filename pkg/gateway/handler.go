package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/socialauth/pkg/flow"
	"github.com/dmitrymomot/socialauth/pkg/identity"
	"github.com/dmitrymomot/socialauth/pkg/provider"
)

// Handler mounts the gateway's HTTP surface:
//
//	GET /login/{provider}  begin a login, responds with a provider redirect
//	GET /callback          the single fixed callback endpoint
//	GET /providers         provider descriptors for login widgets, JSON
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/login/{provider}", s.handleLogin)
	r.Get("/callback", s.handleCallback)
	r.Get("/providers", s.handleProviders)
	return r
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "provider")
	if err := s.BeginLogin(w, r, providerID); err != nil {
		writeError(w, err)
	}
}

func (s *Service) handleCallback(w http.ResponseWriter, r *http.Request) {
	if _, err := s.CompleteLogin(w, r); err != nil {
		writeError(w, err)
		return
	}
	http.Redirect(w, r, s.successURL, http.StatusSeeOther)
}

func (s *Service) handleProviders(w http.ResponseWriter, r *http.Request) {
	type providerView struct {
		ID      string `json:"id"`
		Enabled bool   `json:"enabled"`
		Order   int    `json:"order"`
	}

	descriptors := s.Providers()
	out := make([]providerView, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, providerView{ID: d.ID, Enabled: d.Enabled, Order: d.Order})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the gateway error taxonomy to HTTP statuses without
// leaking internals; the full error stays in logs.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "login failed"

	switch {
	case errors.Is(err, provider.ErrUnknownProvider):
		status, message = http.StatusNotFound, "unknown provider"
	case errors.Is(err, provider.ErrProviderUnavailable):
		status, message = http.StatusForbidden, "provider is disabled"
	case errors.Is(err, provider.ErrMissingCredentials):
		status, message = http.StatusInternalServerError, "provider is misconfigured"
	case errors.Is(err, flow.ErrNoActiveSession):
		status, message = http.StatusConflict, "no login in progress"
	case errors.Is(err, ErrProfileUnavailable):
		status, message = http.StatusBadGateway, "provider did not authorize the login"
	case errors.Is(err, identity.ErrMissingEmail):
		status, message = http.StatusUnprocessableEntity, "provider returned no email address"
	case errors.Is(err, identity.ErrDuplicateEmailBlocked):
		status, message = http.StatusConflict, "email already registered, sign in with the existing account"
	case errors.Is(err, identity.ErrAccountInactive):
		status, message = http.StatusForbidden, "account is deactivated"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}
