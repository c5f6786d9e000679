package gateway_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialauth/pkg/gateway"
	"github.com/dmitrymomot/socialauth/pkg/identity"
)

func TestHandler(t *testing.T) {
	t.Parallel()

	t.Run("login redirects to the provider", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, identity.PolicyBlockAndAdvise)
		h := env.svc.Handler()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/acme", nil))

		res := w.Result()
		assert.Equal(t, http.StatusFound, res.StatusCode)
		assert.Contains(t, res.Header.Get("Location"), "provider.example")
	})

	t.Run("login with unknown provider", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, identity.PolicyBlockAndAdvise)
		h := env.svc.Handler()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/nope", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "unknown provider", body["error"])
	})

	t.Run("login with disabled provider", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, identity.PolicyBlockAndAdvise)
		h := env.svc.Handler()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/dormant", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("login with misconfigured provider", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, identity.PolicyBlockAndAdvise)
		h := env.svc.Handler()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/keyless", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("callback without a login in progress", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, identity.PolicyBlockAndAdvise)
		h := env.svc.Handler()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/callback?state=x&code=y", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("successful callback redirects to the success url", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, identity.PolicyBlockAndAdvise, gateway.WithSuccessURL("/dashboard"))
		h := env.svc.Handler()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/acme", nil))
		loginCookies := w.Result().Cookies()

		q := url.Values{}
		q.Set("state", env.fakeAcme.lastState)
		q.Set("code", "auth-code")
		r := httptest.NewRequest(http.MethodGet, "/callback?"+q.Encode(), nil)
		for _, c := range loginCookies {
			r.AddCookie(c)
		}

		w = httptest.NewRecorder()
		h.ServeHTTP(w, r)

		res := w.Result()
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/dashboard", res.Header.Get("Location"))
	})

	t.Run("blocked duplicate email responds with conflict", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, identity.PolicyBlockAndAdvise)
		h := env.svc.Handler()

		// Seed an account through the first provider.
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/acme", nil))
		r := httptest.NewRequest(http.MethodGet, "/callback?state="+env.fakeAcme.lastState+"&code=c", nil)
		for _, c := range w.Result().Cookies() {
			r.AddCookie(c)
		}
		w2 := httptest.NewRecorder()
		h.ServeHTTP(w2, r)
		require.Equal(t, http.StatusSeeOther, w2.Code)

		// Same email from a different provider identity is refused.
		w3 := httptest.NewRecorder()
		h.ServeHTTP(w3, httptest.NewRequest(http.MethodGet, "/login/other", nil))
		r2 := httptest.NewRequest(http.MethodGet, "/callback?state="+env.fakeOther.lastState+"&code=c", nil)
		for _, c := range w3.Result().Cookies() {
			r2.AddCookie(c)
		}
		w4 := httptest.NewRecorder()
		h.ServeHTTP(w4, r2)

		assert.Equal(t, http.StatusConflict, w4.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w4.Body.Bytes(), &body))
		assert.Contains(t, body["error"], "already registered")
	})

	t.Run("providers listing", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, identity.PolicyBlockAndAdvise)
		h := env.svc.Handler()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/providers", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var list []struct {
			ID      string `json:"id"`
			Enabled bool   `json:"enabled"`
			Order   int    `json:"order"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 5)
		assert.Equal(t, "acme", list[0].ID)
		assert.True(t, list[0].Enabled)
		assert.Equal(t, "dormant", list[2].ID)
		assert.False(t, list[2].Enabled)
	})
}
