package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialauth/pkg/cookie"
)

var (
	secretA = strings.Repeat("a", 32)
	secretB = strings.Repeat("b", 32)
)

func requestWith(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("no secrets", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.New(nil)
		require.ErrorIs(t, err, cookie.ErrNoSecret)

		_, err = cookie.New([]string{""})
		require.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("short secret", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.New([]string{"too-short"})
		require.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})
}

func TestManager_PlainCookies(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		m.Set(w, "session", "value-1")

		got, err := m.Get(requestWith(w.Result().Cookies()), "session")
		require.NoError(t, err)
		assert.Equal(t, "value-1", got)
	})

	t.Run("get missing cookie", func(t *testing.T) {
		t.Parallel()

		_, err := m.Get(requestWith(nil), "absent")
		require.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("delete expires the cookie", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		m.Delete(w, "session")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
		assert.Empty(t, cookies[0].Value)
	})

	t.Run("default attributes", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		m.Set(w, "session", "v")

		c := w.Result().Cookies()[0]
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	})

	t.Run("per-call option overrides", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		m.Set(w, "session", "v", cookie.WithMaxAge(60), cookie.WithPath("/auth"))

		c := w.Result().Cookies()[0]
		assert.Equal(t, 60, c.MaxAge)
		assert.Equal(t, "/auth", c.Path)
	})
}

func TestManager_SignedCookies(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	t.Run("signed round trip", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		m.SetSigned(w, "flow", "opaque-token")

		got, err := m.GetSigned(requestWith(w.Result().Cookies()), "flow")
		require.NoError(t, err)
		assert.Equal(t, "opaque-token", got)
	})

	t.Run("tampered value rejected", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		m.SetSigned(w, "flow", "opaque-token")

		cookies := w.Result().Cookies()
		cookies[0].Value = "x" + cookies[0].Value

		_, err := m.GetSigned(requestWith(cookies), "flow")
		require.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("value signed for another name rejected", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		m.SetSigned(w, "flow", "opaque-token")

		stolen := w.Result().Cookies()[0]
		r := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		r.AddCookie(&http.Cookie{Name: "other", Value: stolen.Value})

		_, err := m.GetSigned(r, "other")
		require.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("unsigned value rejected", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		r.AddCookie(&http.Cookie{Name: "flow", Value: "not-signed"})

		_, err := m.GetSigned(r, "flow")
		require.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("secret rotation verifies old signatures", func(t *testing.T) {
		t.Parallel()

		old, err := cookie.New([]string{secretA})
		require.NoError(t, err)
		w := httptest.NewRecorder()
		old.SetSigned(w, "flow", "opaque-token")

		rotated, err := cookie.New([]string{secretB, secretA})
		require.NoError(t, err)

		got, err := rotated.GetSigned(requestWith(w.Result().Cookies()), "flow")
		require.NoError(t, err)
		assert.Equal(t, "opaque-token", got)
	})

	t.Run("unknown secret rejected", func(t *testing.T) {
		t.Parallel()

		foreign, err := cookie.New([]string{secretB})
		require.NoError(t, err)
		w := httptest.NewRecorder()
		foreign.SetSigned(w, "flow", "opaque-token")

		_, err = m.GetSigned(requestWith(w.Result().Cookies()), "flow")
		require.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})
}
