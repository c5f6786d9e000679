// Package cookie provides an HMAC-signing cookie manager. Values written
// with SetSigned are rejected on read if the signature does not verify,
// which makes cookies safe to use as opaque client-held references.
//
// Multiple secrets are supported for rotation: the first secret signs new
// cookies, every listed secret is tried on verification.
package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

const minSecretLength = 32

type Manager struct {
	secrets  []string
	defaults Options
}

func New(secrets []string, opts ...Option) (*Manager, error) {
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}

	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	defaults = applyOptions(defaults, opts)

	return &Manager{
		secrets:  secrets,
		defaults: defaults,
	}, nil
}

// Set writes a plain cookie with the manager's default attributes.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	options := applyOptions(m.defaults, opts)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}

// Get reads a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return cookie.Value, nil
}

// Delete expires the named cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	})
}

// SetSigned writes a cookie whose value carries an HMAC-SHA256 signature.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) {
	m.Set(w, name, m.sign(name, value), opts...)
}

// GetSigned reads a signed cookie, returning ErrInvalidSignature when the
// value was tampered with or signed with an unknown secret.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(name, raw)
}

func (m *Manager) sign(name, value string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(value))
	mac := computeMAC(m.secrets[0], name, payload)
	return payload + "." + base64.RawURLEncoding.EncodeToString(mac)
}

func (m *Manager) verify(name, raw string) (string, error) {
	payload, sig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrInvalidSignature
	}

	gotMAC, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", ErrInvalidSignature
	}

	for _, secret := range m.secrets {
		want := computeMAC(secret, name, payload)
		if subtle.ConstantTimeCompare(want, gotMAC) == 1 {
			value, err := base64.RawURLEncoding.DecodeString(payload)
			if err != nil {
				return "", ErrInvalidSignature
			}
			return string(value), nil
		}
	}

	return "", ErrInvalidSignature
}

// The cookie name participates in the MAC so a signed value cannot be
// replayed under a different cookie name.
func computeMAC(secret, name, payload string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(name))
	mac.Write([]byte{'|'})
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}
