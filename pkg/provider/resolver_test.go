package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialauth/pkg/provider"
)

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	registry := provider.NewRegistry([]provider.Descriptor{
		{ID: "google", Enabled: true},
		{ID: "github", Enabled: false},
		{ID: "linkedin", Enabled: true},
		{ID: "facebook", Enabled: true},
	})
	secrets := provider.StaticSecrets{
		"google":   {Key: "google-key", Secret: "google-secret"},
		"github":   {Key: "github-key", Secret: "github-secret"},
		"linkedin": {Key: "linkedin-key", Secret: ""},
	}
	resolver := provider.NewResolver(registry, secrets)

	const callbackURL = "https://example.com/auth/callback"

	t.Run("resolves enabled provider", func(t *testing.T) {
		t.Parallel()

		creds, err := resolver.Resolve("google", callbackURL)
		require.NoError(t, err)
		assert.Equal(t, "google-key", creds.Key)
		assert.Equal(t, "google-secret", creds.Secret)
		assert.Equal(t, callbackURL, creds.CallbackURL)
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.Resolve("twitter", callbackURL)
		require.ErrorIs(t, err, provider.ErrUnknownProvider)
	})

	t.Run("disabled provider", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.Resolve("github", callbackURL)
		require.ErrorIs(t, err, provider.ErrProviderUnavailable)
	})

	t.Run("empty secret is a configuration error", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.Resolve("linkedin", callbackURL)
		require.ErrorIs(t, err, provider.ErrMissingCredentials)
	})

	t.Run("no credentials at all", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.Resolve("facebook", callbackURL)
		require.ErrorIs(t, err, provider.ErrMissingCredentials)
	})

	t.Run("callback url passed through verbatim", func(t *testing.T) {
		t.Parallel()

		creds, err := resolver.Resolve("google", "https://other.example/cb")
		require.NoError(t, err)
		assert.Equal(t, "https://other.example/cb", creds.CallbackURL)
	})
}
