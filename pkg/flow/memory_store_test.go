package flow_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialauth/pkg/flow"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("begin then current", func(t *testing.T) {
		t.Parallel()

		store := flow.NewMemoryStore(time.Minute, 0)
		t.Cleanup(store.Close)

		require.NoError(t, store.Begin(ctx, "token-1", "google", "state-1"))

		session, err := store.Current(ctx, "token-1")
		require.NoError(t, err)
		assert.Equal(t, "google", session.ProviderID)
		assert.Equal(t, "state-1", session.State)
		assert.Equal(t, flow.PhaseInitiated, session.Phase)
		assert.WithinDuration(t, time.Now(), session.StartedAt, time.Second)
	})

	t.Run("current without begin", func(t *testing.T) {
		t.Parallel()

		store := flow.NewMemoryStore(time.Minute, 0)
		t.Cleanup(store.Close)

		_, err := store.Current(ctx, "missing")
		require.ErrorIs(t, err, flow.ErrNoActiveSession)
	})

	t.Run("begin overwrites existing session", func(t *testing.T) {
		t.Parallel()

		store := flow.NewMemoryStore(time.Minute, 0)
		t.Cleanup(store.Close)

		require.NoError(t, store.Begin(ctx, "token-1", "google", "state-1"))
		require.NoError(t, store.Begin(ctx, "token-1", "github", "state-2"))

		session, err := store.Current(ctx, "token-1")
		require.NoError(t, err)
		assert.Equal(t, "github", session.ProviderID)
		assert.Equal(t, "state-2", session.State)
	})

	t.Run("end clears session", func(t *testing.T) {
		t.Parallel()

		store := flow.NewMemoryStore(time.Minute, 0)
		t.Cleanup(store.Close)

		require.NoError(t, store.Begin(ctx, "token-1", "google", "state-1"))
		require.NoError(t, store.End(ctx, "token-1"))

		_, err := store.Current(ctx, "token-1")
		require.ErrorIs(t, err, flow.ErrNoActiveSession)
	})

	t.Run("end is idempotent", func(t *testing.T) {
		t.Parallel()

		store := flow.NewMemoryStore(time.Minute, 0)
		t.Cleanup(store.Close)

		require.NoError(t, store.End(ctx, "never-started"))
		require.NoError(t, store.End(ctx, ""))
	})

	t.Run("expired session", func(t *testing.T) {
		t.Parallel()

		store := flow.NewMemoryStore(10*time.Millisecond, 0)
		t.Cleanup(store.Close)

		require.NoError(t, store.Begin(ctx, "token-1", "google", "state-1"))
		time.Sleep(30 * time.Millisecond)

		_, err := store.Current(ctx, "token-1")
		require.ErrorIs(t, err, flow.ErrNoActiveSession)
	})

	t.Run("sweeper removes expired sessions", func(t *testing.T) {
		t.Parallel()

		store := flow.NewMemoryStore(10*time.Millisecond, 10*time.Millisecond)
		t.Cleanup(store.Close)

		require.NoError(t, store.Begin(ctx, "token-1", "google", "state-1"))

		assert.Eventually(t, func() bool {
			_, err := store.Current(ctx, "token-1")
			return err != nil
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("empty token rejected", func(t *testing.T) {
		t.Parallel()

		store := flow.NewMemoryStore(time.Minute, 0)
		t.Cleanup(store.Close)

		require.ErrorIs(t, store.Begin(ctx, "", "google", "state"), flow.ErrInvalidToken)
		_, err := store.Current(ctx, "")
		require.ErrorIs(t, err, flow.ErrInvalidToken)
	})
}

func TestNewToken(t *testing.T) {
	t.Parallel()

	a, err := flow.NewToken()
	require.NoError(t, err)
	b, err := flow.NewToken()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestNewState(t *testing.T) {
	t.Parallel()

	a, err := flow.NewState()
	require.NoError(t, err)
	b, err := flow.NewState()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
