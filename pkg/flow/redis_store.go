package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "socialauth:flow:"

// RedisStore implements Store on Redis. The TTL is enforced by Redis key
// expiry, so sessions disappear on their own when a user never returns
// from the provider.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix overrides the Redis key prefix.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed flow store with the given session TTL.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		ttl:    ttl,
		prefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Begin(ctx context.Context, token, providerID, state string) error {
	if token == "" {
		return ErrInvalidToken
	}

	payload, err := json.Marshal(Session{
		ProviderID: providerID,
		State:      state,
		Phase:      PhaseInitiated,
		StartedAt:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal flow session: %w", err)
	}

	// Plain SET overwrites any previous attempt: last writer wins.
	if err := s.client.Set(ctx, s.prefix+token, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store flow session: %w", err)
	}
	return nil
}

func (s *RedisStore) Current(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidToken
	}

	raw, err := s.client.Get(ctx, s.prefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNoActiveSession
		}
		return Session{}, fmt.Errorf("load flow session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return Session{}, fmt.Errorf("decode flow session: %w", err)
	}

	if session.Phase != PhaseInitiated {
		return Session{}, ErrNoActiveSession
	}

	return session, nil
}

func (s *RedisStore) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.client.Del(ctx, s.prefix+token).Err(); err != nil {
		return fmt.Errorf("clear flow session: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
