package backendstub

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrTokenUnknown indicates the bearer token is absent or expired.
var ErrTokenUnknown = errors.New("backendstub: unknown token")

// TokenStore issues and resolves bearer tokens, backed by Redis with a
// per-token TTL.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore constructs a TokenStore.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &TokenStore{client: client, ttl: ttl}
}

// Issue creates a fresh token bound to the given user ID.
func (ts *TokenStore) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := ts.client.Set(ctx, ts.key(token), userID, ts.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user ID a token is bound to.
func (ts *TokenStore) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrTokenUnknown
	}
	userID, err := ts.client.Get(ctx, ts.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenUnknown
		}
		return "", err
	}
	return userID, nil
}

// Revoke deletes a token. Revoking an unknown token is a no-op.
func (ts *TokenStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := ts.client.Del(ctx, ts.key(token)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// Renew re-issues a token for the same user and revokes the old one.
func (ts *TokenStore) Renew(ctx context.Context, token string) (string, error) {
	userID, err := ts.Resolve(ctx, token)
	if err != nil {
		return "", err
	}
	fresh, err := ts.Issue(ctx, userID)
	if err != nil {
		return "", err
	}
	_ = ts.Revoke(ctx, token)
	return fresh, nil
}

func (ts *TokenStore) key(token string) string {
	return "stub:token:" + token
}
