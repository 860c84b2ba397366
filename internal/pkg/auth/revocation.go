package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:access_token:"

// RevocationStore tracks logged-out token ids until they expire
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisRevocationStore keeps revoked token ids in Redis with a TTL equal to the token lifetime
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore creates a Redis backed revocation store
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

// Revoke marks jti as revoked until expiresAt
func (s *RedisRevocationStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil // already expired, nothing to deny
	}
	if err := s.client.Set(ctx, revokedKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked checks whether jti was revoked
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := s.client.Get(ctx, revokedKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("revocation lookup failed: %w", err)
	}
	return true, nil
}

func revokedKey(jti string) string {
	return revokedKeyPrefix + jti
}

// NoopRevocationStore is used when Redis is not configured. Logout becomes a no-op.
type NoopRevocationStore struct{}

func (NoopRevocationStore) Revoke(context.Context, string, time.Time) error { return nil }

func (NoopRevocationStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
