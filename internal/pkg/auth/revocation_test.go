package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRevocationStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisRevocationStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Entry disappears once the token would have expired anyway
	mr.FastForward(2 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisRevocationStore_ExpiredTokenIsNotStored(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisRevocationStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	require.NoError(t, store.Revoke(context.Background(), "old", time.Now().Add(-time.Second)))
	assert.False(t, mr.Exists(revokedKey("old")))
}

func TestRedisRevocationStore_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisRevocationStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	mr.Close()

	_, err := store.IsRevoked(context.Background(), "jti")
	assert.Error(t, err)
}
