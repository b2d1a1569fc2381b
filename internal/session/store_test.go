package session

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startRedis runs a throwaway redis container, skipping when docker is unavailable.
func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}
	pool.MaxWait = time.Minute

	resource, err := pool.Run("redis", "7-alpine", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	var rdb *redis.Client
	err = pool.Retry(func() error {
		rdb = redis.NewClient(&redis.Options{Addr: resource.GetHostPort("6379/tcp")})
		return rdb.Ping(context.Background()).Err()
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisStore(t *testing.T) {
	rdb := startRedis(t)
	store := NewRedisStore(rdb)
	ctx := context.Background()

	_, err := store.TakeNonce(ctx, "0xa")
	assert.ErrorIs(t, err, ErrNoChallenge)

	require.NoError(t, store.SetNonce(ctx, "0xa", "n-1", time.Minute))
	nonce, err := store.TakeNonce(ctx, "0xa")
	require.NoError(t, err)
	assert.Equal(t, "n-1", nonce)

	_, err = store.TakeNonce(ctx, "0xa")
	assert.ErrorIs(t, err, ErrNoChallenge)

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := rdb.TTL(ctx, revokedPrefix+"jti-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRedisStoreManagerRoundTrip(t *testing.T) {
	m := NewManager(NewRedisStore(startRedis(t)), []byte("secret"))

	token, claims, err := m.Issue("0xb")
	require.NoError(t, err)
	require.NoError(t, m.Revoke(context.Background(), claims))

	_, err = m.Parse(context.Background(), token)
	assert.ErrorIs(t, err, ErrRevoked)
}
