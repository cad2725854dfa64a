package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := NewRedisClient(mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	return rc, mr
}

func TestSetExAndGet(t *testing.T) {
	rc, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, rc.SetEx(ctx, "k", "v", time.Minute))

	got, err := rc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestGetMissingKey(t *testing.T) {
	rc, _ := newTestClient(t)

	_, err := rc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestExpiry(t *testing.T) {
	rc, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, rc.SetEx(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := rc.Get(ctx, "k")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestDel(t *testing.T) {
	rc, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, rc.SetEx(ctx, "k", "v", time.Minute))
	require.NoError(t, rc.Del(ctx, "k"))

	_, err := rc.Get(ctx, "k")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestNilClientCloseIsSafe(t *testing.T) {
	var rc *RedisClient
	assert.NoError(t, rc.Close())
}
