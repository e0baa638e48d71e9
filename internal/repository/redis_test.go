package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisLimiter(t *testing.T) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLimiter(client), mr
}

func TestRedisLimiter_Allow(t *testing.T) {
	limiter, _ := setupRedisLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, 1, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, 1, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRedisLimiter_WindowExpiry(t *testing.T) {
	limiter, mr := setupRedisLimiter(t)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, 1, 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, 1, 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// The counter resets when the window expires.
	mr.FastForward(time.Minute + time.Second)

	allowed, err = limiter.Allow(ctx, 1, 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiter_NilClient(t *testing.T) {
	limiter := NewRedisLimiter(nil)

	_, err := limiter.Allow(context.Background(), 1, 1, time.Minute)
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	assert.NoError(t, Ping(context.Background(), client))

	mr.Close()
	assert.Error(t, Ping(context.Background(), client))
}
