package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyLimiter fails until healed.
type flakyLimiter struct {
	healthy bool
	calls   int
}

func (f *flakyLimiter) Allow(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	f.calls++
	if !f.healthy {
		return false, errors.New("connection refused")
	}
	return true, nil
}

func TestFailoverLimiter_FallsBack(t *testing.T) {
	logger := zerolog.Nop()
	primary := &flakyLimiter{healthy: false}
	fallback := NewMemoryLimiter()
	limiter := NewFailoverLimiter(primary, fallback, &logger)

	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, 1, 10, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, primary.calls)

	// While marked down the primary is not retried on every call.
	_, err = limiter.Allow(ctx, 1, 10, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
}

func TestFailoverLimiter_Recovers(t *testing.T) {
	logger := zerolog.Nop()
	primary := &flakyLimiter{healthy: false}
	limiter := NewFailoverLimiter(primary, NewMemoryLimiter(), &logger)

	ctx := context.Background()

	_, err := limiter.Allow(ctx, 1, 10, time.Minute)
	require.NoError(t, err)

	// Simulate the recovery window elapsing, then heal the primary.
	primary.healthy = true
	limiter.lastCheck.Store(time.Now().Add(-2 * time.Minute).UnixNano())

	allowed, err := limiter.Allow(ctx, 1, 10, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.False(t, limiter.isDown.Load())
}

func TestFailoverLimiter_HealthyPrimary(t *testing.T) {
	logger := zerolog.Nop()
	primary := &flakyLimiter{healthy: true}
	limiter := NewFailoverLimiter(primary, NewMemoryLimiter(), &logger)

	allowed, err := limiter.Allow(context.Background(), 1, 10, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, primary.calls)
}
