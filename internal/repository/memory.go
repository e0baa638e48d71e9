package repository

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryLimiter keeps a token bucket per user. It backs a single process
// only; the failover wrapper uses it when Redis is unreachable.
type MemoryLimiter struct {
	limiters sync.Map
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{}
}

func (m *MemoryLimiter) Allow(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	return m.getLimiter(userID, limit, window).Allow(), nil
}

func (m *MemoryLimiter) getLimiter(userID int64, limit int, window time.Duration) *rate.Limiter {
	if v, ok := m.limiters.Load(userID); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			return lim
		}
	}

	burst := limit
	if burst <= 0 {
		burst = 1
	}

	lim := rate.NewLimiter(rate.Limit(float64(limit)/window.Seconds()), burst)
	actual, loaded := m.limiters.LoadOrStore(userID, lim)
	if loaded {
		if actualLim, ok := actual.(*rate.Limiter); ok {
			return actualLim
		}
	}
	return lim
}
