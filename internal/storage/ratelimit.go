package storage

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type RateLimiter interface {
	// Allow reports whether one more request for key fits in its budget.
	Allow(ctx context.Context, key string) (bool, error)
}

var _ RateLimiter = (*MemoryRateLimiter)(nil)

// MemoryRateLimiter keeps one token bucket per key.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewMemoryRateLimiter(ratePerSec float64, burst int) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(ratePerSec),
		burst:    burst,
	}
}

func (m *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	limiter, ok := m.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(m.limit, m.burst)
		m.limiters[key] = limiter
	}
	m.mu.Unlock()

	return limiter.Allow(), nil
}
