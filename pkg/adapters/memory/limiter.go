package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/regula/pkg/ports"
)

// Limiter implements ports.RateLimiter in memory with fixed windows.
// Safe for concurrent use. Quotas are per process.
type Limiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]bucket
}

type bucket struct {
	start time.Time
	count int
}

// LimiterOption configures a Limiter.
type LimiterOption func(*Limiter)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) LimiterOption {
	return func(l *Limiter) {
		l.now = now
	}
}

// NewLimiter admits limit requests per key in each window.
func NewLimiter(limit int, window time.Duration, opts ...LimiterOption) *Limiter {
	l := &Limiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]bucket),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow records one request for key.
func (l *Limiter) Allow(ctx context.Context, key string) (ports.Decision, error) {
	now := l.now()
	start := now.Truncate(l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.buckets[key]
	if !b.start.Equal(start) {
		b = bucket{start: start}
	}
	b.count++
	l.buckets[key] = b

	remaining := l.limit - b.count
	if remaining < 0 {
		remaining = 0
	}
	return ports.Decision{
		Allowed:    b.count <= l.limit,
		Remaining:  remaining,
		ResetAfter: start.Add(l.window).Sub(now),
	}, nil
}
