package ports

import (
	"context"
	"errors"
	"time"
)

// ErrRateLimited is returned by adapters when a caller exceeded its quota.
var ErrRateLimited = errors.New("rate limit exceeded")

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed    bool
	Remaining  int
	ResetAfter time.Duration
}

// RateLimiter admits or rejects requests per key within fixed windows.
// It allows the transport layer to share quotas across multiple instances (replicas).
type RateLimiter interface {
	// Allow records one request for key and reports whether it fits the quota.
	Allow(ctx context.Context, key string) (Decision, error)
}
