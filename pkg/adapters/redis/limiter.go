// Package redis provides a Redis-backed rate limiter so that several
// instances of the HTTP API share one quota per client.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/regula/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Limiter implements ports.RateLimiter using Redis fixed windows: one
// counter per key and window, created by INCR and expired with the window.
type Limiter struct {
	client *backend.Client
	prefix string
	limit  int
	window time.Duration
}

type Option func(*Limiter)

// WithPrefix sets the key prefix for counters.
func WithPrefix(prefix string) Option {
	return func(l *Limiter) {
		l.prefix = prefix
	}
}

// WithLimit sets the number of requests admitted per window.
func WithLimit(limit int) Option {
	return func(l *Limiter) {
		l.limit = limit
	}
}

// WithWindow sets the window length.
func WithWindow(window time.Duration) Option {
	return func(l *Limiter) {
		l.window = window
	}
}

// New creates a new Redis limiter with options.
func New(address, password string, db int, opts ...Option) *Limiter {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis limiter from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Limiter {
	l := &Limiter{
		client: client,
		prefix: "regula:ratelimit:",
		limit:  60,
		window: time.Minute,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) key(key string, start time.Time) string {
	return l.prefix + key + ":" + strconv.FormatInt(start.Unix(), 10)
}

// Allow records one request for key.
func (l *Limiter) Allow(ctx context.Context, key string) (ports.Decision, error) {
	now := time.Now()
	start := now.Truncate(l.window)
	counter := l.key(key, start)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, counter)
	pipe.Expire(ctx, counter, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return ports.Decision{}, fmt.Errorf("failed to count request in redis: %w", err)
	}

	count := int(incr.Val())
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return ports.Decision{
		Allowed:    count <= l.limit,
		Remaining:  remaining,
		ResetAfter: start.Add(l.window).Sub(now),
	}, nil
}

// Ping checks connectivity.
func (l *Limiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (l *Limiter) Close() error {
	return l.client.Close()
}
