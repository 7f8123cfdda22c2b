package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/regula/pkg/adapters/redis"
	"github.com/aretw0/regula/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, opts ...redis.Option) (*redis.Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...), mr
}

func TestRedisLimiter_Contract(t *testing.T) {
	limiter, _ := newLimiter(t, redis.WithLimit(4), redis.WithWindow(time.Hour))
	ports.RunRateLimiterContract(t, limiter, 4)
}

func TestRedisLimiter_KeysExpireWithWindow(t *testing.T) {
	limiter, mr := newLimiter(t, redis.WithLimit(1), redis.WithWindow(time.Hour), redis.WithPrefix("test:"))
	ctx := context.Background()

	d, err := limiter.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "test:client:")
	assert.Equal(t, time.Hour, mr.TTL(keys[0]))

	mr.FastForward(time.Hour)
	assert.Empty(t, mr.Keys())
	require.NoError(t, limiter.Ping(ctx))
}

func TestRedisLimiter_BackendDown(t *testing.T) {
	limiter, mr := newLimiter(t)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "client")
	assert.Error(t, err)
}
