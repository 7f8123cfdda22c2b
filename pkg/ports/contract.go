package ports

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRateLimiterContract runs a suite of tests to verify that a RateLimiter
// implementation adheres to the defined interface contract. The limiter must
// be configured with the given limit and a window longer than the test.
func RunRateLimiterContract(t *testing.T, limiter RateLimiter, limit int) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405.000000")

	t.Run("Allows up to the limit", func(t *testing.T) {
		key := prefix + "-a"
		for i := 0; i < limit; i++ {
			d, err := limiter.Allow(ctx, key)
			require.NoError(t, err)
			assert.True(t, d.Allowed, "request %d should be allowed", i+1)
			assert.Equal(t, limit-i-1, d.Remaining)
		}

		d, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.False(t, d.Allowed, "request over the limit must be rejected")
		assert.Equal(t, 0, d.Remaining)
		assert.Greater(t, d.ResetAfter, time.Duration(0))
	})

	t.Run("Keys are independent", func(t *testing.T) {
		for i := 0; i < limit; i++ {
			_, err := limiter.Allow(ctx, prefix+"-b")
			require.NoError(t, err)
		}
		d, err := limiter.Allow(ctx, prefix+"-c")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	})

	t.Run("Concurrent callers never exceed the limit", func(t *testing.T) {
		key := prefix + "-d"
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			allowed int
		)
		for i := 0; i < limit*3; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d, err := limiter.Allow(ctx, key)
				if err != nil {
					t.Error(fmt.Errorf("allow: %w", err))
					return
				}
				if d.Allowed {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, limit, allowed)
	})
}
