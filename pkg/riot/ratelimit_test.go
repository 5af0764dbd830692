package riot

import (
	"context"
	"testing"
	"time"

	"lolstats/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllowsUpToWindow(t *testing.T) {
	limiter := NewRateLimiter(config.LimitsConfiguration{
		Lower:  config.LimitConfiguration{Count: 3, ResetInterval: time.Hour},
		Higher: config.LimitConfiguration{Count: 100, ResetInterval: time.Hour},
	})

	for i := 0; i < 3; i++ {
		ok, _ := limiter.reserve(false)
		assert.True(t, ok)
	}

	ok, wait := limiter.reserve(false)
	assert.False(t, ok)
	assert.Greater(t, wait, 59*time.Minute)
}

func TestRateLimiterWaitHonoursContext(t *testing.T) {
	limiter := NewRateLimiter(config.LimitsConfiguration{
		Lower: config.LimitConfiguration{Count: 1, ResetInterval: time.Hour},
	})
	require.NoError(t, limiter.Wait(context.Background(), false))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx, false)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiterResetsWindow(t *testing.T) {
	limiter := NewRateLimiter(config.LimitsConfiguration{
		Lower: config.LimitConfiguration{Count: 1, ResetInterval: 20 * time.Millisecond},
	})

	require.NoError(t, limiter.Wait(context.Background(), false))

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background(), false))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestRateLimiterPacesBackgroundCalls(t *testing.T) {
	limiter := NewRateLimiter(config.LimitsConfiguration{
		Lower: config.LimitConfiguration{Count: 10, ResetInterval: 100 * time.Millisecond},
	})
	assert.Equal(t, 10*time.Millisecond, limiter.backgroundInterval)

	ok, _ := limiter.reserve(true)
	assert.True(t, ok)

	// A second background call right away must wait, on demand calls don't.
	ok, wait := limiter.reserve(true)
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	ok, _ = limiter.reserve(false)
	assert.True(t, ok)
}

func TestBackgroundContext(t *testing.T) {
	assert.False(t, IsBackground(context.Background()))
	assert.True(t, IsBackground(Background(context.Background())))
}
