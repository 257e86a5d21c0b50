package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowCapsRequestsPerSecond(t *testing.T) {
	r := NewRateLimiter(2, time.Millisecond)

	assert.True(t, r.Allow())
	assert.True(t, r.Allow())
	assert.False(t, r.Allow())
}

func TestAllowRecoversAfterWindow(t *testing.T) {
	r := NewRateLimiter(1, time.Millisecond)

	require.True(t, r.Allow())
	require.False(t, r.Allow())

	time.Sleep(1100 * time.Millisecond)
	assert.True(t, r.Allow())
}

func TestDisabledLimiterAlwaysAllows(t *testing.T) {
	r := NewRateLimiter(0, time.Millisecond)
	for i := 0; i < 100; i++ {
		assert.True(t, r.Allow())
	}
}

func TestWaitHonorsContext(t *testing.T) {
	r := NewRateLimiter(1, time.Millisecond)
	require.True(t, r.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitReturnsWhenSlotOpens(t *testing.T) {
	r := NewRateLimiter(5, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < 10; i++ {
		require.NoError(t, r.Wait(ctx))
	}
}
