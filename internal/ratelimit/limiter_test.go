package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_AllowsExactlyMaxRequests(t *testing.T) {
	store := NewMemoryCounterStore()
	limiter := NewLimiter(store)
	ctx := context.Background()
	key := Key("quote", "10.0.0.1")

	const max = 5
	for i := 1; i <= max; i++ {
		res, err := limiter.Allow(ctx, key, time.Minute, max)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d should be allowed", i)
		assert.Equal(t, max-i, res.Remaining)
	}

	res, err := limiter.Allow(ctx, key, time.Minute, max)
	require.NoError(t, err)
	assert.False(t, res.Allowed, "request max+1 must be denied")
	assert.Equal(t, 0, res.Remaining)
	assert.True(t, res.ResetAt.After(time.Now()))
}

func TestLimiter_WindowExpiryResetsCount(t *testing.T) {
	store := NewMemoryCounterStore()
	limiter := NewLimiter(store)
	ctx := context.Background()
	key := Key("quote", "10.0.0.2")

	const window = 30 * time.Millisecond
	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, key, window, 2)
		require.NoError(t, err)
	}

	res, err := limiter.Allow(ctx, key, window, 2)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	time.Sleep(window + 10*time.Millisecond)

	res, err = limiter.Allow(ctx, key, window, 2)
	require.NoError(t, err)
	assert.True(t, res.Allowed, "new window should start after reset")
	assert.Equal(t, 1, res.Remaining)
}

func TestLimiter_IndependentIdentifiers(t *testing.T) {
	store := NewMemoryCounterStore()
	limiter := NewLimiter(store)
	ctx := context.Background()

	res1, err := limiter.Allow(ctx, Key("confirm", "agent-a"), time.Minute, 1)
	require.NoError(t, err)
	res2, err := limiter.Allow(ctx, Key("confirm", "agent-b"), time.Minute, 1)
	require.NoError(t, err)

	assert.True(t, res1.Allowed)
	assert.True(t, res2.Allowed)
}

func TestMemoryCounterStore_ConcurrentIncrements(t *testing.T) {
	store := NewMemoryCounterStore()
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, _, err := store.Incr(ctx, "shared", time.Minute)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, _, err := store.Incr(ctx, "shared", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(goroutines+1), count)
}

func TestMemoryCounterStore_SweepPurgesExpiredWindows(t *testing.T) {
	store := NewMemoryCounterStore()
	ctx := context.Background()

	_, _, err := store.Incr(ctx, "old", 10*time.Millisecond)
	require.NoError(t, err)
	_, _, err = store.Incr(ctx, "fresh", time.Minute)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	store.sweep(time.Now())

	assert.Equal(t, 1, store.Len())
}
