package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Result is the outcome of one rate limit check.
type Result struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
	Limit     int       `json:"limit"`
}

// CounterStore is the injected counter backend. The in-memory store serves a
// single instance and tests; the Redis store gives horizontally scaled
// deployments one shared, global window.
type CounterStore interface {
	// Incr atomically increments the counter for key, starting a new window
	// with TTL when the key does not exist. It returns the count after the
	// increment and the moment the window resets.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)
}

// Limiter applies a fixed-window limit per composite identifier.
type Limiter struct {
	store CounterStore
}

func NewLimiter(store CounterStore) *Limiter {
	return &Limiter{store: store}
}

// Key builds the composite identifier: operación + actor o IP.
func Key(operation, subject string) string {
	return fmt.Sprintf("rl:%s:%s", operation, subject)
}

// Allow consumes one request from the identifier's window.
func (l *Limiter) Allow(ctx context.Context, identifier string, window time.Duration, maxRequests int) (*Result, error) {
	count, resetAt, err := l.store.Incr(ctx, identifier, window)
	if err != nil {
		return nil, fmt.Errorf("ratelimit: incr %q: %w", identifier, err)
	}

	remaining := maxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   count <= int64(maxRequests),
		Remaining: remaining,
		ResetAt:   resetAt,
		Limit:     maxRequests,
	}, nil
}
