// Package ratelimit implements a fixed-window request limiter backed by
// a pluggable counter store (in-process or Redis).
package ratelimit

import (
	"context"
	"time"
)

// Store counts requests per key within a fixed window. Incr bumps the
// counter for the window the call falls into and returns the new count
// together with the instant the window resets.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

// Decision is the outcome of a limiter check for one request
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // zero when allowed
	ResetAt    time.Time
}

// Limiter applies a fixed-window limit over a counter store
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

// NewLimiter creates a limiter allowing limit requests per window
func NewLimiter(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window}
}

// Allow records one request under the key and decides whether it fits
// the window. Store failures surface as errors so the caller chooses
// its failure mode.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	count, resetAt, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return Decision{}, err
	}

	d := Decision{
		Limit:   l.limit,
		ResetAt: resetAt,
	}
	if count <= int64(l.limit) {
		d.Allowed = true
		d.Remaining = l.limit - int(count)
		return d, nil
	}

	retry := time.Until(resetAt)
	if retry < time.Second {
		retry = time.Second
	}
	d.RetryAfter = retry
	return d, nil
}

// KeyFor builds the limiter key for an operation scoped to a caller.
// Keeping the operation in the key means different endpoints never
// share a budget.
func KeyFor(op, scope string) string {
	return op + ":" + scope
}
