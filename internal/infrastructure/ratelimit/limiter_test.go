package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore builds a memory store with a controllable clock and no janitor
func newTestStore(start time.Time) (*MemoryStore, *time.Time) {
	now := start
	s := &MemoryStore{
		counters: make(map[string]*windowCounter),
		now:      func() time.Time { return now },
	}
	return s, &now
}

func TestLimiterAllow(t *testing.T) {
	t.Run("allows up to the limit then rejects", func(t *testing.T) {
		store, _ := newTestStore(time.Now())
		limiter := NewLimiter(store, 3, time.Minute)

		for i := 0; i < 3; i++ {
			d, err := limiter.Allow(context.Background(), "op:1.2.3.4")
			require.NoError(t, err)
			assert.True(t, d.Allowed, "request %d", i+1)
			assert.Equal(t, 3, d.Limit)
			assert.Equal(t, 2-i, d.Remaining)
		}

		d, err := limiter.Allow(context.Background(), "op:1.2.3.4")
		require.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.Equal(t, 0, d.Remaining)
		assert.Greater(t, d.RetryAfter, time.Duration(0))
	})

	t.Run("window expiry resets the budget", func(t *testing.T) {
		store, clock := newTestStore(time.Now())
		limiter := NewLimiter(store, 2, time.Minute)

		for i := 0; i < 2; i++ {
			d, err := limiter.Allow(context.Background(), "k")
			require.NoError(t, err)
			require.True(t, d.Allowed)
		}
		d, err := limiter.Allow(context.Background(), "k")
		require.NoError(t, err)
		require.False(t, d.Allowed)

		*clock = clock.Add(61 * time.Second)

		d, err = limiter.Allow(context.Background(), "k")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, 1, d.Remaining)
	})

	t.Run("keys are independent", func(t *testing.T) {
		store, _ := newTestStore(time.Now())
		limiter := NewLimiter(store, 1, time.Minute)

		d, err := limiter.Allow(context.Background(), "a")
		require.NoError(t, err)
		require.True(t, d.Allowed)

		d, err = limiter.Allow(context.Background(), "a")
		require.NoError(t, err)
		require.False(t, d.Allowed)

		d, err = limiter.Allow(context.Background(), "b")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	})

	t.Run("retry-after never reports below one second", func(t *testing.T) {
		store, clock := newTestStore(time.Now())
		limiter := NewLimiter(store, 1, 2*time.Second)

		_, err := limiter.Allow(context.Background(), "k")
		require.NoError(t, err)

		*clock = clock.Add(1900 * time.Millisecond)

		d, err := limiter.Allow(context.Background(), "k")
		require.NoError(t, err)
		require.False(t, d.Allowed)
		assert.GreaterOrEqual(t, d.RetryAfter, time.Second)
	})
}

type failingStore struct{ err error }

func (s failingStore) Incr(context.Context, string, time.Duration) (int64, time.Time, error) {
	return 0, time.Time{}, s.err
}

func TestLimiterStoreFailure(t *testing.T) {
	limiter := NewLimiter(failingStore{err: errors.New("redis down")}, 5, time.Minute)

	_, err := limiter.Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "legal-status:10.0.0.1", KeyFor("legal-status", "10.0.0.1"))
}
