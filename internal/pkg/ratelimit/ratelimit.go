// Package ratelimit is a fixed-window request limiter behind a pluggable
// backing store: an in-process map for single-instance deployments, Redis for
// multi-instance. Keeping the store explicit avoids hidden process-wide
// mutable state leaking into handlers.
package ratelimit

import (
	"context"
	"time"
)

// Store counts one hit against key and reports the running total for the
// current window together with the time remaining until the window resets.
// The first hit of a window must atomically start it.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, reset time.Duration, err error)
}

type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

type Limiter struct {
	store Store
}

func NewLimiter(store Store) *Limiter {
	return &Limiter{store: store}
}

// Check consumes one unit from the window for key. Denied requests still
// count; a client hammering a closed window keeps it closed.
func (l *Limiter) Check(ctx context.Context, key string, limit int64, window time.Duration) (Decision, error) {
	count, reset, err := l.store.Incr(ctx, key, window)
	if err != nil {
		return Decision{}, err
	}

	if count > limit {
		return Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: reset,
		}, nil
	}

	return Decision{
		Allowed:   true,
		Remaining: limit - count,
	}, nil
}
