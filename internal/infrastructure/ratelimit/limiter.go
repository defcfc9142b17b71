// Package ratelimit implements fixed-window request counters keyed by
// bucket and client address.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Store counts hits for key inside a fixed window. The first hit of a
// window starts it; count and reset time are returned atomically.
type Store interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

type (
	Policy struct {
		Name    string
		Limit   int
		Window  time.Duration
		Message string
	}
	Result struct {
		Allowed   bool
		Limit     int
		Remaining int
		ResetAt   time.Time
	}
)

type Limiter struct {
	store  Store
	policy Policy
	now    func() time.Time
}

func New(store Store, policy Policy) *Limiter {
	return &Limiter{store: store, policy: policy, now: time.Now}
}

func (l *Limiter) Policy() Policy { return l.policy }

// Allow registers one request for clientKey. When the store fails the
// request is allowed and the error is returned for logging.
func (l *Limiter) Allow(ctx context.Context, clientKey string) (Result, error) {
	count, resetAt, err := l.store.Hit(ctx, l.policy.Name+":"+clientKey, l.policy.Window)
	if err != nil {
		return Result{
			Allowed:   true,
			Limit:     l.policy.Limit,
			Remaining: l.policy.Limit,
			ResetAt:   l.now().Add(l.policy.Window),
		}, fmt.Errorf("rate limit store: %w", err)
	}

	remaining := int64(l.policy.Limit) - count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   count <= int64(l.policy.Limit),
		Limit:     l.policy.Limit,
		Remaining: int(remaining),
		ResetAt:   resetAt,
	}, nil
}
