package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
)

// Memory keeps counters in process. Suitable for a single instance.
type Memory struct {
	c *cache.Cache
}

func NewMemory(cleanupInterval time.Duration) *Memory {
	return &Memory{c: cache.New(cache.NoExpiration, cleanupInterval)}
}

func (m *Memory) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, time.Time{}, err
		}

		// Add only succeeds for a fresh or expired key and opens a window.
		if err := m.c.Add(key, int64(1), window); err == nil {
			_, exp, _ := m.c.GetWithExpiration(key)
			return 1, exp, nil
		}

		n, err := m.c.IncrementInt64(key, 1)
		if err != nil {
			// expired between Add and Increment; start over
			continue
		}
		_, exp, found := m.c.GetWithExpiration(key)
		if !found {
			return 0, time.Time{}, errors.New("counter vanished")
		}

		return n, exp, nil
	}
}
