package ports

import (
	"context"

	"imageresizer/internal/infrastructure/ratelimit"
)

type RateLimiter interface {
	Allow(ctx context.Context, clientKey string) (ratelimit.Result, error)
	Policy() ratelimit.Policy
}
