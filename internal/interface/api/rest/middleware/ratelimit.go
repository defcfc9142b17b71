package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"imageresizer/internal/application/ports"
	"imageresizer/internal/infrastructure/metrics"
	"imageresizer/internal/interface/api/rest/dto/response"
)

// RateLimit counts the request against limiter's bucket for the client
// address and answers 429 once the bucket is exhausted. It runs before
// authentication. A failing counter store lets the request through.
func RateLimit(limiter ports.RateLimiter, logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	policy := limiter.Policy()

	return func(c *gin.Context) {
		res, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter unavailable",
				zap.String("bucket", policy.Name),
				zap.Error(err),
			)
			if mCounter != nil {
				mCounter.WithLabelValues(metrics.RateLimitStoreError).Inc()
			}
		}

		reset := secondsUntil(res.ResetAt)
		h := c.Writer.Header()
		h.Set("RateLimit-Limit", strconv.Itoa(res.Limit))
		h.Set("RateLimit-Remaining", strconv.Itoa(res.Remaining))
		h.Set("RateLimit-Reset", strconv.Itoa(reset))

		if !res.Allowed {
			h.Set("Retry-After", strconv.Itoa(reset))
			if mCounter != nil {
				mCounter.WithLabelValues(metrics.RequestsThrottled).Inc()
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Fail(policy.Message))
			return
		}

		c.Next()
	}
}

func secondsUntil(t time.Time) int {
	s := math.Ceil(time.Until(t).Seconds())
	if s < 0 {
		return 0
	}
	return int(s)
}
