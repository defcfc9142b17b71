package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// result label values
const (
	RequestsTotal       = "app_requests_total"
	UsersRegistered     = "user_registered_total"
	ImagesUploaded      = "image_uploaded_total"
	ImagesResized       = "image_resized_total"
	ImagesDeleted       = "image_deleted_total"
	ImageCodecFailures  = "image_codec_failures_total"
	RequestsThrottled   = "rate_limited_total"
	RateLimitStoreError = "rate_limit_store_errors_total"
)

func NewCounter() *prometheus.CounterVec {
	return NewCounterWith(prometheus.DefaultRegisterer)
}

// NewCounterWith registers the counter on reg; tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration panics.
func NewCounterWith(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "imageresizer",
			Name:      "general_counters",
		},
		[]string{"result"})
}
