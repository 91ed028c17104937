// internal/app/gateway/metrics.go
package gateway

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nursehub_gateway_requests_total",
		Help: "Backend API requests by endpoint and HTTP status code.",
	}, []string{"endpoint", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nursehub_gateway_request_duration_seconds",
		Help:    "Backend API request latency by endpoint.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// observe records one completed (or failed) backend call. A transport
// failure with no response is recorded with code "0".
func observe(endpoint string, status int, started time.Time) {
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
}
