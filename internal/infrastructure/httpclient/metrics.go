package httpclient

import (
	"fmt"
	"net/http"
	"time"

	"commerce-adapter-layer/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "platform_api_requests_total",
		Help: "Outbound platform API requests by platform and status class.",
	}, []string{"platform", "status"})

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "platform_api_rate_limit_retries_total",
		Help: "429 responses that triggered the single delayed retry.",
	}, []string{"platform"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "platform_api_request_duration_seconds",
		Help:    "Outbound platform API request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"platform"})
)

func observeRequest(platform domain.Platform, resp *http.Response, err error, elapsed time.Duration) {
	status := "error"
	if err == nil && resp != nil {
		status = fmt.Sprintf("%dxx", resp.StatusCode/100)
	}
	requestsTotal.WithLabelValues(string(platform), status).Inc()
	requestDuration.WithLabelValues(string(platform)).Observe(elapsed.Seconds())
}

func observeRetry(platform domain.Platform) {
	retriesTotal.WithLabelValues(string(platform)).Inc()
}
