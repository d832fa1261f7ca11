package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks outbound API requests by endpoint and HTTP status code
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fcs_requests_total",
			Help: "Total number of requests issued to the FCS API",
		},
		[]string{"endpoint", "code"},
	)

	// RequestDurationSeconds tracks round-trip time of outbound API requests
	RequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fcs_request_duration_seconds",
			Help:    "Duration of requests issued to the FCS API in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// RequestErrorsTotal tracks requests that failed in transport, over HTTP, or at the API level
	RequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fcs_request_errors_total",
			Help: "Total number of failed requests issued to the FCS API",
		},
		[]string{"endpoint"},
	)

	// TokensIssuedTotal tracks tokens minted by token generators
	TokensIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fcs_tokens_issued_total",
			Help: "Total number of frontend tokens generated",
		},
	)
)

// RecordRequest records a completed request. A status code of 0 means no HTTP response arrived.
func RecordRequest(endpoint string, statusCode int, duration float64, failed bool) {
	RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
	RequestDurationSeconds.WithLabelValues(endpoint).Observe(duration)

	if failed || statusCode >= 400 {
		RequestErrorsTotal.WithLabelValues(endpoint).Inc()
	}
}

// RecordTokenIssued records a freshly generated token
func RecordTokenIssued() {
	TokensIssuedTotal.Inc()
}
