package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RemoteCallsTotal tracks calls to the remote employee service per operation and outcome
	RemoteCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employees_remote_calls_total",
			Help: "Total number of calls to the remote employee service",
		},
		[]string{"operation", "outcome"},
	)

	// RemoteLatency tracks remote call latency
	RemoteLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "employees_remote_latency_seconds",
			Help:    "Remote employee service call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// RetryAttemptsTotal tracks backoff retries triggered by rate limiting
	RetryAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employees_retry_attempts_total",
			Help: "Total number of retries after a rate-limited response",
		},
		[]string{"operation"},
	)

	// RetryExhaustedTotal tracks operations that stayed rate limited after every attempt
	RetryExhaustedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employees_retry_exhausted_total",
			Help: "Total number of operations that exhausted their retry budget",
		},
		[]string{"operation"},
	)

	// HTTPRequestsTotal tracks inbound API requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employees_http_requests_total",
			Help: "Total number of inbound API requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPLatency tracks inbound API latency
	HTTPLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "employees_http_latency_seconds",
			Help:    "Inbound API latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RemoteStatus exposes the remote monitor status (0=healthy, 1=degraded, 2=throttled)
var RemoteStatus = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "employees_remote_status",
		Help: "Observed status of the remote employee service",
	},
	[]string{"remote"},
)
