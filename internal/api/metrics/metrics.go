// Package metrics defines all custom Prometheus metrics for the admin
// gateway. It is the single source of truth for metric names, labels, and
// help strings; the /metrics endpoint is mounted by the router via
// echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gateway"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "rejected", "inactive", or "transport_error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// InvalidationsTotal counts session teardowns that were not user initiated.
// Label:
//   - reason: "unauthorized_response", "revalidation_failed", "inactive_user"
var InvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_invalidations_total",
		Help:      "Total number of forced session invalidations, by reason.",
	},
	[]string{"reason"},
)

// BackendRequestsTotal counts outbound requests through the client gate.
// Labels:
//   - method: HTTP method
//   - code: numeric status, or "transport_error" when no response arrived
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the backend, by method and status.",
	},
	[]string{"method", "code"},
)

// BackendRequestDuration measures backend round-trip latency.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend requests from send to first response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// NotifyQueueDepth tracks pending session events per notifier worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotifyQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of session events pending in each notifier worker channel.",
	},
	[]string{"worker_id"},
)
