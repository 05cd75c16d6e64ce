// Package metrics defines the custom Prometheus metrics for the bot
// commander backend. It is the single source of truth for metric names,
// labels, and help strings. Collectors register themselves with the
// default registry via promauto at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "botcommander"

// LoginAttemptsTotal counts authentication attempts.
// Label:
//   - result: "success", "unknown_user", "no_credentials", "bad_password"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// ControlActionsTotal counts bot control actions.
// Labels:
//   - action: the control action name (e.g. "bot_state", "validity")
//   - result: "allowed" or "denied"
var ControlActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "control_actions_total",
		Help:      "Total number of bot control actions, by action and authorization result.",
	},
	[]string{"action", "result"},
)

// BotAssignmentsTotal counts assignment lifecycle events.
// Label:
//   - event: "assigned", "conflict", "unassigned"
var BotAssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bot_assignments_total",
		Help:      "Total number of bot assignment lifecycle events.",
	},
	[]string{"event"},
)

// DecryptFailuresTotal counts bot ids that could not be decrypted when
// serving a response. A growing count usually means the encryption key
// changed under persisted data.
var DecryptFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decrypt_failures_total",
		Help:      "Total number of bot id decryption failures replaced by a sentinel.",
	},
)

// RequestDuration measures HTTP request latency.
// Labels:
//   - method: HTTP method
//   - path: the matched route template
//   - status: numeric response status
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests by route and status.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "path", "status"},
)
