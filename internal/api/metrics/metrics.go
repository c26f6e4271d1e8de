// Package metrics defines and registers all custom Prometheus metrics for the
// alumni directory API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import, so
// the /metrics handler exposes them next to the HTTP middleware metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "alumni"

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts sign-ins handled by the upsert on POST /users/new.
// Label:
//   - result: "created" for a new record, "updated" for a returning user
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user registrations, by outcome.",
	},
	[]string{"result"},
)

// UsersRemovedTotal counts deleted user records.
var UsersRemovedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_removed_total",
		Help:      "Total number of user records deleted.",
	},
)

// CohortMovesTotal counts profile updates, split by what happened to the cohort reference.
// Label:
//   - result: "moved", "profile_only" or "failed"
var CohortMovesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cohort_moves_total",
		Help:      "Total number of profile updates, by cohort outcome.",
	},
	[]string{"result"},
)

// LockWaitDuration measures how long a request waited for a per-user lock.
var LockWaitDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "lock_wait_duration_seconds",
		Help:      "Time spent waiting to acquire a per-user lock.",
		Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5},
	},
)

// ── Reconciliation metrics ────────────────────────────────────────────────────

// ReconcileCorrectionsTotal counts cohorts whose alumni set had drifted and was rewritten.
var ReconcileCorrectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconcile_corrections_total",
		Help:      "Total number of cohorts whose alumni set was corrected.",
	},
)

// ReconcileQueueDepth tracks the number of cohort ids waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ReconcileQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reconcile_queue_depth",
		Help:      "Current number of cohorts pending in each reconciliation worker channel.",
	},
	[]string{"worker_id"},
)

// ReconcileDuration measures a single cohort reconciliation.
// Label:
//   - result: "ok" or "error"
var ReconcileDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reconcile_duration_seconds",
		Help:      "Duration of a single cohort reconciliation.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls relayed to GitHub.
// Labels:
//   - endpoint: "access_token" or "user"
//   - code: upstream HTTP status, or "error" on transport failure
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests relayed to the OAuth provider.",
	},
	[]string{"endpoint", "code"},
)
