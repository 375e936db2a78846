// Package metrics defines and registers all custom Prometheus metrics for
// the meal-tracker API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mealtracker"

// ── Merge metrics ─────────────────────────────────────────────────────────────

// MergesTotal counts identity merge attempts.
// Labels:
//   - method: "admin", "user", or "none" when authorization never succeeded
//   - outcome: "success", "skipped", "rejected", or "failed"
var MergesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "merges_total",
		Help:      "Total number of identity merge attempts, by auth method and outcome.",
	},
	[]string{"method", "outcome"},
)

// MergeRecordsTransferred counts records re-owned by successful merges.
// Label:
//   - store: "meal_logs", "user_profiles", or "push_subscriptions"
var MergeRecordsTransferred = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "merge_records_transferred_total",
		Help:      "Total number of records transferred to authenticated identities, by store.",
	},
	[]string{"store"},
)

// MergeDuration measures end-to-end merge handling time.
// Label:
//   - outcome: "success", "skipped", or "error"
var MergeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "merge_duration_seconds",
		Help:      "Duration of identity merge handling from authorization to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// ── Rate limiting ─────────────────────────────────────────────────────────────

// RateLimitedTotal counts requests rejected by the rate limiter.
// Label:
//   - route: logical route name (e.g. "merge", "meals")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the fixed-window rate limiter.",
	},
	[]string{"route"},
)
