// Package observability provides logging, metrics, and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AssetCleanupFailures counts best-effort image deletions that failed.
	// Deletion failures are never returned to callers, so this counter is
	// the only place they stay visible.
	AssetCleanupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postpilot_asset_cleanup_failures_total",
		Help: "Total number of failed best-effort asset file deletions",
	})

	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpilot_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ExternalAPICalls counts outbound calls to external services by target
	// and outcome.
	ExternalAPICalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpilot_external_api_calls_total",
		Help: "Total number of outbound external API calls",
	}, []string{"target", "outcome"})

	// ScheduleMutations counts schedule document mutations by operation.
	ScheduleMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpilot_schedule_mutations_total",
		Help: "Total number of schedule document mutations",
	}, []string{"operation"})
)
