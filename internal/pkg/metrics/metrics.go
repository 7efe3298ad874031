package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	TaskMutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_mutation_count",
			Help: "Total number of task mutations",
		},
		[]string{"operation"}, // operation: create, update, bulk_update, delete
	)

	TimelineBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "timeline_build_duration_seconds",
			Help:    "Time spent deriving Gantt timelines",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		},
	)

	DependencyIssueCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dependency_issue_count",
			Help: "Dependency issues surfaced by validation runs",
		},
		[]string{"type"}, // type: missing_dependency, date_conflict
	)
)

// RecordHTTPRequestDuration records one served request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
