package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	graphRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chaingraph",
		Subsystem: "graph_repository",
		Name:      "operations_total",
		Help:      "Count of repository operations.",
	}, []string{"operation", "status"})
	graphRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chaingraph",
		Subsystem: "graph_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "status"})
)

// GraphRepository tracks metrics for graph store operations.
type GraphRepository struct{}

// NewGraphRepository creates a GraphRepository metrics collector.
func NewGraphRepository() *GraphRepository {
	return &GraphRepository{}
}

// Observe records duration and status of a repository operation.
func (m GraphRepository) Observe(operation string, err error, started time.Time) {
	status := statusLabel(err)

	graphRepositoryRequestsTotal.WithLabelValues(operation, status).Inc()
	graphRepositoryRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
