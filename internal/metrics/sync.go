package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncTickTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chaingraph",
		Subsystem: "sync",
		Name:      "ticks_total",
		Help:      "Count of sync scheduler ticks.",
	}, []string{"network", "status"})
	syncTickDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chaingraph",
		Subsystem: "sync",
		Name:      "tick_duration_seconds",
		Help:      "Duration of a full sync tick.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"network", "status"})

	resolverRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chaingraph",
		Subsystem: "resolver",
		Name:      "runs_total",
		Help:      "Count of orphan resolution passes.",
	}, []string{"network", "status"})
	resolverResolvedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chaingraph",
		Subsystem: "resolver",
		Name:      "resolved_blocks_total",
		Help:      "Count of orphan blocks that received a height.",
	}, []string{"network"})
	resolverRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chaingraph",
		Subsystem: "resolver",
		Name:      "run_duration_seconds",
		Help:      "Duration of an orphan resolution pass.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	reorgChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chaingraph",
		Subsystem: "reorg",
		Name:      "checks_total",
		Help:      "Count of reorg checks.",
	}, []string{"network", "status"})
	reorgRecoveredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chaingraph",
		Subsystem: "reorg",
		Name:      "recovered_total",
		Help:      "Count of recovered reorganizations.",
	}, []string{"network"})
	reorgCheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chaingraph",
		Subsystem: "reorg",
		Name:      "check_duration_seconds",
		Help:      "Duration of a reorg check including recovery.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"network", "status"})
)

// Scheduler tracks metrics for the continuous sync loop.
type Scheduler struct {
	network string
}

// NewScheduler constructs a Scheduler metrics collector.
func NewScheduler(network string) *Scheduler {
	if network == "" {
		network = "unknown"
	}
	return &Scheduler{network: network}
}

// ObserveTick records a sync tick outcome and duration.
func (m Scheduler) ObserveTick(err error, started time.Time) {
	status := statusLabel(err)

	syncTickTotal.WithLabelValues(m.network, status).Inc()
	syncTickDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
}

// Resolver tracks metrics for orphan resolution passes.
type Resolver struct {
	network string
}

// NewResolver constructs a Resolver metrics collector.
func NewResolver(network string) *Resolver {
	if network == "" {
		network = "unknown"
	}
	return &Resolver{network: network}
}

// ObserveResolve records a resolution pass outcome, duration and yield.
func (m Resolver) ObserveResolve(err error, resolved int, started time.Time) {
	status := statusLabel(err)

	resolverRunsTotal.WithLabelValues(m.network, status).Inc()
	resolverRunDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	if resolved > 0 {
		resolverResolvedTotal.WithLabelValues(m.network).Add(float64(resolved))
	}
}

// Reorg tracks metrics for reorg detection and recovery.
type Reorg struct {
	network string
}

// NewReorg constructs a Reorg metrics collector.
func NewReorg(network string) *Reorg {
	if network == "" {
		network = "unknown"
	}
	return &Reorg{network: network}
}

// ObserveCheck records a reorg check outcome and duration.
func (m Reorg) ObserveCheck(err error, reorged bool, started time.Time) {
	status := statusLabel(err)

	reorgChecksTotal.WithLabelValues(m.network, status).Inc()
	reorgCheckDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	if reorged {
		reorgRecoveredTotal.WithLabelValues(m.network).Inc()
	}
}
