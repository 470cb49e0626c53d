// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingesterProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chaingraph",
		Subsystem: "ingester",
		Name:      "process_batch_total",
		Help:      "Count of processed batches.",
	}, []string{"network", "status"})

	ingesterProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chaingraph",
		Subsystem: "ingester",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a batch of heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	ingesterProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chaingraph",
		Subsystem: "ingester",
		Name:      "process_batch_size",
		Help:      "Number of heights processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"network"})

	ingesterProcessHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chaingraph",
		Subsystem: "ingester",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of processing a single height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
)

// Ingester tracks metrics for the block ingestion pipeline.
type Ingester struct {
	network string
}

// NewIngester constructs an Ingester metrics collector.
func NewIngester(network string) *Ingester {
	if network == "" {
		network = "unknown"
	}
	return &Ingester{network: network}
}

// ObserveProcessBatch records a batch outcome, duration and size.
func (m Ingester) ObserveProcessBatch(err error, heights int, started time.Time) {
	status := statusLabel(err)

	ingesterProcessBatchTotal.WithLabelValues(m.network, status).Inc()
	ingesterProcessBatchDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	ingesterProcessBatchSize.WithLabelValues(m.network).Observe(float64(heights))
}

// ObserveProcessHeight records a single height's outcome and duration.
func (m Ingester) ObserveProcessHeight(err error, _ int64, started time.Time) {
	status := statusLabel(err)

	ingesterProcessHeightDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
