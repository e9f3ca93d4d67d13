package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the data service.
type Metrics struct {
	SnapshotLoads        prometheus.Counter
	SnapshotLoadErrors   prometheus.Counter
	SnapshotLoadDuration prometheus.Histogram
	AnalyticsRequests    *prometheus.CounterVec
}

// NewMetrics registers the data service instruments with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SnapshotLoads: factory.NewCounter(prometheus.CounterOpts{
			Name: "findash_snapshot_loads_total",
			Help: "Number of successful workbook snapshot loads.",
		}),
		SnapshotLoadErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "findash_snapshot_load_errors_total",
			Help: "Number of failed workbook snapshot loads.",
		}),
		SnapshotLoadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "findash_snapshot_load_duration_seconds",
			Help:    "Wall time of workbook snapshot loads.",
			Buckets: prometheus.DefBuckets,
		}),
		AnalyticsRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "findash_analytics_requests_total",
			Help: "Analytics computations served, by operation.",
		}, []string{"operation"}),
	}
}
