package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus collectors for the compute service
type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	sequenceLength  prometheus.Histogram
}

// newMetrics registers the service collectors on the given registry
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collatzmgr",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total HTTP requests by path and status code.",
		}, []string{"path", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "collatzmgr",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
		sequenceLength: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "collatzmgr",
			Subsystem: "api",
			Name:      "sequence_length",
			Help:      "Length of computed sequences.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
}
