package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	BatchesProcessed *prometheus.CounterVec
	FlightsConverted *prometheus.CounterVec
	FlightsSkipped   *prometheus.CounterVec
	FlightsDropped   *prometheus.CounterVec
	FlightsStored    *prometheus.CounterVec
	ProcessingTime   *prometheus.HistogramVec
	ErrorsCount      *prometheus.CounterVec
}

// NewMetrics registers the service metrics on reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BatchesProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_processed_total",
			Help:      "The total number of provider batches processed",
		}, []string{"provider", "status"}),
		FlightsConverted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_converted_total",
			Help:      "The total number of unified records produced",
		}, []string{"provider"}),
		FlightsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_skipped_total",
			Help:      "The total number of raw flights that could not be converted",
		}, []string{"provider"}),
		FlightsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_dropped_total",
			Help:      "The total number of unified records rejected by the validity filter",
		}, []string{"provider"}),
		FlightsStored: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_stored_total",
			Help:      "The total number of unified records persisted",
		}, []string{"provider"}),
		ProcessingTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_time_seconds",
			Help:      "Time taken to unify one provider batch",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
