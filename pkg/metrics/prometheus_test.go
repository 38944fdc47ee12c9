package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("flight_unifier", reg)

	m.FlightsConverted.WithLabelValues("alibaba").Add(3)
	m.BatchesProcessed.WithLabelValues("alibaba", "ok").Inc()
	m.ProcessingTime.WithLabelValues("alibaba").Observe(0.2)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.FlightsConverted.WithLabelValues("alibaba")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "flight_unifier_flights_converted_total")
	assert.Contains(t, names, "flight_unifier_batch_processing_time_seconds")

	// a second set on a fresh registry does not collide
	assert.NotPanics(t, func() { NewMetrics("flight_unifier", prometheus.NewRegistry()) })
}
