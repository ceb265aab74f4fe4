package metrics_test

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novabrowser/nova/internal/metrics"
)

func family(t *testing.T, m *metrics.Metrics, name string) *dto.MetricFamily {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric family %s not registered", name)
	return nil
}

func TestCountersAccumulate(t *testing.T) {
	m := metrics.New()
	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()
	m.LoadOutcome(metrics.OutcomeOK)
	m.LoadOutcome(metrics.OutcomeError)
	m.LoadOutcome(metrics.OutcomeError)

	hits := family(t, m, "nova_fetch_cache_hits_total")
	assert.Equal(t, 2.0, hits.GetMetric()[0].GetCounter().GetValue())

	misses := family(t, m, "nova_fetch_cache_misses_total")
	assert.Equal(t, 1.0, misses.GetMetric()[0].GetCounter().GetValue())

	loads := family(t, m, "nova_document_loads_total")
	byOutcome := map[string]float64{}
	for _, metric := range loads.GetMetric() {
		byOutcome[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"ok": 1, "error": 2}, byOutcome)
}

func TestHistogramsObserve(t *testing.T) {
	m := metrics.New()
	m.ObserveParse(3 * time.Millisecond)
	m.RenderObserver().Observe(0.5)

	parse := family(t, m, "nova_document_parse_seconds")
	assert.Equal(t, uint64(1), parse.GetMetric()[0].GetHistogram().GetSampleCount())

	render := family(t, m, "nova_render_seconds")
	assert.Equal(t, uint64(1), render.GetMetric()[0].GetHistogram().GetSampleCount())
	assert.Equal(t, 0.5, render.GetMetric()[0].GetHistogram().GetSampleSum())
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.CacheHit()
		m.CacheMiss()
		m.ObserveParse(time.Second)
		m.LoadOutcome(metrics.OutcomeOK)
	})
	assert.Nil(t, m.RenderObserver())
}
