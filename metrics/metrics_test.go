package metrics_test

import (
	"testing"

	"github.com/hanju/tagstream/metrics"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveEventIncrementsByKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.New(reg)

	r.ObserveEvent("open")
	r.ObserveEvent("open")
	r.ObserveEvent("text")

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, fam := range families {
		if fam.GetName() != "tagstream_events_total" {
			continue
		}
		for _, m := range fam.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "kind" {
					counts[l.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, float64(2), counts["open"])
	assert.Equal(t, float64(1), counts["text"])
}

func TestNilRecorderMethodsAreNoOps(t *testing.T) {
	var r *metrics.Recorder
	assert.NotPanics(t, func() {
		r.ObserveEvent("open")
		r.ObservePatternHit()
		r.ObserveOverflowCommit()
		r.ObserveBufferOccupancy(5)
	})
}

func TestObservePatternHitAndOverflow(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.New(reg)
	r.ObservePatternHit()
	r.ObserveOverflowCommit()
	r.ObserveOverflowCommit()

	families, err := reg.Gather()
	require.NoError(t, err)

	var hits, overflow float64
	for _, fam := range families {
		switch fam.GetName() {
		case "tagstream_pattern_hits_total":
			hits = firstValue(fam)
		case "tagstream_overflow_commits_total":
			overflow = firstValue(fam)
		}
	}
	assert.Equal(t, float64(1), hits)
	assert.Equal(t, float64(2), overflow)
}

func firstValue(fam *dto.MetricFamily) float64 {
	if len(fam.GetMetric()) == 0 {
		return 0
	}
	return fam.GetMetric()[0].GetCounter().GetValue()
}
