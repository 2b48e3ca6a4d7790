// Package metrics provides optional Prometheus instrumentation for an
// Adapter. A Recorder is never required: an Adapter built without one
// records nothing. When used, callers supply their own registry so
// instrumenting more than one Adapter, or running inside a process that
// already owns prometheus.DefaultRegisterer, never collides.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder wraps the Prometheus collectors an Adapter reports through.
// The zero value is not usable; construct one with New.
type Recorder struct {
	eventsByKind    *prometheus.CounterVec
	patternHits     prometheus.Counter
	overflowCommits prometheus.Counter
	bufferOccupancy prometheus.Histogram
}

// New registers a Recorder's collectors against reg and returns it. reg
// is typically a dedicated *prometheus.Registry rather than
// prometheus.DefaultRegisterer, so multiple Adapters (or tests) can
// instrument independently.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		eventsByKind: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tagstream",
			Name:      "events_total",
			Help:      "Number of events emitted by the adapter, partitioned by kind.",
		}, []string{"kind"}),
		patternHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tagstream",
			Name:      "pattern_hits_total",
			Help:      "Number of pattern matches (open/close tag prefixes) committed by the matcher.",
		}),
		overflowCommits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tagstream",
			Name:      "overflow_commits_total",
			Help:      "Number of pending matches committed early because the buffer exceeded its capacity.",
		}),
		bufferOccupancy: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tagstream",
			Name:      "buffer_occupancy_bytes",
			Help:      "Matcher token buffer occupancy observed at quiescence (after each Feed call drains).",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 12),
		}),
	}

	reg.MustRegister(r.eventsByKind, r.patternHits, r.overflowCommits, r.bufferOccupancy)
	return r
}

// ObserveEvent increments the events-by-kind counter for kind ("text",
// "open", or "close").
func (r *Recorder) ObserveEvent(kind string) {
	if r == nil {
		return
	}
	r.eventsByKind.WithLabelValues(kind).Inc()
}

// ObservePatternHit increments the pattern-hit counter.
func (r *Recorder) ObservePatternHit() {
	if r == nil {
		return
	}
	r.patternHits.Inc()
}

// ObserveOverflowCommit increments the overflow-commit counter.
func (r *Recorder) ObserveOverflowCommit() {
	if r == nil {
		return
	}
	r.overflowCommits.Inc()
}

// ObserveBufferOccupancy records a buffer occupancy sample.
func (r *Recorder) ObserveBufferOccupancy(n int) {
	if r == nil {
		return
	}
	r.bufferOccupancy.Observe(float64(n))
}
