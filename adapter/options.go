package adapter

import "github.com/hanju/tagstream/metrics"

// Option is a constructor option function for the Adapter type,
// applied in New after the transition table is built and before the
// matcher is created.
type Option func(*Adapter)

// WithBufferCap overrides the matcher's token buffer capacity, used to
// bound memory when a pending pattern candidate never completes. The
// default, selected by the matcher itself when n <= 0, is twice the
// longest registered pattern's length.
func WithBufferCap(n int) Option {
	return func(a *Adapter) { a.bufferCap = n }
}

// WithMetrics attaches a Prometheus Recorder. Without this option the
// Adapter records nothing.
func WithMetrics(r *metrics.Recorder) Option {
	return func(a *Adapter) { a.metrics = r }
}
