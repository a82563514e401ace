package metrics

import "time"

// Metric represents a single runtime metric that can be collected at any
// point during the monitor's lifetime. Each metric has a human-readable name
// and returns its current value as a string so that the caller can decide how
// to serialise it (structured log attribute, heartbeat payload, etc.).
type Metric interface {
	// Name returns the canonical metric name used as the key in the
	// collected metrics map.
	Name() string
	// Value returns the current metric value encoded as a string.
	Value() string
}

// MetricFactory instantiates the Metric implementations available on the
// current platform and aggregates their values into a single
// map[string]string ready to be attached to a heartbeat log line.
//
// The factory is initialised with the monitor start time so that metrics that
// rely on it (e.g. uptime) can be implemented without global variables.
//
// NOTE: To add a new metric create a new file in this package implementing
// the Metric interface and register it inside NewMetricsFactory.
type MetricFactory struct {
	metrics []Metric
}

// NewMetricsFactory returns a factory filled with the monitor's runtime
// metrics. The list can be extended later without touching the calling code.
func NewMetricsFactory(startTime time.Time) *MetricFactory {
	return &MetricFactory{
		metrics: []Metric{
			NewUptimeMetric(startTime),
			NewMemoryMetric(),
			NewGoroutinesMetric(),
		},
	}
}

// Collect walks through all registered metrics and returns their current
// values. The function is intentionally lightweight so that it can be called
// on every polling cycle without noticeable overhead.
func (f *MetricFactory) Collect() map[string]string {
	results := make(map[string]string, len(f.metrics))
	for _, m := range f.metrics {
		results[m.Name()] = m.Value()
	}
	return results
}
