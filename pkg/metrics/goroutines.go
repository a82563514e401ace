package metrics

import (
	"runtime"
	"strconv"
)

// GoroutinesMetric reports the current number of goroutines.
// This can be useful to spot leaks or unusual load.
type GoroutinesMetric struct{}

// NewGoroutinesMetric returns a new GoroutinesMetric.
func NewGoroutinesMetric() *GoroutinesMetric { return &GoroutinesMetric{} }

// Name implements Metric interface.
func (m *GoroutinesMetric) Name() string { return "monitor_goroutines_count" }

// Value implements Metric interface.
func (m *GoroutinesMetric) Value() string {
	n := runtime.NumGoroutine()
	return strconv.Itoa(n)
}
