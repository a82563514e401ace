package metrics

import (
	"runtime"
	"strconv"
)

// MemoryMetric reports the current heap allocation in bytes.
// The metric is intentionally kept simple, focusing on the heap allocation
// which is often the most relevant figure for a long-lived process.
type MemoryMetric struct{}

// NewMemoryMetric returns a new MemoryMetric.
func NewMemoryMetric() *MemoryMetric { return &MemoryMetric{} }

// Name implements Metric.
func (m *MemoryMetric) Name() string { return "monitor_memory_heap_bytes" }

// Value implements Metric.
func (m *MemoryMetric) Value() string {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	// Return the number as a decimal string to avoid precision issues for
	// large values when the map is serialised.
	return strconv.FormatUint(stats.HeapAlloc, 10)
}
