package metrics

import (
	"strconv"
	"time"
)

// UptimeMetric reports the process uptime since the monitor was started.
// The value is expressed in seconds to avoid issues with different duration
// string formats across platforms.
type UptimeMetric struct {
	startTime time.Time
}

// NewUptimeMetric returns a new UptimeMetric initialised with the monitor
// start time.
func NewUptimeMetric(startTime time.Time) *UptimeMetric {
	return &UptimeMetric{startTime: startTime}
}

// Name implements the Metric interface.
func (m *UptimeMetric) Name() string { return "monitor_uptime_seconds" }

// Value implements the Metric interface and returns the uptime in seconds
// encoded as a string.
func (m *UptimeMetric) Value() string {
	seconds := int64(time.Since(m.startTime).Seconds())
	return strconv.FormatInt(seconds, 10)
}
