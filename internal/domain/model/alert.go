package model

// Priority is the urgency level attached to a push notification. The wire
// values follow the push provider's contract: "0" for normal delivery, "1"
// for high-priority delivery that bypasses quiet hours.
type Priority string

const (
	PriorityNormal Priority = "0"
	PriorityHigh   Priority = "1"
)
