// internal/poller/types.go
package poller

import "time"

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	DeviceID string
	At       time.Time

	// Values holds every polled point. Nil when Err is set.
	Values map[string]uint16
	Err    error // non-nil means the poll cycle failed
}
