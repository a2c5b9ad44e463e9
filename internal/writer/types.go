// internal/writer/types.go
package writer

import "github.com/tamzrod/modbus-points/internal/poller"

// StatusPoints names the target points carrying device status.
// Empty names are skipped.
type StatusPoints struct {
	Health         string
	LastErrorCode  string
	SecondsInError string
}

// Plan is the fully-built write plan for one source device.
type Plan struct {
	DeviceID string
	Target   string

	// Map is source point -> target point.
	Map    map[string]string
	Status *StatusPoints
}

// Writer writes poll snapshots into the target device.
type Writer interface {
	Write(res poller.PollResult) error
}

// pointWriter is the exact contract the writers use.
type pointWriter interface {
	WritePoints(values map[string]uint16) error
}
