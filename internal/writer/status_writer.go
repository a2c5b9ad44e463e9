// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"

	"github.com/tamzrod/modbus-points/internal/status"
)

// StatusWriter is the delivery-only contract for device status.
// It receives a snapshot and writes it verbatim.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// deviceStatusWriter writes status snapshots onto named target points.
type deviceStatusWriter struct {
	points *StatusPoints
	cli    pointWriter

	needFull bool
	last     status.Snapshot
}

// NewStatusWriter builds a status writer if status is enabled for the device.
// If plan.Status is nil, status is disabled.
func NewStatusWriter(plan Plan, cli pointWriter) (StatusWriter, bool) {
	if plan.Status == nil {
		return nil, false
	}

	return &deviceStatusWriter{
		points:   plan.Status,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		last:     status.Snapshot{Health: status.HealthUnknown},
	}, true
}

// WriteStatus delivers a device status snapshot.
// The first call writes every status point; later calls write only fields
// that changed. On any write failure, the next call re-asserts everything.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil || sw.points == nil {
		return errors.New("status writer: disabled")
	}
	if sw.cli == nil {
		return errors.New("status writer: missing client")
	}

	values := make(map[string]uint16, 3)
	put := func(name string, prev, cur uint16) {
		if name == "" {
			return
		}
		if sw.needFull || prev != cur {
			values[name] = cur
		}
	}

	put(sw.points.Health, sw.last.Health, s.Health)
	put(sw.points.LastErrorCode, sw.last.LastErrorCode, s.LastErrorCode)
	put(sw.points.SecondsInError, sw.last.SecondsInError, s.SecondsInError)

	if len(values) == 0 {
		sw.last = s
		return nil
	}

	if err := sw.cli.WritePoints(values); err != nil {
		// Any failure introduces doubt: re-assert on next call.
		sw.needFull = true
		return fmt.Errorf("status writer: %w", err)
	}

	sw.needFull = false
	sw.last = s
	return nil
}
