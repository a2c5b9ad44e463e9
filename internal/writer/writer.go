// internal/writer/writer.go
package writer

import (
	"fmt"

	"github.com/tamzrod/modbus-points/internal/poller"
)

type mirrorWriter struct {
	plan Plan
	cli  pointWriter
}

// New returns a Writer that copies mapped values onto the target device.
func New(plan Plan, cli pointWriter) Writer {
	return &mirrorWriter{
		plan: plan,
		cli:  cli,
	}
}

// Write delivers one poll result. Failed polls are not delivered: the target
// keeps its last good values and status points report the failure.
func (w *mirrorWriter) Write(res poller.PollResult) error {
	if res.Err != nil || len(w.plan.Map) == 0 {
		return nil
	}

	values := make(map[string]uint16, len(w.plan.Map))
	for src, dst := range w.plan.Map {
		v, ok := res.Values[src]
		if !ok {
			return fmt.Errorf("writer: device %s: poll result has no value for %q", w.plan.DeviceID, src)
		}
		values[dst] = v
	}

	if err := w.cli.WritePoints(values); err != nil {
		return fmt.Errorf("writer: device %s -> %s: %w", w.plan.DeviceID, w.plan.Target, err)
	}
	return nil
}
