// internal/writer/builder.go
package writer

import (
	"errors"

	cfg "github.com/tamzrod/modbus-points/internal/config"
)

// BuildPlan converts one device's mirror config into a writer Plan.
// Assumes config has already passed validation.
// ok is false when the device mirrors nothing.
func BuildPlan(d cfg.DeviceConfig) (plan Plan, ok bool, err error) {
	if d.ID == "" {
		return Plan{}, false, errors.New("writer: device id required")
	}
	if d.Poll == nil || d.Poll.Mirror == nil {
		return Plan{}, false, nil
	}

	m := d.Poll.Mirror
	plan = Plan{
		DeviceID: d.ID,
		Target:   m.Target,
		Map:      make(map[string]string, len(m.Map)),
	}
	for src, dst := range m.Map {
		plan.Map[src] = dst
	}

	if s := m.Status; s != nil {
		plan.Status = &StatusPoints{
			Health:         s.Health,
			LastErrorCode:  s.LastError,
			SecondsInError: s.SecondsInError,
		}
	}

	return plan, true, nil
}
