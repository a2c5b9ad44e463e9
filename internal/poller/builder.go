// internal/poller/builder.go
package poller

import (
	"errors"
	"time"

	cfg "github.com/tamzrod/modbus-points/internal/config"
)

// Build constructs a Poller for one device from its poll block.
// The client is owned by the caller.
func Build(d cfg.DeviceConfig, client Client) (*Poller, error) {
	if d.Poll == nil {
		return nil, errors.New("poller: device has no poll block")
	}

	points := make([]string, len(d.Poll.Points))
	copy(points, d.Poll.Points)

	return New(
		Config{
			DeviceID: d.ID,
			Interval: time.Duration(d.Poll.IntervalMs) * time.Millisecond,
			Points:   points,
		},
		client,
	)
}
