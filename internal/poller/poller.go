// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"time"
)

// Client is the point-level read the poller needs.
type Client interface {
	ReadPoints(names []string) ([]uint16, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	DeviceID string
	Interval time.Duration
	Points   []string
}

// Poller is a dumb, clock-driven reader.
type Poller struct {
	cfg    Config
	client Client
}

// New creates a poller with immutable config.
func New(cfg Config, client Client) (*Poller, error) {
	if cfg.DeviceID == "" {
		return nil, errors.New("poller: device id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if len(cfg.Points) == 0 {
		return nil, errors.New("poller: at least one point required")
	}
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	return &Poller{cfg: cfg, client: client}, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{
		DeviceID: p.cfg.DeviceID,
		At:       time.Now(),
	}

	values, err := p.client.ReadPoints(p.cfg.Points)
	if err != nil {
		res.Err = err
		return res
	}
	if len(values) != len(p.cfg.Points) {
		res.Err = fmt.Errorf("poller: got %d values for %d points", len(values), len(p.cfg.Points))
		return res
	}

	// Commit only if the read succeeded
	res.Values = make(map[string]uint16, len(values))
	for i, name := range p.cfg.Points {
		res.Values[name] = values[i]
	}
	return res
}
