// internal/client/client.go
package client

import (
	"sort"

	"github.com/tamzrod/modbus-points/internal/planner"
	"github.com/tamzrod/modbus-points/internal/point"
	"github.com/tamzrod/modbus-points/internal/transport"
)

// Config is the static description of one device.
type Config struct {
	SlaveID uint8

	// ProximityThreshold is the largest address gap merged into one read.
	// nil selects planner.DefaultProximity.
	ProximityThreshold *uint16

	Points []point.Descriptor

	// Sink receives one event per transaction. Optional.
	Sink Sink
}

// Client reads and writes named points on one device with as few
// transactions as the grouping rules allow.
//
// A Client holds no per-call state. Calls may run from several goroutines
// as long as the transport tolerates it.
type Client struct {
	slaveID   uint8
	proximity uint16
	dir       *point.Directory
	tr        transport.Transport
	sink      Sink
}

// New builds a client over a connected transport.
func New(cfg Config, tr transport.Transport) (*Client, error) {
	if tr == nil {
		return nil, errNoTransport
	}

	dir, err := point.NewDirectory(cfg.Points)
	if err != nil {
		return nil, err
	}

	proximity := planner.DefaultProximity
	if cfg.ProximityThreshold != nil {
		proximity = *cfg.ProximityThreshold
	}

	sink := cfg.Sink
	if sink == nil {
		sink = nopSink{}
	}

	return &Client{
		slaveID:   cfg.SlaveID,
		proximity: proximity,
		dir:       dir,
		tr:        tr,
		sink:      sink,
	}, nil
}

// Points returns the device's point descriptors in configuration order.
func (c *Client) Points() []point.Descriptor {
	return c.dir.Points()
}

// ReadPoints returns the values of names, aligned with names.
// Repeated names get the same value. Any failed transaction fails the call.
func (c *Client) ReadPoints(names []string) ([]uint16, error) {
	descs, err := c.dir.Resolve(names)
	if err != nil {
		return nil, err
	}

	groups, err := planner.Plan(descs, planner.Read, c.proximity)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]uint16, len(descs))
	for _, g := range groups {
		raw, err := c.execute(g, planner.Read, nil)
		if err != nil {
			return nil, err
		}
		collect(g, raw, byName)
	}

	return arrange(names, byName), nil
}

// WritePoints writes every value in values. Nothing is sent when any name is
// unknown or read-only. A transport failure part way leaves earlier groups
// written.
func (c *Client) WritePoints(values map[string]uint16) error {
	names := make([]string, 0, len(values))
	for n := range values {
		names = append(names, n)
	}
	sort.Strings(names)

	descs, err := c.dir.Resolve(names)
	if err != nil {
		return err
	}

	groups, err := planner.Plan(descs, planner.Write, c.proximity)
	if err != nil {
		return err
	}

	for _, g := range groups {
		if _, err := c.execute(g, planner.Write, values); err != nil {
			return err
		}
	}
	return nil
}
