// internal/client/executor.go
package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/modbus-points/internal/planner"
	"github.com/tamzrod/modbus-points/internal/transport"
)

var errNoTransport = errors.New("client: transport required")

// TransportError wraps a failure reported by the transport.
// The original error is reachable with errors.Unwrap / errors.As.
type TransportError struct {
	Request transport.Request
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("client: transaction %s failed: %v", e.Request, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// execute turns one group into exactly one transport call.
func (c *Client) execute(g planner.Group, dir planner.Direction, values map[string]uint16) ([]uint16, error) {
	req := transport.Request{
		SlaveID:  c.slaveID,
		Function: g.Function,
		Address:  g.Start,
	}

	if dir == planner.Read {
		req.Quantity = g.Quantity()
	} else {
		req.Values = make([]uint16, 0, len(g.Members))
		for _, m := range g.Members {
			req.Values = append(req.Values, values[m.Name])
		}
		req.Quantity = uint16(len(req.Values))
	}

	start := time.Now()
	raw, err := c.tr.Issue(req)
	if err == nil && dir == planner.Read && len(raw) < int(req.Quantity) {
		err = fmt.Errorf("short response: got %d items, want %d", len(raw), req.Quantity)
	}

	c.sink.Transaction(Event{
		SlaveID:   req.SlaveID,
		Block:     g.Block,
		Direction: dir,
		Function:  req.Function,
		Address:   req.Address,
		Quantity:  req.Quantity,
		Points:    len(g.Members),
		Duration:  time.Since(start),
		Err:       err,
	})

	if err != nil {
		return nil, &TransportError{Request: req, Err: err}
	}
	return raw, nil
}
