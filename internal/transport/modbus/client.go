// internal/transport/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/modbus-points/internal/register"
	"github.com/tamzrod/modbus-points/internal/transport"
)

// Client implements transport.Transport over one Modbus TCP connection or
// serial line. It serializes requests because it mutates SlaveId per call.
type Client struct {
	mu       sync.Mutex
	closer   io.Closer
	setSlave func(id uint8)
	bus      modbus.Client
}

// Config selects and parameterizes the transport.
type Config struct {
	Kind    transport.Kind
	Timeout time.Duration

	// TCP
	Endpoint string

	// RTU
	Device   string
	BaudRate int
	DataBits int
	Parity   string
	StopBits int
}

// New connects a transport of the configured kind.
func New(cfg Config) (*Client, error) {
	switch cfg.Kind {
	case transport.KindTCP:
		return newTCP(cfg)
	case transport.KindRTU:
		return newRTU(cfg)
	default:
		return nil, fmt.Errorf("modbus transport: unsupported kind %q", cfg.Kind)
	}
}

func newTCP(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus transport: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus transport: connect %s: %w", cfg.Endpoint, err)
	}

	return &Client{
		closer:   h,
		setSlave: func(id uint8) { h.SlaveId = id },
		bus:      modbus.NewClient(h),
	}, nil
}

func newRTU(cfg Config) (*Client, error) {
	if cfg.Device == "" {
		return nil, errors.New("modbus transport: serial device required")
	}

	h := modbus.NewRTUClientHandler(cfg.Device)
	h.BaudRate = cfg.BaudRate
	h.DataBits = cfg.DataBits
	h.Parity = cfg.Parity
	h.StopBits = cfg.StopBits
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus transport: open %s: %w", cfg.Device, err)
	}

	return &Client{
		closer:   h,
		setSlave: func(id uint8) { h.SlaveId = id },
		bus:      modbus.NewClient(h),
	}, nil
}

// Close releases the connection or serial port.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// ---- transport.Transport ----

// Issue performs one request and unpacks the response into item values.
func (c *Client) Issue(req transport.Request) ([]uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bus == nil {
		return nil, errors.New("modbus transport: not connected")
	}
	c.setSlave(req.SlaveID)

	switch req.Function {
	case register.ReadCoils:
		b, err := c.bus.ReadCoils(req.Address, req.Quantity)
		if err != nil {
			return nil, err
		}
		return unpackBits(b, int(req.Quantity))

	case register.ReadDiscreteInputs:
		b, err := c.bus.ReadDiscreteInputs(req.Address, req.Quantity)
		if err != nil {
			return nil, err
		}
		return unpackBits(b, int(req.Quantity))

	case register.ReadHoldingRegisters:
		b, err := c.bus.ReadHoldingRegisters(req.Address, req.Quantity)
		if err != nil {
			return nil, err
		}
		return unpackRegisters(b, int(req.Quantity))

	case register.ReadInputRegisters:
		b, err := c.bus.ReadInputRegisters(req.Address, req.Quantity)
		if err != nil {
			return nil, err
		}
		return unpackRegisters(b, int(req.Quantity))

	case register.WriteSingleCoil:
		if len(req.Values) != 1 {
			return nil, fmt.Errorf("modbus transport: fc5 takes 1 value, got %d", len(req.Values))
		}
		var v uint16
		if req.Values[0] != 0 {
			v = 0xFF00
		}
		_, err := c.bus.WriteSingleCoil(req.Address, v)
		return nil, err

	case register.WriteSingleRegister:
		if len(req.Values) != 1 {
			return nil, fmt.Errorf("modbus transport: fc6 takes 1 value, got %d", len(req.Values))
		}
		_, err := c.bus.WriteSingleRegister(req.Address, req.Values[0])
		return nil, err

	case register.WriteMultipleCoils:
		if len(req.Values) == 0 {
			return nil, errors.New("modbus transport: fc15 without values")
		}
		_, err := c.bus.WriteMultipleCoils(req.Address, uint16(len(req.Values)), packBits(req.Values))
		return nil, err

	case register.WriteMultipleRegisters:
		if len(req.Values) == 0 {
			return nil, errors.New("modbus transport: fc16 without values")
		}
		_, err := c.bus.WriteMultipleRegisters(req.Address, uint16(len(req.Values)), packRegisters(req.Values))
		return nil, err

	default:
		return nil, fmt.Errorf("modbus transport: unsupported function code %d", req.Function)
	}
}

// ---- helpers (pure geometry) ----

// unpackBits expands LSB-first packed bits into 0/1 values.
func unpackBits(data []byte, count int) ([]uint16, error) {
	if len(data)*8 < count {
		return nil, fmt.Errorf("modbus transport: short bit payload: %d bytes for %d items", len(data), count)
	}
	out := make([]uint16, count)
	for i := 0; i < count; i++ {
		if data[i/8]&(1<<uint(i%8)) != 0 {
			out[i] = 1
		}
	}
	return out, nil
}

func unpackRegisters(data []byte, count int) ([]uint16, error) {
	if len(data) < 2*count {
		return nil, fmt.Errorf("modbus transport: short register payload: %d bytes for %d items", len(data), count)
	}
	out := make([]uint16, count)
	for i := 0; i < count; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out, nil
}

func packBits(bits []uint16) []byte {
	n := (len(bits) + 7) / 8
	out := make([]byte, n)
	for i, v := range bits {
		if v != 0 {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// Modbus register order is big-endian.
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
