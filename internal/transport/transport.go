// internal/transport/transport.go
package transport

import (
	"fmt"

	"github.com/tamzrod/modbus-points/internal/register"
)

// Request is one wire transaction.
//
// Reads carry Quantity. Writes carry Values: one value for single-item
// function codes, the ordered run for multi-item ones. Bit values are 0 or 1.
type Request struct {
	SlaveID  uint8
	Function register.FunctionCode
	Address  uint16
	Quantity uint16
	Values   []uint16
}

func (r Request) String() string {
	if r.Function.IsWrite() {
		return fmt.Sprintf("slave=%d fc=%d addr=%d values=%d", r.SlaveID, r.Function, r.Address, len(r.Values))
	}
	return fmt.Sprintf("slave=%d fc=%d addr=%d qty=%d", r.SlaveID, r.Function, r.Address, r.Quantity)
}

// Transport issues one synchronous request against a connected device.
// Reads return one value per requested item, zero-based from Address.
// Writes return nil values.
type Transport interface {
	Issue(req Request) ([]uint16, error)
}

// Kind selects a concrete transport.
type Kind string

const (
	KindTCP Kind = "tcp"
	KindRTU Kind = "rtu"
)
