// internal/register/register.go
package register

import "fmt"

// BlockType is one Modbus data table. Each has its own address space.
type BlockType uint8

const (
	Coil BlockType = iota
	DiscreteInput
	HoldingRegister
	InputRegister
)

// BlockTypes lists every block type in planning order.
var BlockTypes = []BlockType{Coil, DiscreteInput, HoldingRegister, InputRegister}

func (b BlockType) String() string {
	switch b {
	case Coil:
		return "coil"
	case DiscreteInput:
		return "discrete_input"
	case HoldingRegister:
		return "holding_register"
	case InputRegister:
		return "input_register"
	default:
		return fmt.Sprintf("block(%d)", uint8(b))
	}
}

// IsBit reports whether the block holds single-bit items.
func (b BlockType) IsBit() bool {
	return b == Coil || b == DiscreteInput
}

// ParseBlockType maps a config name onto a BlockType.
func ParseBlockType(s string) (BlockType, error) {
	switch s {
	case "coil":
		return Coil, nil
	case "discrete_input":
		return DiscreteInput, nil
	case "holding_register":
		return HoldingRegister, nil
	case "input_register":
		return InputRegister, nil
	default:
		return 0, fmt.Errorf("register: unknown block type %q", s)
	}
}

// FunctionCode is a Modbus function code.
type FunctionCode uint8

const (
	ReadCoils              FunctionCode = 1
	ReadDiscreteInputs     FunctionCode = 2
	ReadHoldingRegisters   FunctionCode = 3
	ReadInputRegisters     FunctionCode = 4
	WriteSingleCoil        FunctionCode = 5
	WriteSingleRegister    FunctionCode = 6
	WriteMultipleCoils     FunctionCode = 15
	WriteMultipleRegisters FunctionCode = 16
)

// OperationSet holds the function codes usable against one block type.
// Zero means the operation does not exist for the block.
type OperationSet struct {
	Read          FunctionCode
	WriteSingle   FunctionCode
	WriteMultiple FunctionCode
}

// Writable reports whether the block accepts writes at all.
func (o OperationSet) Writable() bool {
	return o.WriteSingle != 0 && o.WriteMultiple != 0
}

var operations = map[BlockType]OperationSet{
	Coil:            {Read: ReadCoils, WriteSingle: WriteSingleCoil, WriteMultiple: WriteMultipleCoils},
	DiscreteInput:   {Read: ReadDiscreteInputs},
	HoldingRegister: {Read: ReadHoldingRegisters, WriteSingle: WriteSingleRegister, WriteMultiple: WriteMultipleRegisters},
	InputRegister:   {Read: ReadInputRegisters},
}

// Operations returns the operation set of a block type.
func Operations(b BlockType) OperationSet {
	return operations[b]
}

// Protocol limits on items per request.
const (
	MaxReadBits       = 2000
	MaxReadRegisters  = 125
	MaxWriteCoils     = 1968
	MaxWriteRegisters = 123
)

// MaxQuantity returns how many items a single request for fc may carry.
// Single-item writes return 1; unknown codes return 0.
func MaxQuantity(fc FunctionCode) uint16 {
	switch fc {
	case ReadCoils, ReadDiscreteInputs:
		return MaxReadBits
	case ReadHoldingRegisters, ReadInputRegisters:
		return MaxReadRegisters
	case WriteMultipleCoils:
		return MaxWriteCoils
	case WriteMultipleRegisters:
		return MaxWriteRegisters
	case WriteSingleCoil, WriteSingleRegister:
		return 1
	default:
		return 0
	}
}

// IsWrite reports whether fc modifies device state.
func (fc FunctionCode) IsWrite() bool {
	switch fc {
	case WriteSingleCoil, WriteSingleRegister, WriteMultipleCoils, WriteMultipleRegisters:
		return true
	}
	return false
}
