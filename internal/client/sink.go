// internal/client/sink.go
package client

import (
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/modbus-points/internal/planner"
	"github.com/tamzrod/modbus-points/internal/register"
)

// Event describes one completed transaction.
type Event struct {
	SlaveID   uint8
	Block     register.BlockType
	Direction planner.Direction
	Function  register.FunctionCode
	Address   uint16
	Quantity  uint16
	Points    int
	Duration  time.Duration
	Err       error
}

// Sink observes transactions. Implementations must not block for long:
// Transaction runs inline between wire calls.
type Sink interface {
	Transaction(ev Event)
}

type nopSink struct{}

func (nopSink) Transaction(Event) {}

// ZapSink logs transactions: successes at debug, failures at warn.
type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger}
}

func (s *ZapSink) Transaction(ev Event) {
	fields := []zap.Field{
		zap.Uint8("slave", ev.SlaveID),
		zap.Stringer("block", ev.Block),
		zap.Stringer("direction", ev.Direction),
		zap.Uint8("fc", uint8(ev.Function)),
		zap.Uint16("address", ev.Address),
		zap.Uint16("quantity", ev.Quantity),
		zap.Int("points", ev.Points),
		zap.Duration("took", ev.Duration),
	}

	if ev.Err != nil {
		s.logger.Warn("transaction failed", append(fields, zap.Error(ev.Err))...)
		return
	}
	s.logger.Debug("transaction", fields...)
}
