// cmd/replicator/orchestrator.go
package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/modbus-points/internal/poller"
	"github.com/tamzrod/modbus-points/internal/status"
	"github.com/tamzrod/modbus-points/internal/writer"
)

// orchestrate consumes poll results for one device: it delivers mirrored
// values and keeps the device status (runner-owned state + 1Hz ticker).
// dataWriter and statusWriter may be nil.
func orchestrate(
	ctx context.Context,
	logger *zap.Logger,
	in <-chan poller.PollResult,
	dataWriter writer.Writer,
	statusWriter writer.StatusWriter,
) {
	tracker := status.NewTracker()

	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	writeStatus := func(reason string) {
		if statusWriter == nil {
			return
		}
		if err := statusWriter.WriteStatus(tracker.Snapshot()); err != nil {
			logger.Warn("status write failed", zap.String("on", reason), zap.Error(err))
		}
	}

	// Assert every status point on start.
	writeStatus("start")

	for {
		select {
		case <-ctx.Done():
			return

		case res := <-in:
			if res.Err != nil {
				logger.Warn("poll failed", zap.Error(res.Err))
			}

			// --- data delivery ---
			if dataWriter != nil {
				if err := dataWriter.Write(res); err != nil {
					logger.Error("mirror write failed", zap.Error(err))
				}
			}

			// --- status update (device-level truth) ---
			if tracker.Observe(res.Err) {
				s := tracker.Snapshot()
				logger.Info("device status changed",
					zap.Uint16("health", s.Health),
					zap.Uint16("last_error", s.LastErrorCode))
				writeStatus("poll")
			}

		case <-secTicker.C:
			// Tick 1 Hz while not OK.
			if tracker.Tick() {
				writeStatus("tick")
			}
		}
	}
}
