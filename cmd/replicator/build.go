// cmd/replicator/build.go
package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/modbus-points/internal/client"
	"github.com/tamzrod/modbus-points/internal/config"
	"github.com/tamzrod/modbus-points/internal/transport"
	tmodbus "github.com/tamzrod/modbus-points/internal/transport/modbus"
)

// transportConfig maps the device transport block onto the modbus adapter.
func transportConfig(t config.TransportConfig) (tmodbus.Config, error) {
	out := tmodbus.Config{
		Timeout: time.Duration(t.TimeoutMs) * time.Millisecond,
	}

	switch transport.Kind(t.Kind) {
	case transport.KindTCP:
		out.Kind = transport.KindTCP
		out.Endpoint = t.Endpoint
	case transport.KindRTU:
		out.Kind = transport.KindRTU
		out.Device = t.Device
		out.BaudRate = t.BaudRate
		out.DataBits = t.DataBits
		out.Parity = t.Parity
		out.StopBits = t.StopBits
	default:
		return tmodbus.Config{}, fmt.Errorf("unsupported transport kind %q", t.Kind)
	}

	return out, nil
}

// buildClient connects one device and wraps it in a point client.
// The returned closer releases the transport.
func buildClient(d config.DeviceConfig, logger *zap.Logger) (*client.Client, func() error, error) {
	tc, err := transportConfig(d.Transport)
	if err != nil {
		return nil, nil, err
	}

	tr, err := tmodbus.New(tc)
	if err != nil {
		return nil, nil, err
	}

	points, err := d.Descriptors()
	if err != nil {
		_ = tr.Close()
		return nil, nil, err
	}

	c, err := client.New(client.Config{
		SlaveID:            d.SlaveID,
		ProximityThreshold: d.ProximityThreshold,
		Points:             points,
		Sink:               client.NewZapSink(logger.With(zap.String("device", d.ID))),
	}, tr)
	if err != nil {
		_ = tr.Close()
		return nil, nil, err
	}

	return c, tr.Close, nil
}
