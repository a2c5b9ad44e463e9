// internal/config/config.go
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/modbus-points/internal/point"
	"github.com/tamzrod/modbus-points/internal/register"
)

type Config struct {
	Devices []DeviceConfig `yaml:"devices" validate:"required,min=1,dive"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	ID                 string          `yaml:"id" validate:"required"`
	SlaveID            uint8           `yaml:"slave_id"`
	ProximityThreshold *uint16         `yaml:"proximity_threshold"` // nil => default (5)
	Transport          TransportConfig `yaml:"transport"`
	Points             []PointConfig   `yaml:"points" validate:"required,min=1,dive"`
	Poll               *PollConfig     `yaml:"poll" validate:"omitempty"`
}

// ---- TRANSPORT ----

type TransportConfig struct {
	Kind      string `yaml:"kind" validate:"required,oneof=tcp rtu"`
	TimeoutMs int    `yaml:"timeout_ms" validate:"gte=0"`

	// tcp
	Endpoint string `yaml:"endpoint" validate:"required_if=Kind tcp"`

	// rtu
	Device   string `yaml:"device" validate:"required_if=Kind rtu"`
	BaudRate int    `yaml:"baud_rate" validate:"gte=0"`
	DataBits int    `yaml:"data_bits" validate:"omitempty,oneof=5 6 7 8"`
	Parity   string `yaml:"parity" validate:"omitempty,oneof=N E O"`
	StopBits int    `yaml:"stop_bits" validate:"omitempty,oneof=1 2"`
}

// ---- POINT ----

type PointConfig struct {
	Name    string `yaml:"name" validate:"required"`
	Block   string `yaml:"block" validate:"required,oneof=coil discrete_input holding_register input_register"`
	Address uint16 `yaml:"address"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int           `yaml:"interval_ms" validate:"gte=0"`
	Points     []string      `yaml:"points" validate:"required,min=1"`
	Mirror     *MirrorConfig `yaml:"mirror" validate:"omitempty"`
}

// MirrorConfig replicates polled values onto points of another device.
type MirrorConfig struct {
	Target string            `yaml:"target" validate:"required"`
	Map    map[string]string `yaml:"map"` // source point -> target point
	Status *StatusConfig     `yaml:"status" validate:"omitempty"`
}

// StatusConfig names the target points that carry the source device health.
// Empty names are not written.
type StatusConfig struct {
	Health         string `yaml:"health"`
	LastError      string `yaml:"last_error"`
	SecondsInError string `yaml:"seconds_in_error"`
}

// Load reads a YAML config file. It does not validate or normalize.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

// Device returns the device with the given id.
func (c *Config) Device(id string) (*DeviceConfig, bool) {
	for i := range c.Devices {
		if c.Devices[i].ID == id {
			return &c.Devices[i], true
		}
	}
	return nil, false
}

// Point returns the point with the given name.
func (d *DeviceConfig) Point(name string) (*PointConfig, bool) {
	for i := range d.Points {
		if d.Points[i].Name == name {
			return &d.Points[i], true
		}
	}
	return nil, false
}

// Descriptors converts the device's point table for the client.
func (d *DeviceConfig) Descriptors() ([]point.Descriptor, error) {
	out := make([]point.Descriptor, 0, len(d.Points))
	for _, p := range d.Points {
		b, err := register.ParseBlockType(p.Block)
		if err != nil {
			return nil, fmt.Errorf("device %q point %q: %w", d.ID, p.Name, err)
		}
		out = append(out, point.Descriptor{Name: p.Name, Block: b, Address: p.Address})
	}
	return out, nil
}
