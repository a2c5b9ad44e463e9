// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tamzrod/modbus-points/internal/register"
)

const sampleYAML = `
devices:
  - id: tank
    slave_id: 1
    transport:
      kind: tcp
      endpoint: 127.0.0.1:5020
    points:
      - {name: pressure, block: input_register, address: 0}
      - {name: setpoint, block: holding_register, address: 10}
      - {name: pump, block: coil, address: 2}
    poll:
      points: [pressure, setpoint]
      mirror:
        target: hmi
        map: {pressure: tank_pressure}
        status:
          health: tank_health
  - id: hmi
    slave_id: 2
    proximity_threshold: 0
    transport:
      kind: rtu
      device: /dev/ttyS0
      baud_rate: 9600
    points:
      - {name: tank_pressure, block: holding_register, address: 0}
      - {name: tank_health, block: holding_register, address: 1}
`

func TestLoad_ValidateNormalize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate err=%v", err)
	}
	Normalize(cfg)

	tank, ok := cfg.Device("tank")
	if !ok {
		t.Fatalf("tank missing")
	}
	if *tank.ProximityThreshold != DefaultProximityThreshold {
		t.Fatalf("default proximity: got=%d", *tank.ProximityThreshold)
	}
	if tank.Transport.TimeoutMs != DefaultTimeoutMs {
		t.Fatalf("default timeout: got=%d", tank.Transport.TimeoutMs)
	}
	if tank.Poll.IntervalMs != DefaultPollIntervalMs {
		t.Fatalf("default interval: got=%d", tank.Poll.IntervalMs)
	}
	if tank.Transport.BaudRate != 0 {
		t.Fatalf("serial defaults applied to tcp transport")
	}

	hmi, _ := cfg.Device("hmi")
	if *hmi.ProximityThreshold != 0 {
		t.Fatalf("explicit zero proximity overwritten: got=%d", *hmi.ProximityThreshold)
	}
	if hmi.Transport.BaudRate != 9600 || hmi.Transport.DataBits != 8 ||
		hmi.Transport.Parity != "N" || hmi.Transport.StopBits != 1 {
		t.Fatalf("serial defaults: %+v", hmi.Transport)
	}

	descs, err := tank.Descriptors()
	if err != nil {
		t.Fatalf("Descriptors err=%v", err)
	}
	if len(descs) != 3 || descs[2].Block != register.Coil || descs[1].Address != 10 {
		t.Fatalf("unexpected descriptors: %+v", descs)
	}
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("devices:\n  - id: x\n    max_distance: 4\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}
