// internal/config/validate.go
package config

import (
	"fmt"
	"net"

	"github.com/go-playground/validator/v10"

	"github.com/tamzrod/modbus-points/internal/register"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	// ------------------------------------------------------------
	// FIELD-LEVEL RULES (struct tags)
	// ------------------------------------------------------------

	if err := structValidator.Struct(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// ------------------------------------------------------------
	// DEVICE + POINT IDENTITY
	// ------------------------------------------------------------

	seenDevice := make(map[string]struct{})

	for _, d := range cfg.Devices {
		if _, dup := seenDevice[d.ID]; dup {
			return fmt.Errorf("device %q: duplicate device id", d.ID)
		}
		seenDevice[d.ID] = struct{}{}

		if d.Transport.Kind == "tcp" {
			if _, _, err := net.SplitHostPort(d.Transport.Endpoint); err != nil {
				return fmt.Errorf("device %q: endpoint %q must be host:port: %v", d.ID, d.Transport.Endpoint, err)
			}
		}

		seenPoint := make(map[string]struct{})
		for _, p := range d.Points {
			if _, dup := seenPoint[p.Name]; dup {
				return fmt.Errorf("device %q: duplicate point name %q", d.ID, p.Name)
			}
			seenPoint[p.Name] = struct{}{}
		}
	}

	// ------------------------------------------------------------
	// POLL + MIRROR REFERENCES
	// ------------------------------------------------------------

	for _, d := range cfg.Devices {
		if d.Poll == nil {
			continue
		}

		polled := make(map[string]struct{})
		for _, name := range d.Poll.Points {
			if _, ok := d.Point(name); !ok {
				return fmt.Errorf("device %q: poll point %q is not defined", d.ID, name)
			}
			polled[name] = struct{}{}
		}

		m := d.Poll.Mirror
		if m == nil {
			continue
		}

		if m.Target == d.ID {
			return fmt.Errorf("device %q: mirror target must be another device", d.ID)
		}
		target, ok := cfg.Device(m.Target)
		if !ok {
			return fmt.Errorf("device %q: mirror target %q is not defined", d.ID, m.Target)
		}

		// key = target point name
		owner := make(map[string]string)

		claim := func(targetPoint, what string) error {
			p, ok := target.Point(targetPoint)
			if !ok {
				return fmt.Errorf("device %q: mirror %s -> %s.%s: target point not defined",
					d.ID, what, target.ID, targetPoint)
			}
			if err := writable(p); err != nil {
				return fmt.Errorf("device %q: mirror %s -> %s.%s: %v", d.ID, what, target.ID, targetPoint, err)
			}
			if prev, dup := owner[targetPoint]; dup {
				return fmt.Errorf("device %q: mirror target point %s.%s written by both %s and %s",
					d.ID, target.ID, targetPoint, prev, what)
			}
			owner[targetPoint] = what
			return nil
		}

		for src, dst := range m.Map {
			if _, ok := polled[src]; !ok {
				return fmt.Errorf("device %q: mirror source %q is not polled", d.ID, src)
			}
			if err := claim(dst, src); err != nil {
				return err
			}
		}

		if s := m.Status; s != nil {
			for what, name := range map[string]string{
				"health":           s.Health,
				"last_error":       s.LastError,
				"seconds_in_error": s.SecondsInError,
			} {
				if name == "" {
					continue
				}
				p, ok := target.Point(name)
				if ok && p.Block != register.HoldingRegister.String() {
					return fmt.Errorf("device %q: status %s point %s.%s must be a holding_register",
						d.ID, what, target.ID, name)
				}
				if err := claim(name, "status."+what); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func writable(p *PointConfig) error {
	b, err := register.ParseBlockType(p.Block)
	if err != nil {
		return err
	}
	if !register.Operations(b).Writable() {
		return fmt.Errorf("point %q is in read-only block %s", p.Name, b)
	}
	return nil
}
