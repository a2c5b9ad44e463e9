// internal/config/normalize.go
package config

const (
	DefaultProximityThreshold uint16 = 5
	DefaultTimeoutMs                 = 1000
	DefaultPollIntervalMs            = 1000

	DefaultBaudRate = 19200
	DefaultDataBits = 8
	DefaultParity   = "N"
	DefaultStopBits = 1
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	for di := range cfg.Devices {
		d := &cfg.Devices[di]

		if d.ProximityThreshold == nil {
			v := DefaultProximityThreshold
			d.ProximityThreshold = &v
		}

		t := &d.Transport
		if t.TimeoutMs == 0 {
			t.TimeoutMs = DefaultTimeoutMs
		}

		// Serial line defaults only matter for rtu.
		if t.Kind == "rtu" {
			if t.BaudRate == 0 {
				t.BaudRate = DefaultBaudRate
			}
			if t.DataBits == 0 {
				t.DataBits = DefaultDataBits
			}
			if t.Parity == "" {
				t.Parity = DefaultParity
			}
			if t.StopBits == 0 {
				t.StopBits = DefaultStopBits
			}
		}

		if d.Poll != nil && d.Poll.IntervalMs == 0 {
			d.Poll.IntervalMs = DefaultPollIntervalMs
		}
	}
}
