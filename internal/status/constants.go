// internal/status/constants.go
package status

// Device health codes as written to status points.
// These values define the protocol and MUST NOT be configurable.

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents a healthy device.
const HealthOK uint16 = 1

// HealthError represents a device error state.
const HealthError uint16 = 2

// HealthStale represents a stale data state.
const HealthStale uint16 = 3

// HealthDisabled represents a disabled device state.
const HealthDisabled uint16 = 4

// ---- ERROR CODES ----

// ErrorCodeGeneric is reported for failures that carry no device code.
const ErrorCodeGeneric uint16 = 1

// MaxSecondsInError is where the error duration counter saturates.
const MaxSecondsInError uint16 = 65535
