// internal/client/assemble.go
package client

import "github.com/tamzrod/modbus-points/internal/planner"

// collect copies each member's slot out of a group's raw response.
// Gap slots are dropped. raw covers the full group span.
func collect(g planner.Group, raw []uint16, into map[string]uint16) {
	for _, m := range g.Members {
		into[m.Name] = raw[m.Offset]
	}
}

// arrange lays resolved values out in the caller's requested order.
func arrange(names []string, byName map[string]uint16) []uint16 {
	out := make([]uint16, len(names))
	for i, n := range names {
		out[i] = byName[n]
	}
	return out
}
