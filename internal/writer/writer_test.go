// internal/writer/writer_test.go
package writer

import (
	"errors"
	"testing"

	cfg "github.com/tamzrod/modbus-points/internal/config"
	"github.com/tamzrod/modbus-points/internal/poller"
)

// ---- fake point writer ----

type fakePointWriter struct {
	writes []map[string]uint16
	fail   bool
}

func (f *fakePointWriter) WritePoints(values map[string]uint16) error {
	cp := make(map[string]uint16, len(values))
	for k, v := range values {
		cp[k] = v
	}
	f.writes = append(f.writes, cp)
	if f.fail {
		return errors.New("connection reset")
	}
	return nil
}

func (f *fakePointWriter) last() map[string]uint16 {
	if len(f.writes) == 0 {
		return nil
	}
	return f.writes[len(f.writes)-1]
}

// ---- tests ----

func TestWriter_MapsSourceToTarget(t *testing.T) {
	fake := &fakePointWriter{}
	w := New(Plan{
		DeviceID: "plc",
		Target:   "hmi",
		Map:      map[string]string{"pressure": "plc_pressure", "pump": "plc_pump"},
	}, fake)

	res := poller.PollResult{
		DeviceID: "plc",
		Values:   map[string]uint16{"pressure": 17, "pump": 1, "other": 9},
	}
	if err := w.Write(res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.writes) != 1 {
		t.Fatalf("expected 1 write call, got %d", len(fake.writes))
	}
	got := fake.last()
	if len(got) != 2 || got["plc_pressure"] != 17 || got["plc_pump"] != 1 {
		t.Fatalf("unexpected write: %v", got)
	}
}

func TestWriter_SkipsFailedPoll(t *testing.T) {
	fake := &fakePointWriter{}
	w := New(Plan{DeviceID: "plc", Map: map[string]string{"a": "b"}}, fake)

	if err := w.Write(poller.PollResult{Err: errors.New("timeout")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.writes) != 0 {
		t.Fatalf("failed poll must not be delivered")
	}
}

func TestWriter_MissingSourceValue(t *testing.T) {
	fake := &fakePointWriter{}
	w := New(Plan{DeviceID: "plc", Map: map[string]string{"a": "b"}}, fake)

	if err := w.Write(poller.PollResult{Values: map[string]uint16{}}); err == nil {
		t.Fatalf("expected error")
	}
	if len(fake.writes) != 0 {
		t.Fatalf("nothing should be written")
	}
}

func TestWriter_PropagatesWriteError(t *testing.T) {
	fake := &fakePointWriter{fail: true}
	w := New(Plan{DeviceID: "plc", Target: "hmi", Map: map[string]string{"a": "b"}}, fake)

	if err := w.Write(poller.PollResult{Values: map[string]uint16{"a": 1}}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBuildPlan(t *testing.T) {
	d := cfg.DeviceConfig{
		ID: "plc",
		Poll: &cfg.PollConfig{
			Points: []string{"pressure"},
			Mirror: &cfg.MirrorConfig{
				Target: "hmi",
				Map:    map[string]string{"pressure": "plc_pressure"},
				Status: &cfg.StatusConfig{Health: "plc_health"},
			},
		},
	}

	plan, ok, err := BuildPlan(d)
	if err != nil || !ok {
		t.Fatalf("BuildPlan ok=%v err=%v", ok, err)
	}
	if plan.Target != "hmi" || plan.Map["pressure"] != "plc_pressure" {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	if plan.Status == nil || plan.Status.Health != "plc_health" || plan.Status.SecondsInError != "" {
		t.Fatalf("unexpected status plan: %+v", plan.Status)
	}

	d.Poll.Mirror = nil
	if _, ok, err := BuildPlan(d); ok || err != nil {
		t.Fatalf("expected no plan without mirror: ok=%v err=%v", ok, err)
	}
}
