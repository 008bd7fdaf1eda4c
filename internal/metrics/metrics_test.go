package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/probesim/internal/scan"
)

func snap(contact, record, saturated bool, v float64) scan.Snapshot {
	return scan.Snapshot{Tip: scan.TipState{
		InContact: contact,
		Record:    record,
		Readout:   scan.Readout{Value: v, Saturated: saturated},
	}}
}

func TestContactFraction(t *testing.T) {
	m := NewContactFraction()
	if m.Value() != 0 {
		t.Error("expected zero before any observation")
	}

	m.Observe(snap(true, true, false, 1))
	m.Observe(snap(false, false, false, 0))
	m.Observe(snap(false, false, false, 0))
	m.Observe(snap(true, true, false, 1))

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestSaturationRate_IgnoresUnrecordedTicks(t *testing.T) {
	m := NewSaturationRate()
	m.Observe(snap(true, true, true, 6))
	m.Observe(snap(true, true, false, 7))
	m.Observe(snap(false, false, true, 6))

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}

func TestReadouts(t *testing.T) {
	mean := NewMeanReadout()
	peak := NewPeakReadout()
	for _, s := range []scan.Snapshot{
		snap(true, true, false, 2),
		snap(true, true, false, -4),
		snap(false, false, false, 100),
	} {
		mean.Observe(s)
		peak.Observe(s)
	}

	if math.Abs(mean.Value()+1) > 1e-12 {
		t.Errorf("mean = %f, want -1", mean.Value())
	}
	if peak.Value() != 4 {
		t.Errorf("peak = %f, want 4", peak.Value())
	}
}

func TestCollect(t *testing.T) {
	ms := Defaults()
	for _, m := range ms {
		m.Observe(snap(true, true, true, 3))
	}
	got := Collect(ms)
	want := map[string]float64{
		"contact_fraction": 1,
		"saturation_rate":  1,
		"mean_readout":     3,
		"peak_readout":     3,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
}
