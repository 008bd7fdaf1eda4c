package scan

import (
	"errors"
	"testing"
)

func TestPhaseTable_Validate(t *testing.T) {
	tests := []struct {
		name  string
		table PhaseTable
		ok    bool
	}{
		{"canonical", Canonical, true},
		{"reduced", Reduced, true},
		{"oscillating", Oscillating, true},
		{"empty", PhaseTable{}, false},
		{"gap", PhaseTable{{Lift, 0, 0.4}, {Measure, 0.5, 1}}, false},
		{"overlap", PhaseTable{{Lift, 0, 0.6}, {Measure, 0.5, 1}}, false},
		{"short", PhaseTable{{Lift, 0, 0.4}, {Measure, 0.4, 0.9}}, false},
		{"late start", PhaseTable{{Lift, 0.1, 1}}, false},
		{"empty range", PhaseTable{{Lift, 0, 0}, {Measure, 0, 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrBadPhaseTable) {
				t.Errorf("Validate() = %v, want ErrBadPhaseTable", err)
			}
		})
	}
}

func TestPhaseTable_Lookup(t *testing.T) {
	tests := []struct {
		phase    float64
		state    Phase
		fraction float64
	}{
		{0.0, Lift, 0},
		{0.15, Lift, 0.5},
		{0.3, Move, 0},
		{0.75, Approach, 0.5},
		{0.9, Measure, 0},
		{0.925, Measure, 0.5},
		{0.95, Retract, 0},
		{0.999, Retract, 0.98},
		{-0.1, Lift, 0},
		{1.0, Retract, 1},
	}

	for _, tt := range tests {
		state, frac := Canonical.Lookup(tt.phase)
		if state != tt.state {
			t.Errorf("Lookup(%v) state = %v, want %v", tt.phase, state, tt.state)
		}
		if d := frac - tt.fraction; d > 1e-9 || d < -1e-9 {
			t.Errorf("Lookup(%v) fraction = %v, want %v", tt.phase, frac, tt.fraction)
		}
	}
}

func TestPhaseTable_Contains(t *testing.T) {
	if !Canonical.Contains(Measure, 0.92) {
		t.Error("0.92 should be inside measure")
	}
	if Canonical.Contains(Measure, 0.95) {
		t.Error("0.95 is the retract lower bound")
	}
	r, ok := Reduced.Range(Measure)
	if !ok || r.Lo != 0.3 || r.Hi != 0.7 {
		t.Errorf("Reduced.Range(Measure) = %+v, %v", r, ok)
	}
	if _, ok := Reduced.Range(Move); ok {
		t.Error("reduced table has no move state")
	}
}

func TestPhase_String(t *testing.T) {
	if Approach.String() != "approach" {
		t.Errorf("got %q", Approach.String())
	}
	if Phase(42).String() != "phase(42)" {
		t.Errorf("got %q", Phase(42).String())
	}
}
