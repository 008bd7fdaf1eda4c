package scan

import (
	"fmt"
	"math"
)

// Phase is one state of the tip cycle.
type Phase int

const (
	Lift Phase = iota
	Move
	Approach
	Measure
	Retract
)

func (p Phase) String() string {
	switch p {
	case Lift:
		return "lift"
	case Move:
		return "move"
	case Approach:
		return "approach"
	case Measure:
		return "measure"
	case Retract:
		return "retract"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// PhaseRange assigns [Lo, Hi) of the cycle phase to a state.
type PhaseRange struct {
	Phase Phase
	Lo    float64
	Hi    float64
}

// PhaseTable is an ordered partition of [0,1) into states.
type PhaseTable []PhaseRange

const boundTolerance = 1e-12

// Canonical is the five-state lift/move/approach/measure/retract cycle.
var Canonical = PhaseTable{
	{Lift, 0.0, 0.3},
	{Move, 0.3, 0.6},
	{Approach, 0.6, 0.9},
	{Measure, 0.9, 0.95},
	{Retract, 0.95, 1.0},
}

// Reduced drops lift and move for continuously scanning instruments.
var Reduced = PhaseTable{
	{Approach, 0.0, 0.3},
	{Measure, 0.3, 0.7},
	{Retract, 0.7, 1.0},
}

// Oscillating labels the halves of a continuous oscillation. Contact is
// decided by the tip model, not by the table.
var Oscillating = PhaseTable{
	{Approach, 0.0, 0.5},
	{Retract, 0.5, 1.0},
}

// Validate checks that the table covers [0,1) contiguously and exhaustively.
func (t PhaseTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty table", ErrBadPhaseTable)
	}
	if math.Abs(t[0].Lo) > boundTolerance {
		return fmt.Errorf("%w: first range starts at %g", ErrBadPhaseTable, t[0].Lo)
	}
	if last := t[len(t)-1]; math.Abs(last.Hi-1) > boundTolerance {
		return fmt.Errorf("%w: last range ends at %g", ErrBadPhaseTable, last.Hi)
	}
	for i, r := range t {
		if r.Hi <= r.Lo {
			return fmt.Errorf("%w: %s range [%g,%g) is empty", ErrBadPhaseTable, r.Phase, r.Lo, r.Hi)
		}
		if i > 0 && math.Abs(r.Lo-t[i-1].Hi) > boundTolerance {
			return fmt.Errorf("%w: gap or overlap at %g", ErrBadPhaseTable, r.Lo)
		}
	}
	return nil
}

// Lookup returns the state owning phase and the fraction of its sub-range
// already elapsed. Phases outside [0,1) clamp to the first or last state.
func (t PhaseTable) Lookup(phase float64) (Phase, float64) {
	if phase < t[0].Lo {
		return t[0].Phase, 0
	}
	for _, r := range t {
		if phase >= r.Lo && phase < r.Hi {
			return r.Phase, (phase - r.Lo) / (r.Hi - r.Lo)
		}
	}
	return t[len(t)-1].Phase, 1
}

// Range returns the first sub-range assigned to p.
func (t PhaseTable) Range(p Phase) (PhaseRange, bool) {
	for _, r := range t {
		if r.Phase == p {
			return r, true
		}
	}
	return PhaseRange{}, false
}

// Contains reports whether phase falls in a sub-range owned by p.
func (t PhaseTable) Contains(p Phase, phase float64) bool {
	for _, r := range t {
		if r.Phase == p && phase >= r.Lo && phase < r.Hi {
			return true
		}
	}
	return false
}
