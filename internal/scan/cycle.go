package scan

import "math"

// HopMode selects how the scan position advances.
type HopMode int

const (
	// HopDiscrete moves the tip by Hop only when the cycle wraps.
	HopDiscrete HopMode = iota
	// HopContinuous moves the tip by ScanRate every tick.
	HopContinuous
)

func (m HopMode) String() string {
	if m == HopContinuous {
		return "continuous"
	}
	return "discrete"
}

// CycleConfig parameterises the scan state machine.
type CycleConfig struct {
	Table     PhaseTable
	Increment float64 // cycle phase per tick at speed 1
	Hop       float64 // position step per wrap (HopDiscrete)
	ScanRate  float64 // position step per tick at speed 1 (HopContinuous)
	Mode      HopMode
	Length    float64
}

// ScanState is the mutable per-frame scan state.
type ScanState struct {
	X          float64
	CyclePhase float64
	Scanning   bool
}

// Events reports the boundaries crossed by one Advance.
type Events struct {
	CycleWrapped bool
	LineWrapped  bool
}

// Advance moves the state one tick. A paused state does not move.
func (s *ScanState) Advance(cfg CycleConfig, speed float64) Events {
	var ev Events
	if !s.Scanning {
		return ev
	}

	s.CyclePhase += cfg.Increment * speed
	if s.CyclePhase >= 1 {
		s.CyclePhase = 0
		ev.CycleWrapped = true
		if cfg.Mode == HopDiscrete {
			s.X += cfg.Hop
		}
	}
	if cfg.Mode == HopContinuous {
		s.X += cfg.ScanRate * speed
	}
	if s.X >= cfg.Length {
		s.X = 0
		ev.LineWrapped = true
	}
	return ev
}

// CycleState is what a tip model sees of the state machine each tick.
type CycleState struct {
	Phase    float64
	State    Phase
	Fraction float64
}

// Angle maps the cycle phase onto one oscillation period.
func (c CycleState) Angle() float64 { return c.Phase * 2 * math.Pi }
