// Package tip holds the constitutive laws that turn a sample property under
// the tip into a tip height and a physical readout.
package tip

import (
	"fmt"
	"math"

	"github.com/san-kum/probesim/internal/scan"
)

// Motion is the trajectory of the discrete-cycle models outside Measure.
type Motion struct {
	Lift            float64 // clearance above the surface at the top of the cycle
	RetractFraction float64 // fraction of Lift reached by the end of Retract
	MeasureLift     float64 // clearance while measuring; zero for contact modes
}

func DefaultMotion() Motion {
	return Motion{Lift: 20, RetractFraction: 0.2}
}

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Height places the tip above surface for cycle state c. depth is the
// indentation held during Measure.
func (m Motion) Height(surface float64, c scan.CycleState, depth float64) float64 {
	lifted := surface + m.Lift
	measure := surface + m.MeasureLift
	switch c.State {
	case scan.Lift:
		return Lerp(surface, lifted, c.Fraction)
	case scan.Move:
		return lifted
	case scan.Approach:
		return Lerp(lifted, measure, c.Fraction)
	case scan.Measure:
		return measure - depth
	case scan.Retract:
		return Lerp(measure, surface+m.RetractFraction*m.Lift, c.Fraction)
	}
	return surface
}

func (m *Motion) params(out map[string]float64) {
	out["lift"] = m.Lift
	out["retract"] = m.RetractFraction
}

// setParam reports whether name belonged to the motion.
func (m *Motion) setParam(name string, v float64) (bool, error) {
	switch name {
	case "lift":
		if v < 0 || !finite(v) {
			return true, bounds(name, v)
		}
		m.Lift = v
	case "retract":
		if v < 0 || v > 1 || !finite(v) {
			return true, bounds(name, v)
		}
		m.RetractFraction = v
	default:
		return false, nil
	}
	return true, nil
}

// Clamp limits v to [lo, hi] and reports whether it had to.
func Clamp(v, lo, hi float64) (float64, bool) {
	switch {
	case v < lo:
		return lo, true
	case v > hi:
		return hi, true
	}
	return v, false
}

func bounds(name string, v float64) error {
	return fmt.Errorf("%w: %s = %g", scan.ErrParameterBounds, name, v)
}

func unknown(name string) error {
	return fmt.Errorf("%w: %s", scan.ErrUnknownParam, name)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
