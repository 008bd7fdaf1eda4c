package tip

import (
	"math"

	"github.com/san-kum/probesim/internal/recorder"
	"github.com/san-kum/probesim/internal/scan"
)

// Oscillation maps the cycle phase onto a cosine height above the surface.
type Oscillation struct {
	Center    float64
	Amplitude float64
}

// Z is the unconstrained tip height, relative to the surface, at angle.
func (o Oscillation) Z(angle float64) float64 {
	return o.Center + o.Amplitude*math.Cos(angle)
}

// Branch is Forward while the tip descends and Backward while it rises.
func (o Oscillation) Branch(angle float64) recorder.Branch {
	if angle < math.Pi {
		return recorder.Forward
	}
	return recorder.Backward
}

// ForceCurve oscillates the tip through the surface and records the
// force-distance curve with loading/unloading hysteresis and adhesion.
type ForceCurve struct {
	Oscillation
	LoadGain      float64
	UnloadGain    float64
	AdhesionScale float64
	AdhesionRange float64
	Cap           float64 // penetration cap
	ForceCap      float64 // display range of the force readout
	MinStiffness  float64
}

func NewForceCurve() *ForceCurve {
	return &ForceCurve{
		Oscillation:   Oscillation{Center: 3, Amplitude: 10},
		LoadGain:      0.5,
		UnloadGain:    0.35,
		AdhesionScale: 1.5,
		AdhesionRange: 3,
		Cap:           15,
		ForceCap:      20,
		MinStiffness:  0.1,
	}
}

// Force evaluates the constitutive law at a signed distance d = rawZ -
// surface. It returns the force and the penetration depth.
func (m *ForceCurve) Force(d, k float64, branch recorder.Branch) (float64, float64) {
	k = math.Max(k, m.MinStiffness)
	if d < 0 {
		pen := math.Min(-d, m.Cap)
		gain := m.LoadGain
		if branch == recorder.Backward {
			gain = m.UnloadGain
		}
		return pen * k * gain, pen
	}
	if branch == recorder.Backward && m.AdhesionRange > 0 && d < m.AdhesionRange {
		return -m.AdhesionScale * (1 - d/m.AdhesionRange), 0
	}
	return 0, 0
}

func (m *ForceCurve) Compute(p *scan.Profile, x float64, c scan.CycleState) scan.TipState {
	surface := p.Sample(scan.Height, x)
	k := p.Sample(scan.Stiffness, x)
	angle := c.Angle()
	raw := surface + m.Z(angle)
	branch := m.Branch(angle)
	contact := raw < surface

	force, pen := m.Force(raw-surface, k, branch)
	shown, sat := Clamp(force, -m.ForceCap, m.ForceCap)

	phase := scan.Approach
	switch {
	case contact:
		phase = scan.Measure
	case branch == recorder.Backward:
		phase = scan.Retract
	}

	height := raw
	if contact {
		height = surface - pen
	}
	return scan.TipState{
		Height:    height,
		Surface:   surface,
		InContact: contact,
		Phase:     phase,
		Branch:    branch,
		Record:    true,
		Readout: scan.Readout{
			Quantity:  scan.QuantityForce,
			Value:     shown,
			Raw:       pen,
			Z:         raw - surface,
			Saturated: sat,
		},
	}
}

func (m *ForceCurve) GetParams() map[string]float64 {
	return map[string]float64{
		"center":         m.Center,
		"amplitude":      m.Amplitude,
		"load_gain":      m.LoadGain,
		"unload_gain":    m.UnloadGain,
		"adhesion":       m.AdhesionScale,
		"adhesion_range": m.AdhesionRange,
	}
}

func (m *ForceCurve) SetParam(name string, v float64) error {
	if !finite(v) {
		return bounds(name, v)
	}
	switch name {
	case "center":
		m.Center = v
	case "amplitude":
		if v <= 0 {
			return bounds(name, v)
		}
		m.Amplitude = v
	case "load_gain":
		if v < 0 {
			return bounds(name, v)
		}
		m.LoadGain = v
	case "unload_gain":
		if v < 0 {
			return bounds(name, v)
		}
		m.UnloadGain = v
	case "adhesion":
		if v < 0 {
			return bounds(name, v)
		}
		m.AdhesionScale = v
	case "adhesion_range":
		if v < 0 {
			return bounds(name, v)
		}
		m.AdhesionRange = v
	default:
		return unknown(name)
	}
	return nil
}
