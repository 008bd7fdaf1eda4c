package tip

import (
	"math"

	"github.com/san-kum/probesim/internal/scan"
)

// Indentation pushes the tip into the sample with a fixed force setpoint:
// deformation = min(setpoint*Scale/max(k, MinStiffness), Cap).
type Indentation struct {
	Motion
	Setpoint     float64
	Scale        float64
	Cap          float64
	MinStiffness float64
}

func NewIndentation() *Indentation {
	return &Indentation{
		Motion:       DefaultMotion(),
		Setpoint:     0.5,
		Scale:        20,
		Cap:          15,
		MinStiffness: 0.1,
	}
}

// Deformation is the indentation depth under stiffness k, within [0, Cap].
func (m *Indentation) Deformation(k float64) float64 {
	k = math.Max(k, m.MinStiffness)
	d := m.Setpoint * m.Scale / k
	return math.Max(0, math.Min(d, m.Cap))
}

func (m *Indentation) Compute(p *scan.Profile, x float64, c scan.CycleState) scan.TipState {
	surface := p.Sample(scan.Height, x)
	k := p.Sample(scan.Stiffness, x)
	contact := c.State == scan.Measure

	def := 0.0
	if contact {
		def = m.Deformation(k)
	}
	return scan.TipState{
		Height:    m.Height(surface, c, def),
		Surface:   surface,
		InContact: contact,
		Phase:     c.State,
		Record:    contact,
		Readout: scan.Readout{
			Quantity:  scan.QuantityDeformation,
			Value:     def,
			Raw:       k,
			Z:         surface,
			Saturated: contact && def >= m.Cap,
		},
	}
}

func (m *Indentation) GetParams() map[string]float64 {
	out := map[string]float64{
		"setpoint": m.Setpoint,
		"cap":      m.Cap,
	}
	m.params(out)
	return out
}

func (m *Indentation) SetParam(name string, v float64) error {
	if ok, err := m.setParam(name, v); ok {
		return err
	}
	switch name {
	case "setpoint":
		if v < 0 || !finite(v) {
			return bounds(name, v)
		}
		m.Setpoint = v
	case "cap":
		if v <= 0 || !finite(v) {
			return bounds(name, v)
		}
		m.Cap = v
	default:
		return unknown(name)
	}
	return nil
}
