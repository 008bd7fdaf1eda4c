package tip

import "github.com/san-kum/probesim/internal/scan"

// Resistance reads log10 resistance under the tip. With Clamp set the
// reading saturates at the instrument's visible decades.
type Resistance struct {
	Motion
	Clamp bool
	Lower float64
	Upper float64
}

func NewResistance(clamp bool) *Resistance {
	return &Resistance{Motion: DefaultMotion(), Clamp: clamp, Lower: 6, Upper: 10}
}

// Read applies the instrument range to a raw log10 resistance.
func (m *Resistance) Read(raw float64) (float64, bool) {
	if !m.Clamp {
		return raw, false
	}
	return Clamp(raw, m.Lower, m.Upper)
}

func (m *Resistance) Compute(p *scan.Profile, x float64, c scan.CycleState) scan.TipState {
	surface := p.Sample(scan.Height, x)
	raw := p.Sample(scan.ResistanceLog, x)
	v, sat := m.Read(raw)
	contact := c.State == scan.Measure

	return scan.TipState{
		Height:    m.Height(surface, c, 0),
		Surface:   surface,
		InContact: contact,
		Phase:     c.State,
		Record:    contact,
		Readout: scan.Readout{
			Quantity:  scan.QuantityResistanceLog,
			Value:     v,
			Raw:       raw,
			Z:         surface,
			Saturated: sat,
		},
	}
}

func (m *Resistance) GetParams() map[string]float64 {
	clamp := 0.0
	if m.Clamp {
		clamp = 1
	}
	out := map[string]float64{
		"clamp": clamp,
		"lower": m.Lower,
		"upper": m.Upper,
	}
	m.params(out)
	return out
}

func (m *Resistance) SetParam(name string, v float64) error {
	if ok, err := m.setParam(name, v); ok {
		return err
	}
	switch name {
	case "clamp":
		m.Clamp = v != 0
	case "lower":
		if !finite(v) || v > m.Upper {
			return bounds(name, v)
		}
		m.Lower = v
	case "upper":
		if !finite(v) || v < m.Lower {
			return bounds(name, v)
		}
		m.Upper = v
	default:
		return unknown(name)
	}
	return nil
}
