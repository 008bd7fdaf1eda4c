package tip

import (
	"fmt"
	"math"

	"github.com/san-kum/probesim/internal/scan"
)

// ChannelKind selects the transform a Channel model applies.
type ChannelKind int

const (
	// HeatFlow is scanning thermal microscopy: heat flows from a hot tip
	// through the local conductance into the sample.
	HeatFlow ChannelKind = iota
	// Piezo is piezoresponse: the drive voltage excites an amplitude whose
	// sign follows the domain polarity.
	Piezo
	// Magnetic is lift-mode magnetic force: the phase shift follows the
	// domain polarity.
	Magnetic
)

func (k ChannelKind) String() string {
	switch k {
	case HeatFlow:
		return "heat_flow"
	case Piezo:
		return "piezo"
	case Magnetic:
		return "magnetic"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Channel is the read, gain, unit pattern shared by the thermal, piezo and
// magnetic instruments. The reported signal is clamped to ±SignalCap.
type Channel struct {
	Motion
	Kind              ChannelKind
	Contrast          float64
	TipTemperature    float64 // K
	SampleTemperature float64 // K
	Conductance       float64 // µW per K at unit conductivity
	MinConductivity   float64
	Drive             float64 // V
	D33               float64
	SignalCap         float64
}

func NewChannel(kind ChannelKind) *Channel {
	return &Channel{
		Motion:            Motion{Lift: 20, RetractFraction: 1},
		Kind:              kind,
		Contrast:          1,
		TipTemperature:    350,
		SampleTemperature: 295,
		Conductance:       0.01,
		MinConductivity:   0.01,
		Drive:             2,
		D33:               0.5,
		SignalCap:         1.5,
	}
}

// Source is the profile channel the model reads.
func (m *Channel) Source() scan.Channel {
	if m.Kind == HeatFlow {
		return scan.Thermal
	}
	return scan.Polarity
}

// Quantity is the physical unit of the reported signal.
func (m *Channel) Quantity() scan.Quantity {
	switch m.Kind {
	case HeatFlow:
		return scan.QuantityHeatFlow
	case Piezo:
		return scan.QuantityAmplitude
	}
	return scan.QuantityPhaseShift
}

// Signal transforms a raw channel value into the unclamped signal.
func (m *Channel) Signal(raw float64) float64 {
	switch m.Kind {
	case HeatFlow:
		resistance := 1 / math.Max(raw, m.MinConductivity)
		dT := m.TipTemperature - m.SampleTemperature
		return dT / resistance * m.Conductance * m.Contrast
	case Piezo:
		return raw * m.D33 * m.Drive * m.Contrast
	}
	return raw * m.Contrast
}

func (m *Channel) Compute(p *scan.Profile, x float64, c scan.CycleState) scan.TipState {
	surface := p.Sample(scan.Height, x)
	raw := p.Sample(m.Source(), x)
	v, sat := Clamp(m.Signal(raw), -m.SignalCap, m.SignalCap)
	contact := c.State == scan.Measure

	return scan.TipState{
		Height:    m.Height(surface, c, 0),
		Surface:   surface,
		InContact: contact,
		Phase:     c.State,
		Record:    contact,
		Readout: scan.Readout{
			Quantity:  m.Quantity(),
			Value:     v,
			Raw:       raw,
			Z:         surface,
			Saturated: sat,
		},
	}
}

func (m *Channel) GetParams() map[string]float64 {
	out := map[string]float64{"contrast": m.Contrast}
	switch m.Kind {
	case HeatFlow:
		out["tip_temperature"] = m.TipTemperature
		out["sample_temperature"] = m.SampleTemperature
	case Piezo:
		out["drive"] = m.Drive
	case Magnetic:
		out["measure_lift"] = m.MeasureLift
	}
	m.params(out)
	return out
}

func (m *Channel) SetParam(name string, v float64) error {
	if ok, err := m.setParam(name, v); ok {
		return err
	}
	if _, ok := m.GetParams()[name]; !ok {
		return unknown(name)
	}
	if !finite(v) {
		return bounds(name, v)
	}
	switch name {
	case "contrast":
		m.Contrast = v
	case "tip_temperature":
		if v < 0 {
			return bounds(name, v)
		}
		m.TipTemperature = v
	case "sample_temperature":
		if v < 0 {
			return bounds(name, v)
		}
		m.SampleTemperature = v
	case "drive":
		m.Drive = v
	case "measure_lift":
		if v < 0 {
			return bounds(name, v)
		}
		m.MeasureLift = v
	}
	return nil
}
