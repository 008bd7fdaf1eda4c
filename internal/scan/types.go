package scan

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/probesim/internal/recorder"
)

// Generator builds a complete sample profile. It must overwrite everything
// on each call; rng is reseeded by the engine before every generation.
type Generator interface {
	Generate(n int, rng *rand.Rand) *Profile
}

// TipModel derives the tip state from the profile at scan position x.
type TipModel interface {
	Compute(p *Profile, x float64, c CycleState) TipState
}

// Preparer is implemented by tip models that precompute per-profile data.
// The engine calls Prepare after every regeneration.
type Preparer interface {
	Prepare(p *Profile)
}

// Configurable exposes named numeric parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Renderer consumes one frame. It must not mutate the snapshot or profile.
type Renderer interface {
	Render(s Snapshot, p *Profile) error
}

// Quantity names the physical meaning of a readout value.
type Quantity int

const (
	QuantityHeight Quantity = iota
	QuantityDeformation
	QuantityForce
	QuantityResistanceLog
	QuantityPotential
	QuantityHeatFlow
	QuantityAmplitude
	QuantityPhaseShift
)

func (q Quantity) String() string {
	switch q {
	case QuantityHeight:
		return "height"
	case QuantityDeformation:
		return "deformation"
	case QuantityForce:
		return "force"
	case QuantityResistanceLog:
		return "resistance"
	case QuantityPotential:
		return "potential"
	case QuantityHeatFlow:
		return "heat_flow"
	case QuantityAmplitude:
		return "amplitude"
	case QuantityPhaseShift:
		return "phase_shift"
	}
	return fmt.Sprintf("quantity(%d)", int(q))
}

// Readout is the derived physical quantity of one tick.
type Readout struct {
	Quantity  Quantity
	Value     float64 // clamped to its display range
	Raw       float64 // profile property the value was derived from
	Z         float64 // abscissa stored with the value when recorded
	Saturated bool
}

// TipState is the tip model's output for one tick.
type TipState struct {
	Height    float64
	Surface   float64
	InContact bool
	Phase     Phase
	Branch    recorder.Branch
	Record    bool
	Readout   Readout
}

// Snapshot is the per-frame state handed to renderers.
type Snapshot struct {
	Tick       int
	X          float64
	Index      int
	CyclePhase float64
	Scanning   bool
	Tip        TipState
	Events     Events
}

// Record is the recorder entry for this frame.
func (s Snapshot) Record() recorder.Record {
	return recorder.Record{
		Position: s.X,
		Z:        s.Tip.Readout.Z,
		Value:    s.Tip.Readout.Value,
		Branch:   s.Tip.Branch,
	}
}
