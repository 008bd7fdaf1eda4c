package tip

import (
	"math/rand"

	"github.com/san-kum/probesim/internal/scan"
)

// Resolution selects the lateral resolution of the potential reading.
type Resolution int

const (
	High Resolution = iota
	Low
)

func (r Resolution) String() string {
	if r == Low {
		return "low"
	}
	return "high"
}

// Potential reads the surface potential. At Low resolution the profile is
// box-blurred; the blurred signal is cached until the profile, the mode or
// the radius changes.
type Potential struct {
	Motion
	Resolution Resolution
	BlurRadius int
	NoiseMV    float64

	rng    *rand.Rand
	cache  []float64
	source *scan.Profile
	mode   Resolution
	radius int
}

func NewPotential(seed int64) *Potential {
	return &Potential{
		Motion:     DefaultMotion(),
		Resolution: Low,
		BlurRadius: 40,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// BoxBlur averages v over [i-r, i+r], clipped to the slice.
func BoxBlur(v []float64, r int) []float64 {
	out := make([]float64, len(v))
	if r <= 0 {
		copy(out, v)
		return out
	}
	for i := range v {
		lo, hi := max(i-r, 0), min(i+r, len(v)-1)
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += v[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// Prepare drops the cached signal after a regeneration.
func (m *Potential) Prepare(p *scan.Profile) {
	m.source = nil
	m.signal(p)
}

// Signal returns the potential the instrument resolves at every index.
func (m *Potential) Signal(p *scan.Profile) []float64 { return m.signal(p) }

func (m *Potential) signal(p *scan.Profile) []float64 {
	if m.source == p && m.mode == m.Resolution && m.radius == m.BlurRadius {
		return m.cache
	}
	raw := p.Values(scan.Potential)
	if raw == nil {
		raw = make([]float64, p.Len())
	}
	if m.Resolution == Low {
		m.cache = BoxBlur(raw, m.BlurRadius)
	} else {
		m.cache = BoxBlur(raw, 0)
	}
	m.source, m.mode, m.radius = p, m.Resolution, m.BlurRadius
	return m.cache
}

// At is the resolved potential at index i, falling back to the first
// element out of range.
func (m *Potential) At(p *scan.Profile, i int) float64 {
	s := m.signal(p)
	if i < 0 || i >= len(s) {
		return s[0]
	}
	return s[i]
}

func (m *Potential) Compute(p *scan.Profile, x float64, c scan.CycleState) scan.TipState {
	surface := p.Sample(scan.Height, x)
	v := m.At(p, p.IndexOf(x))
	if m.NoiseMV > 0 && m.rng != nil {
		v += (m.rng.Float64()*2 - 1) * m.NoiseMV
	}
	contact := c.State == scan.Measure

	return scan.TipState{
		Height:    m.Height(surface, c, 0),
		Surface:   surface,
		InContact: contact,
		Phase:     c.State,
		Record:    contact,
		Readout: scan.Readout{
			Quantity: scan.QuantityPotential,
			Value:    v,
			Raw:      p.Sample(scan.Potential, x),
			Z:        surface,
		},
	}
}

func (m *Potential) GetParams() map[string]float64 {
	out := map[string]float64{
		"resolution":  float64(m.Resolution),
		"blur_radius": float64(m.BlurRadius),
		"noise_mv":    m.NoiseMV,
	}
	m.params(out)
	return out
}

func (m *Potential) SetParam(name string, v float64) error {
	if ok, err := m.setParam(name, v); ok {
		return err
	}
	switch name {
	case "resolution":
		if v != 0 && v != 1 {
			return bounds(name, v)
		}
		m.Resolution = Resolution(v)
	case "blur_radius":
		if v < 0 || !finite(v) {
			return bounds(name, v)
		}
		m.BlurRadius = int(v)
	case "noise_mv":
		if v < 0 || !finite(v) {
			return bounds(name, v)
		}
		m.NoiseMV = v
	default:
		return unknown(name)
	}
	return nil
}
