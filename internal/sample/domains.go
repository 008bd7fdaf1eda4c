package sample

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/probesim/internal/scan"
)

// Domains is a ferroic film of alternating ±1 polarity domains with random
// widths, used by the piezoresponse and magnetic instruments.
type Domains struct {
	Width float64 // mean domain width in samples
	Noise float64
}

func NewDomains() *Domains {
	return &Domains{Width: 120}
}

func (g *Domains) Generate(n int, rng *rand.Rand) *scan.Profile {
	p := scan.NewProfile(n, scan.Polarity)
	h := p.Values(scan.Height)
	pol := p.Values(scan.Polarity)

	w := int(math.Round(g.Width))
	runLengths(pol, w/2, w+w/2, rng, func(prev float64, first bool) float64 {
		if first {
			if rng.Intn(2) == 0 {
				return -1
			}
			return 1
		}
		return -prev
	})

	for i := range h {
		x := float64(i)
		h[i] = math.Sin(x*0.01) + 0.5*math.Cos(x*0.037)
	}
	addNoise(h, g.Noise, rng)
	return p
}

func (g *Domains) GetParams() map[string]float64 {
	return map[string]float64{"width": g.Width, "noise": g.Noise}
}

func (g *Domains) SetParam(name string, v float64) error {
	switch name {
	case "width":
		if v < 2 || !finite(v) {
			return fmt.Errorf("%w: width must be finite and at least 2, got %g", scan.ErrParameterBounds, v)
		}
		g.Width = v
	case "noise":
		if err := nonNegative(name, v); err != nil {
			return err
		}
		g.Noise = v
	default:
		return unknown(name)
	}
	return nil
}
