package sample

import (
	"math"
	"math/rand"

	"github.com/san-kum/probesim/internal/scan"
)

// Inclusions is a soft matrix with periodic hard spheres, the specimen of
// the indentation and force-curve instruments.
type Inclusions struct {
	Stiffness    float64 // matrix stiffness
	SphereK      float64 // inclusion stiffness
	Density      float64 // sphere wave threshold is 1-2*Density
	Period       float64 // sphere spacing in samples
	SphereHeight float64
	Noise        float64
}

func NewInclusions() *Inclusions {
	return &Inclusions{
		Stiffness:    0.5,
		SphereK:      4.0,
		Density:      0.15,
		Period:       120,
		SphereHeight: 4,
	}
}

func (g *Inclusions) Generate(n int, rng *rand.Rand) *scan.Profile {
	p := scan.NewProfile(n, scan.Stiffness)
	h := p.Values(scan.Height)
	k := p.Values(scan.Stiffness)
	thr := threshold(g.Density)

	for i := range h {
		x := float64(i)
		h[i] = 6*math.Sin(x*0.02) + 3*math.Cos(x*0.05)
		k[i] = g.Stiffness

		s := math.Sin(x * 2 * math.Pi / g.Period)
		if s > thr {
			k[i] = g.SphereK
			h[i] += g.SphereHeight * (s - thr) / (1 - thr)
		}
	}
	addNoise(h, g.Noise, rng)
	return p
}

func (g *Inclusions) GetParams() map[string]float64 {
	return map[string]float64{
		"stiffness":     g.Stiffness,
		"sphere_k":      g.SphereK,
		"density":       g.Density,
		"period":        g.Period,
		"sphere_height": g.SphereHeight,
		"noise":         g.Noise,
	}
}

func (g *Inclusions) SetParam(name string, v float64) error {
	switch name {
	case "stiffness":
		if err := nonNegative(name, v); err != nil {
			return err
		}
		g.Stiffness = v
	case "sphere_k":
		if err := nonNegative(name, v); err != nil {
			return err
		}
		g.SphereK = v
	case "density":
		if err := fraction(name, v); err != nil {
			return err
		}
		g.Density = v
	case "period":
		if err := positive(name, v); err != nil {
			return err
		}
		g.Period = v
	case "sphere_height":
		if err := anyFinite(name, v); err != nil {
			return err
		}
		g.SphereHeight = v
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
