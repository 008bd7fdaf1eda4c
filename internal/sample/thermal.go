package sample

import (
	"math"
	"math/rand"

	"github.com/san-kum/probesim/internal/scan"
)

// Thermal is a composite with a conductive line, an insulating polymer strip
// and periodic embedded particles.
type Thermal struct {
	Conductivity float64 // matrix conductivity
	ParticleK    float64
	Density      float64 // particle wave threshold is 1-2*Density
	Period       float64
	Noise        float64
}

// Relative conductivity of the fixed regions.
const (
	lineConductivity    = 3.0
	polymerConductivity = 0.3
)

func NewThermal() *Thermal {
	return &Thermal{Conductivity: 1.0, ParticleK: 5.0, Density: 0.1, Period: 150}
}

func (g *Thermal) Generate(n int, rng *rand.Rand) *scan.Profile {
	p := scan.NewProfile(n, scan.Thermal)
	h := p.Values(scan.Height)
	k := p.Values(scan.Thermal)
	thr := threshold(g.Density)

	for i := range h {
		x := float64(i)
		f := x / float64(n)
		h[i] = 3 * math.Sin(x*0.015)

		switch {
		case f >= 0.20 && f < 0.35:
			k[i] = lineConductivity
			h[i] += 1
		case f >= 0.60 && f < 0.70:
			k[i] = polymerConductivity
			h[i] -= 1
		default:
			k[i] = g.Conductivity
			c := math.Cos(x * 2 * math.Pi / g.Period)
			if c > thr {
				k[i] = g.ParticleK
				h[i] += 2 * (c - thr) / (1 - thr)
			}
		}
	}
	addNoise(h, g.Noise, rng)
	return p
}

func (g *Thermal) GetParams() map[string]float64 {
	return map[string]float64{
		"conductivity": g.Conductivity,
		"particle_k":   g.ParticleK,
		"density":      g.Density,
		"period":       g.Period,
		"noise":        g.Noise,
	}
}

func (g *Thermal) SetParam(name string, v float64) error {
	switch name {
	case "conductivity":
		if err := nonNegative(name, v); err != nil {
			return err
		}
		g.Conductivity = v
	case "particle_k":
		if err := nonNegative(name, v); err != nil {
			return err
		}
		g.ParticleK = v
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
