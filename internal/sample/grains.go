package sample

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/probesim/internal/scan"
)

// Grains is a polycrystalline surface: flat potential plateaus separated by
// grain boundaries at irregular spacing.
type Grains struct {
	GrainSize float64 // longest grain in samples; the shortest is half of it
	SpreadMV  float64 // grain potentials are drawn from [-SpreadMV, SpreadMV]
	Groove    float64 // depth of the boundary groove
	Noise     float64
}

func NewGrains() *Grains {
	return &Grains{GrainSize: 80, SpreadMV: 150, Groove: 2}
}

func (g *Grains) Generate(n int, rng *rand.Rand) *scan.Profile {
	p := scan.NewProfile(n, scan.Potential)
	h := p.Values(scan.Height)
	v := p.Values(scan.Potential)

	maxRun := int(math.Round(g.GrainSize))
	runLengths(v, maxRun/2, maxRun, rng, func(_ float64, _ bool) float64 {
		return math.Round((rng.Float64()*2 - 1) * g.SpreadMV)
	})

	for i := range h {
		h[i] = 1.5 * math.Sin(float64(i)*0.015)
	}
	for i := 1; i < n; i++ {
		if v[i] == v[i-1] {
			continue
		}
		for j := max(i-2, 0); j <= min(i+2, n-1); j++ {
			h[j] -= g.Groove * (1 - math.Abs(float64(j-i))/3)
		}
	}
	addNoise(h, g.Noise, rng)
	return p
}

func (g *Grains) GetParams() map[string]float64 {
	return map[string]float64{
		"grain_size": g.GrainSize,
		"spread":     g.SpreadMV,
		"groove":     g.Groove,
		"noise":      g.Noise,
	}
}

func (g *Grains) SetParam(name string, v float64) error {
	switch name {
	case "grain_size":
		if v < 2 || !finite(v) {
			return fmt.Errorf("%w: grain_size must be finite and at least 2, got %g", scan.ErrParameterBounds, v)
		}
		g.GrainSize = v
	case "spread":
		if err := nonNegative(name, v); err != nil {
			return err
		}
		g.SpreadMV = v
	case "groove":
		if err := anyFinite(name, v); err != nil {
			return err
		}
		g.Groove = v
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
