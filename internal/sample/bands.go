package sample

import (
	"math"
	"math/rand"

	"github.com/san-kum/probesim/internal/scan"
)

// Band is one material region spanning [Lo, Hi) as fractions of the
// profile length.
type Band struct {
	Name   string
	Lo, Hi float64
	RLog   float64 // log10 of the resistance in ohms
	Offset float64 // terrace height
}

// DefaultBands is the four-material stack: metal, doped, semiconductor, oxide.
var DefaultBands = []Band{
	{Name: "metal", Lo: 0.00, Hi: 0.25, RLog: 2, Offset: 4},
	{Name: "doped", Lo: 0.25, Hi: 0.50, RLog: 5, Offset: 2},
	{Name: "semiconductor", Lo: 0.50, Hi: 0.75, RLog: 8, Offset: 0},
	{Name: "oxide", Lo: 0.75, Hi: 1.00, RLog: 12, Offset: 6},
}

// Bands is a terraced stack of materials with sharp resistance boundaries.
type Bands struct {
	Bands     []Band
	Roughness float64 // sinusoid amplitude on top of the terraces
	Shift     float64 // decades added to every band
	Noise     float64
}

func NewBands() *Bands {
	bands := make([]Band, len(DefaultBands))
	copy(bands, DefaultBands)
	return &Bands{Bands: bands, Roughness: 2}
}

func (g *Bands) Generate(n int, rng *rand.Rand) *scan.Profile {
	p := scan.NewProfile(n, scan.ResistanceLog)
	h := p.Values(scan.Height)
	r := p.Values(scan.ResistanceLog)

	for i := range h {
		x := float64(i)
		b := g.bandAt(x / float64(n))
		h[i] = b.Offset + g.Roughness*math.Sin(x*0.03)
		r[i] = b.RLog + g.Shift
	}
	addNoise(h, g.Noise, rng)
	return p
}

// bandAt finds the band covering the fractional position f. Positions no
// band covers take the last band.
func (g *Bands) bandAt(f float64) Band {
	for _, b := range g.Bands {
		if f >= b.Lo && f < b.Hi {
			return b
		}
	}
	return g.Bands[len(g.Bands)-1]
}

// Material names the band covering sample index i of an n-sample profile.
func (g *Bands) Material(i, n int) string {
	return g.bandAt(float64(i) / float64(n)).Name
}

func (g *Bands) GetParams() map[string]float64 {
	return map[string]float64{
		"roughness": g.Roughness,
		"shift":     g.Shift,
		"noise":     g.Noise,
	}
}

func (g *Bands) SetParam(name string, v float64) error {
	switch name {
	case "roughness":
		if err := anyFinite(name, v); err != nil {
			return err
		}
		g.Roughness = v
	case "shift":
		if err := anyFinite(name, v); err != nil {
			return err
		}
		g.Shift = v
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
