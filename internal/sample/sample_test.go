package sample

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/probesim/internal/scan"
)

type generator interface {
	scan.Generator
	scan.Configurable
}

func generators() map[string]generator {
	return map[string]generator{
		"inclusions": NewInclusions(),
		"bands":      NewBands(),
		"grains":     NewGrains(),
		"domains":    NewDomains(),
		"thermal":    NewThermal(),
	}
}

func TestGenerate_ExactLength(t *testing.T) {
	for name, g := range generators() {
		for _, n := range []int{1, 37, 800, 2000} {
			p := g.Generate(n, rand.New(rand.NewSource(1)))
			if p.Len() != n {
				t.Errorf("%s: Len() = %d, want %d", name, p.Len(), n)
			}
			for _, c := range p.Channels() {
				if len(p.Values(c)) != n {
					t.Errorf("%s: channel %s has %d values, want %d", name, c, len(p.Values(c)), n)
				}
			}
		}
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	for name, g := range generators() {
		a := g.Generate(1000, rand.New(rand.NewSource(42)))
		b := g.Generate(1000, rand.New(rand.NewSource(42)))
		for _, c := range a.Channels() {
			if diff := cmp.Diff(a.Values(c), b.Values(c)); diff != "" {
				t.Errorf("%s: channel %s differs on regeneration (-first +second):\n%s", name, c, diff)
			}
		}
	}
}

func TestGenerate_NoiseOnlyTouchesHeight(t *testing.T) {
	quiet := NewInclusions()
	noisy := NewInclusions()
	if err := noisy.SetParam("noise", 0.5); err != nil {
		t.Fatal(err)
	}

	a := quiet.Generate(1000, rand.New(rand.NewSource(3)))
	b := noisy.Generate(1000, rand.New(rand.NewSource(3)))

	if diff := cmp.Diff(a.Values(scan.Stiffness), b.Values(scan.Stiffness)); diff != "" {
		t.Errorf("noise changed stiffness labels:\n%s", diff)
	}
	for i := 0; i < 1000; i++ {
		d := math.Abs(a.At(scan.Height, i) - b.At(scan.Height, i))
		if d > 0.5 {
			t.Fatalf("height[%d] perturbed by %v, want at most 0.5", i, d)
		}
	}
}

func TestInclusions_ConstantMatrix(t *testing.T) {
	g := NewInclusions()
	g.Density = 0
	g.Stiffness = 0.3

	p := g.Generate(1000, rand.New(rand.NewSource(1)))
	for i, k := range p.Values(scan.Stiffness) {
		if k != 0.3 {
			t.Fatalf("stiffness[%d] = %v, want 0.3", i, k)
		}
	}
}

func TestInclusions_HardSpheres(t *testing.T) {
	g := NewInclusions()
	p := g.Generate(1200, rand.New(rand.NewSource(1)))

	hard := 0
	for _, k := range p.Values(scan.Stiffness) {
		switch k {
		case g.SphereK:
			hard++
		case g.Stiffness:
		default:
			t.Fatalf("unexpected stiffness %v", k)
		}
	}
	// sin exceeds 0.7 over (π - 2 asin 0.7) / 2π of each period.
	want := (math.Pi - 2*math.Asin(0.7)) / (2 * math.Pi)
	frac := float64(hard) / 1200
	if math.Abs(frac-want) > 0.02 {
		t.Errorf("hard fraction = %.3f, want about %.3f", frac, want)
	}
}

func TestBands_Decades(t *testing.T) {
	g := NewBands()
	p := g.Generate(1000, rand.New(rand.NewSource(1)))

	tests := []struct {
		index    int
		material string
		rlog     float64
	}{
		{0, "metal", 2},
		{249, "metal", 2},
		{250, "doped", 5},
		{600, "semiconductor", 8},
		{999, "oxide", 12},
	}
	for _, tt := range tests {
		if got := p.At(scan.ResistanceLog, tt.index); got != tt.rlog {
			t.Errorf("rlog[%d] = %v, want %v", tt.index, got, tt.rlog)
		}
		if got := g.Material(tt.index, 1000); got != tt.material {
			t.Errorf("Material(%d) = %s, want %s", tt.index, got, tt.material)
		}
	}
}

// plateaus returns the run lengths of consecutive equal values.
func plateaus(v []float64) []int {
	var runs []int
	start := 0
	for i := 1; i <= len(v); i++ {
		if i == len(v) || v[i] != v[start] {
			runs = append(runs, i-start)
			start = i
		}
	}
	return runs
}

func TestGrains_RunLengthStructure(t *testing.T) {
	g := NewGrains()
	p := g.Generate(2000, rand.New(rand.NewSource(9)))
	runs := plateaus(p.Values(scan.Potential))

	if len(runs) < 2000/int(g.GrainSize) {
		t.Fatalf("only %d plateaus for grain size %v", len(runs), g.GrainSize)
	}
	minRun := int(g.GrainSize) / 2
	// Adjacent grains can draw the same level, so a plateau may span several
	// runs; only the last one may be truncated short.
	for i, r := range runs[:len(runs)-1] {
		if r < minRun {
			t.Errorf("plateau %d has length %d, want at least %d", i, r, minRun)
		}
	}
	for _, v := range p.Values(scan.Potential) {
		if math.Abs(v) > g.SpreadMV {
			t.Fatalf("potential %v outside ±%v", v, g.SpreadMV)
		}
	}
}

func TestDomains_AlternatingPolarity(t *testing.T) {
	g := NewDomains()
	p := g.Generate(1500, rand.New(rand.NewSource(5)))
	pol := p.Values(scan.Polarity)

	for i, v := range pol {
		if v != 1 && v != -1 {
			t.Fatalf("polarity[%d] = %v", i, v)
		}
	}
	runs := plateaus(pol)
	for i, r := range runs[:len(runs)-1] {
		if r < int(g.Width)/2 || r > int(g.Width)+int(g.Width)/2 {
			t.Errorf("domain %d has width %d", i, r)
		}
	}
}

func TestThermal_Regions(t *testing.T) {
	g := NewThermal()
	p := g.Generate(1000, rand.New(rand.NewSource(1)))

	if got := p.At(scan.Thermal, 250); got != lineConductivity {
		t.Errorf("line conductivity = %v", got)
	}
	if got := p.At(scan.Thermal, 650); got != polymerConductivity {
		t.Errorf("polymer conductivity = %v", got)
	}
	if got := p.At(scan.Thermal, 0); got != g.ParticleK {
		t.Errorf("particle at origin = %v, want %v", got, g.ParticleK)
	}
}

func TestSetParam(t *testing.T) {
	tests := []struct {
		gen   string
		param string
		value float64
		want  error
	}{
		{"inclusions", "stiffness", 0.8, nil},
		{"inclusions", "stiffness", -1, scan.ErrParameterBounds},
		{"inclusions", "density", 1.5, scan.ErrParameterBounds},
		{"inclusions", "period", 0, scan.ErrParameterBounds},
		{"bands", "shift", 1, nil},
		{"grains", "grain_size", 1, scan.ErrParameterBounds},
		{"grains", "grain_size", 40, nil},
		{"grains", "grain_size", math.Inf(1), scan.ErrParameterBounds},
		{"grains", "groove", math.NaN(), scan.ErrParameterBounds},
		{"bands", "shift", math.NaN(), scan.ErrParameterBounds},
		{"bands", "roughness", math.Inf(-1), scan.ErrParameterBounds},
		{"inclusions", "sphere_height", math.NaN(), scan.ErrParameterBounds},
		{"domains", "width", math.NaN(), scan.ErrParameterBounds},
		{"domains", "width", 60, nil},
		{"thermal", "particle_k", 2, nil},
		{"thermal", "colour", 1, scan.ErrUnknownParam},
	}

	gens := generators()
	for _, tt := range tests {
		t.Run(tt.gen+"/"+tt.param, func(t *testing.T) {
			g := gens[tt.gen]
			err := g.SetParam(tt.param, tt.value)
			if !errors.Is(err, tt.want) {
				t.Fatalf("SetParam() error = %v, want %v", err, tt.want)
			}
			if err == nil && g.GetParams()[tt.param] != tt.value {
				t.Errorf("GetParams()[%s] = %v, want %v", tt.param, g.GetParams()[tt.param], tt.value)
			}
		})
	}
}
