// Package instrument configures the shared scan engine as each of the
// supported microscopes.
package instrument

import (
	"fmt"
	"sort"

	"github.com/san-kum/probesim/internal/recorder"
	"github.com/san-kum/probesim/internal/sample"
	"github.com/san-kum/probesim/internal/scan"
	"github.com/san-kum/probesim/internal/tip"
)

// Instrument is a named factory for engine setups.
type Instrument struct {
	Name        string
	Description string
	setup       func(seed int64) scan.Setup
}

type Registry struct {
	instruments map[string]Instrument
}

func NewRegistry() *Registry {
	r := &Registry{instruments: make(map[string]Instrument)}

	r.add("afm", "contact-mode AFM: indentation of a soft matrix with hard inclusions",
		func(seed int64) scan.Setup {
			return scan.Setup{
				Length:    1000,
				Seed:      seed,
				Cycle:     hopping(0.02),
				Generator: sample.NewInclusions(),
				Tip:       tip.NewIndentation(),
			}
		})
	r.add("softmeka", "nanomechanical force-distance curves with adhesion and hysteresis",
		func(seed int64) scan.Setup {
			return scan.Setup{
				Length: 1000,
				Seed:   seed,
				Cycle: scan.CycleConfig{
					Table:     scan.Oscillating,
					Increment: 0.02,
					ScanRate:  0.5,
					Mode:      scan.HopContinuous,
				},
				Generator: sample.NewInclusions(),
				Tip:       tip.NewForceCurve(),
				Recorder:  recorder.Options{MinPoints: 10, DoubleBuffered: true},
			}
		})
	r.add("softpfm", "piezoresponse amplitude over ferroelectric domains",
		func(seed int64) scan.Setup {
			return scan.Setup{
				Length:    1200,
				Seed:      seed,
				Cycle:     continuous(),
				Generator: sample.NewDomains(),
				Tip:       tip.NewChannel(tip.Piezo),
			}
		})
	r.add("mfm", "lift-mode magnetic phase over magnetic domains",
		func(seed int64) scan.Setup {
			m := tip.NewChannel(tip.Magnetic)
			m.MeasureLift = 5
			return scan.Setup{
				Length:    1200,
				Seed:      seed,
				Cycle:     continuous(),
				Generator: sample.NewDomains(),
				Tip:       m,
			}
		})
	r.add("softsthm", "scanning thermal microscopy: heat flow into a composite",
		func(seed int64) scan.Setup {
			return scan.Setup{
				Length:    1000,
				Seed:      seed,
				Cycle:     continuous(),
				Generator: sample.NewThermal(),
				Tip:       tip.NewChannel(tip.HeatFlow),
			}
		})
	r.add("resiscope", "resistance mapping over eight decades of a material stack",
		func(seed int64) scan.Setup {
			return scan.Setup{
				Length:    1000,
				Seed:      seed,
				Cycle:     hopping(0.04),
				Generator: sample.NewBands(),
				Tip:       tip.NewResistance(false),
			}
		})
	r.add("cafm", "conductive AFM limited to 10^6..10^10 ohm",
		func(seed int64) scan.Setup {
			return scan.Setup{
				Length:    1000,
				Seed:      seed,
				Cycle:     hopping(0.04),
				Generator: sample.NewBands(),
				Tip:       tip.NewResistance(true),
			}
		})
	r.add("kpfm", "Kelvin probe surface potential of a polycrystalline film",
		func(seed int64) scan.Setup {
			return scan.Setup{
				Length:    1000,
				Seed:      seed,
				Cycle:     hopping(0.04),
				Generator: sample.NewGrains(),
				Tip:       tip.NewPotential(seed),
			}
		})

	return r
}

func (r *Registry) add(name, desc string, fn func(int64) scan.Setup) {
	r.instruments[name] = Instrument{Name: name, Description: desc, setup: fn}
}

// hopping is the five-state cycle that hops 5 samples per wrap.
func hopping(increment float64) scan.CycleConfig {
	return scan.CycleConfig{
		Table:     scan.Canonical,
		Increment: increment,
		Hop:       5,
		Mode:      scan.HopDiscrete,
	}
}

func continuous() scan.CycleConfig {
	return scan.CycleConfig{
		Table:     scan.Reduced,
		Increment: 0.05,
		ScanRate:  0.5,
		Mode:      scan.HopContinuous,
	}
}

// Setup returns a fresh setup for the named instrument.
func (r *Registry) Setup(name string, seed int64) (scan.Setup, error) {
	in, ok := r.instruments[name]
	if !ok {
		return scan.Setup{}, fmt.Errorf("unknown instrument: %s", name)
	}
	s := in.setup(seed)
	s.Name = name
	return s, nil
}

// Engine builds and initialises an engine for the named instrument.
func (r *Registry) Engine(name string, seed int64) (*scan.Engine, error) {
	s, err := r.Setup(name, seed)
	if err != nil {
		return nil, err
	}
	e, err := scan.New(s)
	if err != nil {
		return nil, fmt.Errorf("instrument %s: %w", name, err)
	}
	e.Init()
	return e, nil
}

func (r *Registry) Get(name string) (Instrument, bool) {
	in, ok := r.instruments[name]
	return in, ok
}

func (r *Registry) Describe(name string) (string, error) {
	in, ok := r.instruments[name]
	if !ok {
		return "", fmt.Errorf("unknown instrument: %s", name)
	}
	return in.Description, nil
}

// List returns the instrument names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.instruments))
	for name := range r.instruments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
