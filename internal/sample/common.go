package sample

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/probesim/internal/scan"
)

// addNoise perturbs height by a uniform amount in [-amp, amp].
func addNoise(h []float64, amp float64, rng *rand.Rand) {
	if amp <= 0 {
		return
	}
	for i := range h {
		h[i] += (rng.Float64()*2 - 1) * amp
	}
}

// runLengths fills out with held values: pick a level, hold it for a random
// run in [minRun, maxRun], repeat.
func runLengths(out []float64, minRun, maxRun int, rng *rand.Rand, level func(prev float64, first bool) float64) {
	if minRun < 1 {
		minRun = 1
	}
	if maxRun < minRun {
		maxRun = minRun
	}
	v := 0.0
	first := true
	for i := 0; i < len(out); {
		v = level(v, first)
		first = false
		run := minRun + rng.Intn(maxRun-minRun+1)
		for j := 0; j < run && i < len(out); j++ {
			out[i] = v
			i++
		}
	}
}

// threshold is the level a unit wave must exceed to cover the given
// fraction of its period.
func threshold(density float64) float64 {
	return 1 - 2*density
}

func nonNegative(name string, v float64) error {
	if v < 0 || !finite(v) {
		return fmt.Errorf("%w: %s must be non-negative, got %g", scan.ErrParameterBounds, name, v)
	}
	return nil
}

func positive(name string, v float64) error {
	if v <= 0 || !finite(v) {
		return fmt.Errorf("%w: %s must be positive, got %g", scan.ErrParameterBounds, name, v)
	}
	return nil
}

func fraction(name string, v float64) error {
	if v < 0 || v > 1 || !finite(v) {
		return fmt.Errorf("%w: %s must lie in [0,1], got %g", scan.ErrParameterBounds, name, v)
	}
	return nil
}

// anyFinite accepts every real value.
func anyFinite(name string, v float64) error {
	if !finite(v) {
		return fmt.Errorf("%w: %s must be finite, got %g", scan.ErrParameterBounds, name, v)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func unknown(name string) error {
	return fmt.Errorf("%w: %s", scan.ErrUnknownParam, name)
}
