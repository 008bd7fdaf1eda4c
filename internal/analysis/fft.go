package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// NextPow2 is the smallest power of two >= n.
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Spectrum removes the mean, zero-pads to a power of two and returns the
// magnitude of the positive-frequency bins. Bin i is i/len(padded) cycles
// per sample.
func Spectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := stat.Mean(data, nil)
	padded := make([]float64, NextPow2(len(data)))
	for i, v := range data {
		padded[i] = v - mean
	}

	bins := fft.FFTReal(padded)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// DominantPeriod is the period, in samples, of the strongest non-DC bin.
func DominantPeriod(data []float64) float64 {
	ps := Spectrum(data)
	if len(ps) < 2 {
		return 0
	}
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return float64(2*len(ps)) / float64(best)
}
