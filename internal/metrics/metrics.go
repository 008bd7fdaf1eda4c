// Package metrics accumulates per-run summaries from engine snapshots.
package metrics

import "github.com/san-kum/probesim/internal/scan"

type Metric interface {
	Name() string
	Observe(s scan.Snapshot)
	Value() float64
	Reset()
}

// Defaults is the set recorded with every headless run.
func Defaults() []Metric {
	return []Metric{
		NewContactFraction(),
		NewSaturationRate(),
		NewMeanReadout(),
		NewPeakReadout(),
	}
}

// Collect reads every metric into a map keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
