package metrics

import (
	"math"

	"github.com/san-kum/probesim/internal/scan"
)

// MeanReadout averages the recorded readout values.
type MeanReadout struct {
	name    string
	sum     float64
	samples int
}

func NewMeanReadout() *MeanReadout {
	return &MeanReadout{name: "mean_readout"}
}

func (m *MeanReadout) Name() string {
	return m.name
}

func (m *MeanReadout) Observe(s scan.Snapshot) {
	if !s.Tip.Record {
		return
	}
	m.sum += s.Tip.Readout.Value
	m.samples++
}

func (m *MeanReadout) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanReadout) Reset() {
	m.sum = 0
	m.samples = 0
}

// PeakReadout is the largest recorded readout magnitude.
type PeakReadout struct {
	name string
	peak float64
}

func NewPeakReadout() *PeakReadout {
	return &PeakReadout{name: "peak_readout"}
}

func (p *PeakReadout) Name() string {
	return p.name
}

func (p *PeakReadout) Observe(s scan.Snapshot) {
	if s.Tip.Record {
		p.peak = math.Max(p.peak, math.Abs(s.Tip.Readout.Value))
	}
}

func (p *PeakReadout) Value() float64 {
	return p.peak
}

func (p *PeakReadout) Reset() {
	p.peak = 0
}
