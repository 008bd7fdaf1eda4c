package metrics

import "github.com/san-kum/probesim/internal/scan"

// ContactFraction is the share of ticks spent in contact.
type ContactFraction struct {
	name    string
	contact int
	samples int
}

func NewContactFraction() *ContactFraction {
	return &ContactFraction{name: "contact_fraction"}
}

func (c *ContactFraction) Name() string {
	return c.name
}

func (c *ContactFraction) Observe(s scan.Snapshot) {
	c.samples++
	if s.Tip.InContact {
		c.contact++
	}
}

func (c *ContactFraction) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.contact) / float64(c.samples)
}

func (c *ContactFraction) Reset() {
	c.contact = 0
	c.samples = 0
}

// SaturationRate is the share of recorded ticks whose readout was clamped.
type SaturationRate struct {
	name      string
	saturated int
	samples   int
}

func NewSaturationRate() *SaturationRate {
	return &SaturationRate{name: "saturation_rate"}
}

func (r *SaturationRate) Name() string {
	return r.name
}

func (r *SaturationRate) Observe(s scan.Snapshot) {
	if !s.Tip.Record {
		return
	}
	r.samples++
	if s.Tip.Readout.Saturated {
		r.saturated++
	}
}

func (r *SaturationRate) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.saturated) / float64(r.samples)
}

func (r *SaturationRate) Reset() {
	r.saturated = 0
	r.samples = 0
}
