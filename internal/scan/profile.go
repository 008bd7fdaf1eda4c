package scan

import (
	"fmt"
	"math"
	"sort"
)

// Channel identifies one per-position property of a sample.
type Channel int

const (
	Height Channel = iota
	Stiffness
	Conductivity
	ResistanceLog
	Potential
	Polarity
	Thermal
)

var channelNames = map[Channel]string{
	Height:        "height",
	Stiffness:     "stiffness",
	Conductivity:  "conductivity",
	ResistanceLog: "resistance_log",
	Potential:     "potential",
	Polarity:      "polarity",
	Thermal:       "thermal",
}

func (c Channel) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

// ParseChannel maps a channel name back to its Channel.
func ParseChannel(name string) (Channel, error) {
	for c, n := range channelNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown channel: %s", name)
}

// Neutral is the value At reports for a channel the profile does not carry.
func Neutral(c Channel) float64 {
	switch c {
	case Stiffness, Conductivity, Thermal:
		return 1.0
	case Polarity:
		return 1.0
	default:
		return 0.0
	}
}

// Profile is a fixed-length 1-D sample. Height is always present.
type Profile struct {
	n    int
	data map[Channel][]float64
}

// NewProfile allocates a zeroed profile of length n with a height channel
// plus the given property channels. A non-positive length is a programming
// error and panics.
func NewProfile(n int, channels ...Channel) *Profile {
	if n <= 0 {
		panic(fmt.Sprintf("scan: profile length must be positive, got %d", n))
	}
	p := &Profile{n: n, data: map[Channel][]float64{Height: make([]float64, n)}}
	for _, c := range channels {
		if _, ok := p.data[c]; !ok {
			p.data[c] = make([]float64, n)
		}
	}
	return p
}

func (p *Profile) Len() int { return p.n }

func (p *Profile) Has(c Channel) bool {
	_, ok := p.data[c]
	return ok
}

// Values returns the backing slice of a channel, nil when absent.
// Generators fill it; everyone else must treat it as read-only.
func (p *Profile) Values(c Channel) []float64 { return p.data[c] }

// Channels lists the carried channels in ascending order.
func (p *Profile) Channels() []Channel {
	out := make([]Channel, 0, len(p.data))
	for c := range p.data {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// At returns channel c at index i. Indices outside [0, Len) resolve to the
// first element; absent channels resolve to Neutral(c).
func (p *Profile) At(c Channel, i int) float64 {
	vals, ok := p.data[c]
	if !ok {
		return Neutral(c)
	}
	if i < 0 || i >= p.n {
		return vals[0]
	}
	return vals[i]
}

// IndexOf floors a continuous scan coordinate into a sample index.
func (p *Profile) IndexOf(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int(math.Floor(x))
}

// Sample is At(c, IndexOf(x)).
func (p *Profile) Sample(c Channel, x float64) float64 {
	return p.At(c, p.IndexOf(x))
}

func (p *Profile) Clone() *Profile {
	c := &Profile{n: p.n, data: make(map[Channel][]float64, len(p.data))}
	for ch, vals := range p.data {
		cp := make([]float64, len(vals))
		copy(cp, vals)
		c.data[ch] = cp
	}
	return c
}
