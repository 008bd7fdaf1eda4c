// Package recorder accumulates measurement records for curve plotting.
//
// A [Buffer] keeps a live buffer that grows every recordable tick and, for
// double-buffered instruments, a last-completed buffer that stays stable
// while the live one refills.
package recorder

import "fmt"

// Branch tags the direction a record was taken in.
type Branch int

const (
	// Forward is the approach, loading or trace branch.
	Forward Branch = iota
	// Backward is the retract, unloading or retrace branch.
	Backward
)

func (b Branch) String() string {
	if b == Backward {
		return "backward"
	}
	return "forward"
}

func ParseBranch(s string) (Branch, error) {
	switch s {
	case "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	}
	return Forward, fmt.Errorf("unknown branch: %q", s)
}

// Record is one captured data point.
type Record struct {
	Position float64 `json:"position"`
	Z        float64 `json:"z"`
	Value    float64 `json:"value"`
	Branch   Branch  `json:"branch"`
}

type Options struct {
	// MinPoints is the live length a commit must exceed to replace Last.
	MinPoints int
	// DoubleBuffered instruments commit at every cycle wrap.
	DoubleBuffered bool
	// Capacity bounds the live buffer; zero means unbounded.
	Capacity int
}

type Buffer struct {
	opts    Options
	live    []Record
	last    []Record
	commits int
}

func New(opts Options) *Buffer {
	return &Buffer{
		opts: opts,
		live: make([]Record, 0, max(opts.Capacity, 16)),
	}
}

func (b *Buffer) Options() Options { return b.opts }

// Append adds r to the live buffer, dropping the oldest record when full.
func (b *Buffer) Append(r Record) {
	if b.opts.Capacity > 0 && len(b.live) >= b.opts.Capacity {
		b.live = b.live[1:]
	}
	b.live = append(b.live, r)
}

// Commit copies the live buffer into Last when it holds more than MinPoints
// records, otherwise the stale Last is kept. The live buffer is cleared
// either way. It reports whether Last was replaced.
func (b *Buffer) Commit() bool {
	replaced := false
	if len(b.live) > b.opts.MinPoints {
		b.last = append(b.last[:0], b.live...)
		b.commits++
		replaced = true
	}
	b.live = b.live[:0]
	return replaced
}

// ResetLive clears the live buffer at the start of a new scan line.
func (b *Buffer) ResetLive() { b.live = b.live[:0] }

// Reset clears both buffers.
func (b *Buffer) Reset() {
	b.live = b.live[:0]
	b.last = nil
	b.commits = 0
}

func (b *Buffer) Len() int     { return len(b.live) }
func (b *Buffer) Commits() int { return b.commits }

func (b *Buffer) Live() []Record { return clone(b.live) }
func (b *Buffer) Last() []Record { return clone(b.last) }

// Curve is what a plot should show: the last completed buffer for
// double-buffered instruments once one exists, the live buffer otherwise.
func (b *Buffer) Curve() []Record {
	if b.opts.DoubleBuffered && len(b.last) > 0 {
		return clone(b.last)
	}
	return clone(b.live)
}

// Filter returns the records of Curve taken on the given branch.
func (b *Buffer) Filter(branch Branch) []Record {
	return Filter(b.Curve(), branch)
}

func Filter(records []Record, branch Branch) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Branch == branch {
			out = append(out, r)
		}
	}
	return out
}

// Values extracts the value column.
func Values(records []Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Value
	}
	return out
}

func clone(rs []Record) []Record {
	out := make([]Record, len(rs))
	copy(out, rs)
	return out
}
