// Package export renders recorded curves and sample profiles to HTML, PNG
// and SVG files.
package export

import (
	"github.com/san-kum/probesim/internal/recorder"
	"github.com/san-kum/probesim/internal/scan"
)

type Point struct{ X, Y float64 }

// Series is one named polyline.
type Series struct {
	Name   string
	Points []Point
}

// Axis selects the abscissa of a recorded curve.
type Axis int

const (
	// ByPosition plots value against scan position (profile logs).
	ByPosition Axis = iota
	// ByZ plots value against tip-sample distance (force curves).
	ByZ
)

func (a Axis) Label() string {
	if a == ByZ {
		return "distance"
	}
	return "position"
}

// AxisFor picks ByZ when the records carry a backward branch.
func AxisFor(records []recorder.Record) Axis {
	for _, r := range records {
		if r.Branch == recorder.Backward {
			return ByZ
		}
	}
	return ByPosition
}

// Curves splits records into one series per branch, dropping empty ones.
func Curves(records []recorder.Record, axis Axis) []Series {
	var out []Series
	for _, b := range []recorder.Branch{recorder.Forward, recorder.Backward} {
		rs := recorder.Filter(records, b)
		if len(rs) == 0 {
			continue
		}
		s := Series{Name: b.String(), Points: make([]Point, len(rs))}
		for i, r := range rs {
			x := r.Position
			if axis == ByZ {
				x = r.Z
			}
			s.Points[i] = Point{X: x, Y: r.Value}
		}
		out = append(out, s)
	}
	return out
}

// ProfileSeries is channel c against sample index.
func ProfileSeries(p *scan.Profile, c scan.Channel) Series {
	s := Series{Name: c.String(), Points: make([]Point, p.Len())}
	for i := range s.Points {
		s.Points[i] = Point{X: float64(i), Y: p.At(c, i)}
	}
	return s
}

// Bounds returns the extent of every point in series.
func Bounds(series []Series) (minX, maxX, minY, maxY float64, ok bool) {
	for _, s := range series {
		for _, p := range s.Points {
			if !ok {
				minX, maxX, minY, maxY, ok = p.X, p.X, p.Y, p.Y, true
				continue
			}
			minX = min(minX, p.X)
			maxX = max(maxX, p.X)
			minY = min(minY, p.Y)
			maxY = max(maxY, p.Y)
		}
	}
	return minX, maxX, minY, maxY, ok
}
