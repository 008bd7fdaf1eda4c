package analysis

import "math"

// Plateau is a run of values within tolerance of its first value,
// spanning [Start, End).
type Plateau struct {
	Start int
	End   int
	Value float64
}

func (p Plateau) Len() int { return p.End - p.Start }

// Plateaus splits v into maximal runs of values within tol of the run's
// first value.
func Plateaus(v []float64, tol float64) []Plateau {
	var out []Plateau
	if len(v) == 0 {
		return out
	}
	cur := Plateau{Start: 0, Value: v[0]}
	for i := 1; i < len(v); i++ {
		if math.Abs(v[i]-cur.Value) > tol {
			cur.End = i
			out = append(out, cur)
			cur = Plateau{Start: i, Value: v[i]}
		}
	}
	cur.End = len(v)
	return append(out, cur)
}

// Transitions counts the boundaries between plateaus.
func Transitions(v []float64, tol float64) int {
	n := len(Plateaus(v, tol))
	if n == 0 {
		return 0
	}
	return n - 1
}
