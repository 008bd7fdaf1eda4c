package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RoughnessStats are the standard profile roughness parameters.
type RoughnessStats struct {
	Ra float64 // mean absolute deviation
	Rq float64 // root mean square deviation
	Rz float64 // peak to valley
}

func Roughness(h []float64) RoughnessStats {
	if len(h) == 0 {
		return RoughnessStats{}
	}
	mean, rq := stat.PopMeanStdDev(h, nil)
	ra := 0.0
	for _, v := range h {
		ra += math.Abs(v - mean)
	}
	return RoughnessStats{
		Ra: ra / float64(len(h)),
		Rq: rq,
		Rz: floats.Max(h) - floats.Min(h),
	}
}

// Stats summarises one channel or one recorded column.
type Stats struct {
	N    int
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

func Describe(v []float64) Stats {
	if len(v) == 0 {
		return Stats{}
	}
	mean, std := stat.MeanStdDev(v, nil)
	if len(v) == 1 {
		std = 0
	}
	return Stats{
		N:    len(v),
		Mean: mean,
		Std:  std,
		Min:  floats.Min(v),
		Max:  floats.Max(v),
	}
}
