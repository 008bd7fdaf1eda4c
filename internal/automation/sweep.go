package automation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/probesim/internal/analysis"
	"github.com/san-kum/probesim/internal/config"
	"github.com/san-kum/probesim/internal/instrument"
	"github.com/san-kum/probesim/internal/recorder"
)

// ParameterSweep runs one instrument across a range of parameter values.
type ParameterSweep struct {
	Instrument string
	ParamName  string
	ParamMin   float64
	ParamMax   float64
	NumSteps   int
	Frames     int
	Seed       int64
}

// SweepResult summarises the recorded readouts at one parameter value.
type SweepResult struct {
	ParamValue float64
	Readout    analysis.Stats
	Metrics    map[string]float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, reg *instrument.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := config.DefaultConfig()
		cfg.Instrument = sweep.Instrument
		cfg.Seed = sweep.Seed
		cfg.SetParam(sweep.ParamName, paramVal)

		run, err := RunOnce(ctx, reg, cfg, sweep.Frames)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Readout:    analysis.Describe(recorder.Values(run.Records)),
			Metrics:    run.Meta.Metrics,
		})

		slog.Debug("sweep", "step", i+1, "of", sweep.NumSteps, "param", sweep.ParamName, "value", paramVal)
	}

	return results, nil
}
