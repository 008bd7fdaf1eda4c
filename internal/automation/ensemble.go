package automation

import (
	"context"
	"log/slog"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/probesim/internal/analysis"
	"github.com/san-kum/probesim/internal/config"
	"github.com/san-kum/probesim/internal/instrument"
)

// EnsembleConfig repeats one instrument over freshly drawn sample seeds.
type EnsembleConfig struct {
	Instrument string
	Params     map[string]float64
	NumTrials  int
	Frames     int
	Seed       int64 // seeds the seed sequence; zero uses the clock
	Workers    int   // concurrent trials; zero uses every CPU
}

// EnsembleResult is the metric set of one trial.
type EnsembleResult struct {
	TrialID int
	Seed    int64
	Metrics map[string]float64
}

// RunEnsemble draws all trial seeds up front, then runs the trials
// concurrently on at most Workers goroutines. Results keep trial order.
func RunEnsemble(ctx context.Context, ec *EnsembleConfig, reg *instrument.Registry) ([]EnsembleResult, error) {
	rng := rand.New(rand.NewSource(ec.Seed))
	if ec.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	seeds := make([]int64, ec.NumTrials)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	workers := ec.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]EnsembleResult, ec.NumTrials)
	errs := make([]error, ec.NumTrials)
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	var done atomic.Int64
	for trial := 0; trial < ec.NumTrials; trial++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			cfg := config.DefaultConfig()
			cfg.Instrument = ec.Instrument
			cfg.Seed = seeds[idx]
			for k, v := range ec.Params {
				cfg.SetParam(k, v)
			}

			run, err := RunOnce(ctx, reg, cfg, ec.Frames)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = EnsembleResult{TrialID: idx, Seed: cfg.Seed, Metrics: run.Meta.Metrics}

			if n := done.Add(1); n%10 == 0 {
				slog.Info("ensemble progress", "done", n, "of", ec.NumTrials)
			}
		}(trial)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// EnsembleStats summarises one metric across all trials.
func EnsembleStats(results []EnsembleResult, metric string) analysis.Stats {
	vals := make([]float64, 0, len(results))
	for _, r := range results {
		if v, ok := r.Metrics[metric]; ok {
			vals = append(vals, v)
		}
	}
	return analysis.Describe(vals)
}
