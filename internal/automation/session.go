// Package automation runs instruments headlessly: single sessions, YAML
// scenarios, parameter sweeps and seed ensembles.
package automation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/probesim/internal/config"
	"github.com/san-kum/probesim/internal/instrument"
	"github.com/san-kum/probesim/internal/metrics"
	"github.com/san-kum/probesim/internal/recorder"
	"github.com/san-kum/probesim/internal/scan"
	"github.com/san-kum/probesim/internal/storage"
)

// Session is one configured engine with its metrics.
type Session struct {
	Config  *config.Config
	Engine  *scan.Engine
	Metrics []metrics.Metric
}

// Start builds the configured instrument and applies its parameters.
func Start(reg *instrument.Registry, cfg *config.Config) (*Session, error) {
	s, err := reg.Setup(cfg.Instrument, cfg.Seed)
	if err != nil {
		return nil, err
	}
	cfg.Apply(&s)

	e, err := scan.New(s)
	if err != nil {
		return nil, fmt.Errorf("instrument %s: %w", cfg.Instrument, err)
	}
	e.Init()
	if err := cfg.ApplyParams(e); err != nil {
		e.Dispose()
		return nil, err
	}
	return &Session{Config: cfg, Engine: e, Metrics: metrics.Defaults()}, nil
}

// Run drives frames without pacing and returns every recorded tick, the
// final profile and the metric values.
func (s *Session) Run(ctx context.Context, frames int) (*storage.Run, error) {
	var records []recorder.Record
	render := scan.RenderFunc(func(snap scan.Snapshot, _ *scan.Profile) error {
		for _, m := range s.Metrics {
			m.Observe(snap)
		}
		if snap.Tip.Record {
			records = append(records, snap.Record())
		}
		return nil
	})

	slog.Debug("session start", "instrument", s.Config.Instrument, "frames", frames, "seed", s.Config.Seed)
	if err := scan.NewRunner(s.Engine, render, s.Config.FPS).RunFrames(ctx, frames); err != nil {
		return nil, err
	}

	p := s.Engine.Profile()
	run := &storage.Run{
		Meta: storage.RunMetadata{
			Instrument: s.Config.Instrument,
			Seed:       s.Config.Seed,
			Length:     p.Len(),
			Frames:     frames,
			Speed:      s.Engine.Speed(),
			Params:     s.Engine.Params(),
			Metrics:    metrics.Collect(s.Metrics),
		},
		Records: records,
		Profile: p.Clone(),
	}
	slog.Debug("session done", "instrument", s.Config.Instrument, "records", len(records))
	return run, nil
}

func (s *Session) Close() { s.Engine.Dispose() }

// RunOnce starts, runs and closes a session.
func RunOnce(ctx context.Context, reg *instrument.Registry, cfg *config.Config, frames int) (*storage.Run, error) {
	s, err := Start(reg, cfg)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Run(ctx, frames)
}
