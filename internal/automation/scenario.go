package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/probesim/internal/config"
	"github.com/san-kum/probesim/internal/instrument"
	"github.com/san-kum/probesim/internal/storage"
)

// Scenario defines a scripted sequence of scans.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single scan in a scenario. Zero fields keep the preset
// or default value.
type ScenarioStep struct {
	Instrument string             `yaml:"instrument"`
	Preset     string             `yaml:"preset"`
	Frames     int                `yaml:"frames"`
	Seed       int64              `yaml:"seed"`
	Length     int                `yaml:"length"`
	Speed      float64            `yaml:"speed"`
	Params     map[string]float64 `yaml:"params"`
	Save       bool               `yaml:"save"`
}

// StepResult is one executed step. RunID is empty when the step was not saved.
type StepResult struct {
	Step  int
	RunID string
	Run   *storage.Run
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// Config resolves the step against its preset and the defaults.
func (st ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if st.Preset != "" {
		cfg = config.GetPreset(st.Instrument, st.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %s/%s", st.Instrument, st.Preset)
		}
	}
	cfg.Instrument = st.Instrument
	if st.Frames > 0 {
		cfg.Frames = st.Frames
	}
	if st.Seed != 0 {
		cfg.Seed = st.Seed
	}
	if st.Length > 0 {
		cfg.Length = st.Length
	}
	if st.Speed > 0 {
		cfg.Speed = st.Speed
	}
	for k, v := range st.Params {
		cfg.SetParam(k, v)
	}
	return cfg, nil
}

// RunScenario executes all steps in order. Steps marked save are written to
// store, which may be nil when no step saves.
func RunScenario(ctx context.Context, scenario *Scenario, reg *instrument.Registry, store *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		slog.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "instrument", step.Instrument)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		run, err := RunOnce(ctx, reg, cfg, cfg.Frames)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		res := StepResult{Step: i + 1, Run: run}
		if step.Save {
			if store == nil {
				return results, fmt.Errorf("step %d: save requested without a store", i+1)
			}
			id, err := store.Save(run)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			res.RunID = id
		}
		results = append(results, res)
	}

	return results, nil
}
