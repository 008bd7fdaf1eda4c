package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/probesim/internal/config"
	"github.com/san-kum/probesim/internal/instrument"
	"github.com/san-kum/probesim/internal/storage"
)

func TestRunOnce(t *testing.T) {
	reg := instrument.NewRegistry()
	cfg := config.GetPreset("afm", "soft")

	run, err := RunOnce(context.Background(), reg, cfg, 500)
	if err != nil {
		t.Fatal(err)
	}
	if len(run.Records) == 0 {
		t.Fatal("no records")
	}
	for _, r := range run.Records {
		if r.Value != 15 {
			t.Fatalf("soft preset deformation = %v, want 15", r.Value)
		}
	}
	if run.Meta.Metrics["saturation_rate"] != 1 {
		t.Errorf("saturation_rate = %v, want 1", run.Meta.Metrics["saturation_rate"])
	}
	if run.Meta.Params["stiffness"] != 0.3 {
		t.Errorf("params not recorded: %v", run.Meta.Params)
	}
	if run.Profile == nil || run.Profile.Len() != 1000 {
		t.Error("profile missing from run")
	}
}

func TestRunOnce_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunOnce(ctx, instrument.NewRegistry(), config.DefaultConfig(), 10); err == nil {
		t.Error("expected context error")
	}
}

func TestStart_UnknownParam(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SetParam("grain_size", 10)
	if _, err := Start(instrument.NewRegistry(), cfg); err == nil {
		t.Error("afm should reject grain_size")
	}
}

const scenarioYAML = `name: compare
description: conductive afm against resiscope
steps:
  - instrument: cafm
    frames: 400
    save: true
  - instrument: kpfm
    preset: high_res
    frames: 300
    seed: 9
`

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Steps) != 2 || sc.Steps[1].Preset != "high_res" {
		t.Fatalf("scenario = %+v", sc)
	}

	store := storage.New(filepath.Join(dir, "runs"))
	results, err := RunScenario(context.Background(), sc, instrument.NewRegistry(), store)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].RunID == "" || results[1].RunID != "" {
		t.Errorf("run ids = %q, %q", results[0].RunID, results[1].RunID)
	}
	if results[1].Run.Meta.Seed != 9 || results[1].Run.Meta.Params["resolution"] != 0 {
		t.Errorf("second step meta = %+v", results[1].Run.Meta)
	}

	runs, err := store.List()
	if err != nil || len(runs) != 1 {
		t.Errorf("stored runs = %v, %v", runs, err)
	}
}

func TestRunScenario_BadPreset(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Instrument: "afm", Preset: "missing"}}}
	if _, err := RunScenario(context.Background(), sc, instrument.NewRegistry(), nil); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestRunSweep_SetpointRaisesDeformation(t *testing.T) {
	sweep := &ParameterSweep{
		Instrument: "afm",
		ParamName:  "setpoint",
		ParamMin:   0.05,
		ParamMax:   0.5,
		NumSteps:   4,
		Frames:     600,
		Seed:       1,
	}
	results, err := RunSweep(context.Background(), sweep, instrument.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Readout.Mean < results[i-1].Readout.Mean {
			t.Errorf("mean deformation fell from %v to %v", results[i-1].Readout.Mean, results[i].Readout.Mean)
		}
	}
}

func TestRunEnsemble(t *testing.T) {
	ec := &EnsembleConfig{Instrument: "kpfm", NumTrials: 3, Frames: 200, Seed: 5}
	results, err := RunEnsemble(context.Background(), ec, instrument.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Seed == results[1].Seed {
		t.Error("trials share a seed")
	}
	if s := EnsembleStats(results, "contact_fraction"); s.N != 3 || s.Mean <= 0 {
		t.Errorf("contact fraction stats = %+v", s)
	}

	serial := *ec
	serial.Workers = 1
	again, err := RunEnsemble(context.Background(), &serial, instrument.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	for i := range results {
		if again[i].Seed != results[i].Seed || again[i].Metrics["mean_readout"] != results[i].Metrics["mean_readout"] {
			t.Errorf("trial %d differs between concurrent and serial runs", i)
		}
	}
}
