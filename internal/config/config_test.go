package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/probesim/internal/instrument"
	"github.com/san-kum/probesim/internal/scan"
	"github.com/san-kum/probesim/internal/tip"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Instrument != "afm" {
		t.Errorf("expected instrument afm, got %s", cfg.Instrument)
	}
	if cfg.Speed <= 0 {
		t.Error("speed should be positive")
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.yaml")
	cfg := DefaultConfig()
	cfg.Instrument = "kpfm"
	cfg.Length = 1500
	cfg.SetParam("grain_size", 25)

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Instrument != "kpfm" || got.Length != 1500 || got.Params["grain_size"] != 25 {
		t.Errorf("loaded %+v", got)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.yaml")
	if err := os.WriteFile(path, []byte("instrument: mfm\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Instrument != "mfm" || cfg.FPS != DefaultFPS || cfg.Seed != DefaultSeed {
		t.Errorf("loaded %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/probes")
	t.Setenv(EnvSeed, "7")
	t.Setenv(EnvFPS, "30")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/tmp/probes" || cfg.Seed != 7 || cfg.FPS != 30 {
		t.Errorf("after ApplyEnv: %+v", cfg)
	}

	t.Setenv(EnvSeed, "seven")
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("expected error for malformed seed")
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing dotenv file: %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PROBESIM_FPS=24\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvFPS, "")
	os.Unsetenv(EnvFPS)
	if err := LoadEnv(path); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.FPS != 24 {
		t.Errorf("FPS = %d, want 24 from dotenv", cfg.FPS)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("afm", "soft")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params["stiffness"] != 0.3 {
		t.Errorf("expected stiffness 0.3, got %f", cfg.Params["stiffness"])
	}

	cfg.Params["stiffness"] = 9
	if GetPreset("afm", "soft").Params["stiffness"] != 0.3 {
		t.Error("GetPreset returned a shared config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("afm", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "soft"); cfg != nil {
		t.Error("expected nil for nonexistent instrument")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("kpfm"); len(presets) != 3 || presets[0] != "fine_grains" {
		t.Errorf("ListPresets(kpfm) = %v", presets)
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent instrument")
	}
}

// Every preset parameter must be owned by its instrument.
func TestPresets_ApplyCleanly(t *testing.T) {
	reg := instrument.NewRegistry()
	for inst, presets := range Presets {
		for name, cfg := range presets {
			s, err := reg.Setup(inst, 0)
			if err != nil {
				t.Fatalf("%s/%s: %v", inst, name, err)
			}
			cfg.Apply(&s)
			e, err := scan.New(s)
			if err != nil {
				t.Fatalf("%s/%s: %v", inst, name, err)
			}
			e.Init()
			if err := cfg.ApplyParams(e); err != nil {
				t.Errorf("%s/%s: %v", inst, name, err)
			}
		}
	}
}

func TestPresets_SoftAFMCapsDeformation(t *testing.T) {
	reg := instrument.NewRegistry()
	cfg := GetPreset("afm", "soft")
	e, err := reg.Engine(cfg.Instrument, cfg.Seed)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.ApplyParams(e); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 200; i++ {
		s := e.Tick()
		if s.Tip.InContact {
			if s.Tip.Readout.Value != 15.0 {
				t.Fatalf("deformation = %v, want 15", s.Tip.Readout.Value)
			}
			return
		}
	}
	t.Fatal("tip never reached contact")
}

func TestPresets_NoisyKPFMReachesPotential(t *testing.T) {
	reg := instrument.NewRegistry()
	cfg := GetPreset("kpfm", "noisy")
	s, err := reg.Setup(cfg.Instrument, cfg.Seed)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Apply(&s)
	e, err := scan.New(s)
	if err != nil {
		t.Fatal(err)
	}
	e.Init()
	if err := cfg.ApplyParams(e); err != nil {
		t.Fatal(err)
	}
	if got := s.Tip.(*tip.Potential).NoiseMV; got != 5 {
		t.Errorf("NoiseMV = %v, want 5", got)
	}
	params := e.Params()
	if params["noise_mv"] != 5 {
		t.Errorf("Params()[noise_mv] = %v, want 5", params["noise_mv"])
	}
	if params["noise"] != 0 {
		t.Errorf("surface noise = %v, want 0", params["noise"])
	}
}
