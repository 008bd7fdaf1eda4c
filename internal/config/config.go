package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/probesim/internal/scan"
)

const (
	DefaultInstrument = "afm"
	DefaultSeed       = 42
	DefaultSpeed      = 1.0
	DefaultFPS        = 60
	DefaultFrames     = 3000
	DefaultDataDir    = "./data"
)

// Environment variables read by ApplyEnv.
const (
	EnvDataDir = "PROBESIM_DATA"
	EnvSeed    = "PROBESIM_SEED"
	EnvFPS     = "PROBESIM_FPS"
)

type Config struct {
	Instrument string             `yaml:"instrument"`
	Seed       int64              `yaml:"seed"`
	Length     int                `yaml:"length,omitempty"`
	Speed      float64            `yaml:"speed"`
	FPS        int                `yaml:"fps"`
	Frames     int                `yaml:"frames"`
	DataDir    string             `yaml:"data_dir"`
	Params     map[string]float64 `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Instrument: DefaultInstrument,
		Seed:       DefaultSeed,
		Speed:      DefaultSpeed,
		FPS:        DefaultFPS,
		Frames:     DefaultFrames,
		DataDir:    DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEnv reads a dotenv file into the process environment. A missing file
// is not an error.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// ApplyEnv overrides the data directory, seed and frame rate from the
// environment.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvDataDir); ok && v != "" {
		c.DataDir = v
	}
	if v, ok := os.LookupEnv(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	if v, ok := os.LookupEnv(EnvFPS); ok && v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFPS, err)
		}
		c.FPS = fps
	}
	return nil
}

// Apply copies the engine-level settings onto an instrument setup.
func (c *Config) Apply(s *scan.Setup) {
	s.Seed = c.Seed
	if c.Length > 0 {
		s.Length = c.Length
	}
	if c.Speed > 0 {
		s.Speed = c.Speed
	}
}

// ApplyParams routes every configured parameter through the engine, in
// name order.
func (c *Config) ApplyParams(e *scan.Engine) error {
	names := make([]string, 0, len(c.Params))
	for k := range c.Params {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if err := e.UpdateConfig(k, c.Params[k]); err != nil {
			return err
		}
	}
	return nil
}

// SetParam records a parameter override.
func (c *Config) SetParam(name string, v float64) {
	if c.Params == nil {
		c.Params = make(map[string]float64)
	}
	c.Params[name] = v
}

func (c *Config) Clone() *Config {
	out := *c
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}
