package config

import "sort"

func preset(instrument string, params map[string]float64) *Config {
	cfg := DefaultConfig()
	cfg.Instrument = instrument
	cfg.Params = params
	return cfg
}

var Presets = map[string]map[string]*Config{
	"afm": {
		"soft":  preset("afm", map[string]float64{"stiffness": 0.3, "setpoint": 0.5, "density": 0}),
		"stiff": preset("afm", map[string]float64{"stiffness": 3, "setpoint": 0.5}),
		"dense": preset("afm", map[string]float64{"density": 0.35, "period": 80}),
	},
	"softmeka": {
		"sticky":  preset("softmeka", map[string]float64{"adhesion": 3, "adhesion_range": 5}),
		"elastic": preset("softmeka", map[string]float64{"unload_gain": 0.5, "adhesion": 0}),
		"deep":    preset("softmeka", map[string]float64{"amplitude": 14}),
	},
	"cafm": {
		"wide":   preset("cafm", map[string]float64{"lower": 4, "upper": 12}),
		"narrow": preset("cafm", map[string]float64{"lower": 7, "upper": 9}),
	},
	"resiscope": {
		"shifted": preset("resiscope", map[string]float64{"shift": 1}),
		"rough":   preset("resiscope", map[string]float64{"roughness": 4, "noise": 0.3}),
	},
	"kpfm": {
		"high_res":    preset("kpfm", map[string]float64{"resolution": 0}),
		"noisy":       preset("kpfm", map[string]float64{"noise_mv": 5}),
		"fine_grains": preset("kpfm", map[string]float64{"grain_size": 30}),
	},
	"softpfm": {
		"weak":   preset("softpfm", map[string]float64{"contrast": 0.5}),
		"strong": preset("softpfm", map[string]float64{"drive": 5}),
	},
	"mfm": {
		"high_lift": preset("mfm", map[string]float64{"measure_lift": 15, "contrast": 0.6}),
		"narrow":    preset("mfm", map[string]float64{"width": 40}),
	},
	"softsthm": {
		"hot":   preset("softsthm", map[string]float64{"tip_temperature": 400}),
		"dense": preset("softsthm", map[string]float64{"density": 0.3}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(instrument, name string) *Config {
	instPresets, ok := Presets[instrument]
	if !ok {
		return nil
	}
	cfg, ok := instPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(instrument string) []string {
	instPresets, ok := Presets[instrument]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(instPresets))
	for name := range instPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
