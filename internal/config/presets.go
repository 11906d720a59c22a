package config

import "sort"

var Presets = map[string]*Config{
	"tunneling": {
		Model: DefaultModel, L: 20, N: 512, T: 5, Dt: 0.01,
		Potential:    NewSpec("barrera", map[string]float64{"x_min": -0.5, "x_max": 0.5, "V0": 5.0}),
		InitialState: NewSpec("gauss_momentum", map[string]float64{"x0": -4.0, "sigma": 0.7, "k0": 2.0}),
		Metric:       NewSpec("prob_region", map[string]float64{"x_min": 0, "x_max": 5}),
	},
	"free_symmetric": {
		Model: DefaultModel, L: 20, N: 512, T: 2, Dt: 0.01,
		Potential:    NewSpec("libre", nil),
		InitialState: NewSpec("gauss", map[string]float64{"x0": 0, "sigma": 1}),
		Metric:       NewSpec("prob_region", map[string]float64{"x_min": -1, "x_max": 1}),
	},
	"harmonic": {
		Model: DefaultModel, L: 20, N: 512, T: 6.283, Dt: 0.005,
		Potential:    NewSpec("armonic", map[string]float64{"k": 1, "x0": 0}),
		InitialState: NewSpec("gauss", map[string]float64{"x0": 2, "sigma": 1}),
		Metric:       NewSpec("prob_region", map[string]float64{"x_min": 0, "x_max": 10}),
	},
	"double_well": {
		Model: DefaultModel, L: 12, N: 512, T: 10, Dt: 0.002,
		Potential:    NewSpec("doble_pozo", map[string]float64{"a": 1, "b": 5}),
		InitialState: NewSpec("gauss", map[string]float64{"x0": -1.58, "sigma": 0.4}),
		Metric:       NewSpec("prob_region", map[string]float64{"x_min": 0, "x_max": 6}),
	},
	"superposition": {
		Model: DefaultModel, L: 30, N: 1024, T: 4, Dt: 0.01,
		Potential:    NewSpec("libre", nil),
		InitialState: NewSpec("superposicion", map[string]float64{"x1": -2, "x2": 2, "sigma": 0.7}),
		Metric:       NewSpec("prob_region", map[string]float64{"x_min": -0.5, "x_max": 0.5}),
	},
	"well": {
		Model: DefaultModel, L: 20, N: 512, T: 5, Dt: 0.01,
		Potential:    NewSpec("pozo", map[string]float64{"x_min": -2, "x_max": 2, "V_out": 10}),
		InitialState: NewSpec("gauss_momentum", map[string]float64{"x0": 0, "sigma": 0.5, "k0": 1}),
		Metric:       NewSpec("prob_region", map[string]float64{"x_min": -2, "x_max": 2}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
