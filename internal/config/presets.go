package config

import "sort"

func hpParams(d, ron, roff float64) map[string]float64 {
	return map[string]float64{"D": d, "RON": ron, "ROFF": roff, "muD": 1e-14}
}

// silver-chalcogenide device fit
func yakopcicParams() map[string]float64 {
	return map[string]float64{
		"a1": 0.17, "a2": 0.17, "b": 0.05,
		"Ap": 4000, "An": 4000,
		"Vp": 0.16, "Vn": 0.15,
		"xp": 0.3, "xn": 0.5,
		"alphap": 1, "alphan": 5,
		"eta": 1,
	}
}

var Presets = map[string]*Config{
	"hp_sine": {
		Name:        "HP Labs - Sine Wave",
		Description: "TiO2 ion drift under a 1 Hz sine, Joglekar window",
		Model:       "hp_labs",
		Params:      hpParams(27e-9, 10e3, 100e3),
		Signal:      SignalConfig{Type: "sine", Vp: 1, Vn: 1, Frequency: 1},
		Window:      WindowConfig{Type: "joglekar", P: 7, J: 1},
		X0:          0.1,
		TMax:        2,
	},
	"hp_biolek_triangle": {
		Name:        "HP Labs - Triangle Sweep",
		Description: "four-quadrant triangle sweep, Biolek window",
		Model:       "hp_labs",
		Params:      hpParams(27e-9, 10e3, 100e3),
		Signal:      SignalConfig{Type: "triangle", Vp: 1, Vn: 1, Frequency: 1},
		Window:      WindowConfig{Type: "biolek", P: 2, J: 1},
		X0:          0.1,
		TMax:        2,
	},
	"hp_anusudha_sine": {
		Name:        "HP Labs - Anusudha Window",
		Description: "1 Hz sine with the Anusudha boundary window",
		Model:       "hp_labs",
		Params:      hpParams(27e-9, 10e3, 100e3),
		Signal:      SignalConfig{Type: "sine", Vp: 1, Vn: 1, Frequency: 1},
		Window:      WindowConfig{Type: "anusudha", P: 10, J: 1},
		X0:          0.5,
		TMax:        2,
	},
	"yakopcic_sine": {
		Name:        "Yakopcic - Sine Wave",
		Description: "100 Hz sine, threshold switching",
		Model:       "yakopcic",
		Params:      yakopcicParams(),
		Signal:      SignalConfig{Type: "sine", Vp: 0.45, Vn: 0.45, Frequency: 100},
		X0:          0.11,
		TMax:        0.02,
	},
	"yakopcic_dc_sweep": {
		Name:        "Yakopcic - DC Sweep",
		Description: "four-quadrant triangle sweep",
		Model:       "yakopcic",
		Params:      yakopcicParams(),
		Signal:      SignalConfig{Type: "triangle", Vp: 0.45, Vn: 0.45, Frequency: 100},
		X0:          0.11,
		TMax:        0.02,
	},
	"yakopcic_high_freq": {
		Name:        "Yakopcic - High Frequency",
		Description: "1 kHz sine, the loop collapses toward a line",
		Model:       "yakopcic",
		Params:      yakopcicParams(),
		Signal:      SignalConfig{Type: "sine", Vp: 0.45, Vn: 0.45, Frequency: 1000},
		X0:          0.11,
		TMax:        0.002,
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

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
