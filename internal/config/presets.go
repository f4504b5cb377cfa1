package config

import "sort"

var Presets = map[string]*Config{
	// The reference demo configuration: warm machine near its optimum.
	"demo": {
		InitialTemp: 70, MaxTemp: 100, OptimalTemp: 75,
		ProductionRate: 10, Power: 50,
		Frames: 200, IntervalMs: 100,
	},
	// Starts far below optimal temperature; production collapses until
	// the random walk drifts the machine warm.
	"cold-start": {
		InitialTemp: 20, MaxTemp: 100, OptimalTemp: 75,
		ProductionRate: 10, Power: 30,
		Frames: 400, IntervalMs: 100,
	},
	// Running hot against the temperature ceiling.
	"overdrive": {
		InitialTemp: 95, MaxTemp: 100, OptimalTemp: 60,
		ProductionRate: 25, Power: 90,
		Frames: 200, IntervalMs: 50,
	},
	// Long unattended run with a bounded history buffer.
	"soak": {
		InitialTemp: 70, MaxTemp: 100, OptimalTemp: 75,
		ProductionRate: 10, Power: 50,
		Frames: 10000, IntervalMs: 20, HistoryCapacity: 600,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
