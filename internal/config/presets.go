package config

import "github.com/san-kum/driftsim/internal/drift"

func maxAge(s float64) *float64 { return &s }

var Presets = map[string]*Config{
	"passive-surface": {
		Field: "uniform",
		Seed:  SeedConfig{N: 2000, Radius: 500, WindDriftFactor: 0.02, WindDriftSpread: 0.01},
		Drift: DriftConfig{Scheme: drift.SchemeEuler},
		Processes: ProcessConfig{
			TurbulentMixing:   false,
			VerticalAdvection: false,
		},
		Mixing: MixingConfig{Timestep: 60, VerticalResolution: 1, DiffusivityModel: drift.DiffusivityEnvironment},
		Run:    RunConfig{Dt: 900, Duration: 3 * 86400},
	},
	"coastal-stranding": {
		Field: "coastal",
		Seed:  SeedConfig{N: 5000, X: -20000, Radius: 2000, WindDriftFactor: 0.03, WindDriftSpread: 0.02},
		Drift: DriftConfig{Scheme: drift.SchemeRungeKutta, MaxAgeSeconds: maxAge(7 * 86400)},
		Processes: ProcessConfig{
			TurbulentMixing:   false,
			VerticalAdvection: false,
		},
		Mixing: MixingConfig{Timestep: 60, VerticalResolution: 1, DiffusivityModel: drift.DiffusivityEnvironment},
		Run:    RunConfig{Dt: 600, Duration: 10 * 86400},
	},
	"mixed-column": {
		Field: "eddy",
		Seed:  SeedConfig{N: 3000, Z: -5, Radius: 1000},
		Drift: DriftConfig{Scheme: drift.SchemeEuler},
		Processes: ProcessConfig{
			TurbulentMixing:   true,
			VerticalAdvection: true,
		},
		Mixing: MixingConfig{Timestep: 30, VerticalResolution: 0.5, DiffusivityModel: drift.DiffusivityEnvironment},
		Run:    RunConfig{Dt: 300, Duration: 86400},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
