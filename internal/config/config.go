package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/driftsim/internal/drift"
)

const (
	DefaultDt       = 900.0
	DefaultDuration = 86400.0
	DefaultN        = 1000
	DefaultTimestep = 60.0
	DefaultVertRes  = 1.0
)

type Config struct {
	Field     string        `yaml:"field"`
	Seed      SeedConfig    `yaml:"seed"`
	Drift     DriftConfig   `yaml:"drift"`
	Processes ProcessConfig `yaml:"processes"`
	Mixing    MixingConfig  `yaml:"turbulentmixing"`
	Run       RunConfig     `yaml:"run"`
}

type SeedConfig struct {
	N               int     `yaml:"n"`
	X               float64 `yaml:"x"`
	Y               float64 `yaml:"y"`
	Z               float64 `yaml:"z"`
	Radius          float64 `yaml:"radius"`
	WindDriftFactor float64 `yaml:"wind_drift_factor"`
	WindDriftSpread float64 `yaml:"wind_drift_spread"`
}

type DriftConfig struct {
	Scheme        string   `yaml:"scheme"`
	MaxAgeSeconds *float64 `yaml:"max_age_seconds"`
}

type ProcessConfig struct {
	TurbulentMixing   bool `yaml:"turbulentmixing"`
	VerticalAdvection bool `yaml:"verticaladvection"`
}

type MixingConfig struct {
	Timestep           float64 `yaml:"timestep"`
	VerticalResolution float64 `yaml:"verticalresolution"`
	DiffusivityModel   string  `yaml:"diffusivitymodel"`
}

type RunConfig struct {
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Seed     int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Field: "uniform",
		Seed: SeedConfig{
			N: DefaultN,
			Z: 0,
		},
		Drift: DriftConfig{
			Scheme: drift.SchemeEuler,
		},
		Processes: ProcessConfig{
			TurbulentMixing:   false,
			VerticalAdvection: true,
		},
		Mixing: MixingConfig{
			Timestep:           DefaultTimestep,
			VerticalResolution: DefaultVertRes,
			DiffusivityModel:   drift.DiffusivityEnvironment,
		},
		Run: RunConfig{
			Dt:       DefaultDt,
			Duration: DefaultDuration,
		},
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
	if err := cfg.Validate(); err != nil {
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

// Validate enforces every configuration range before a run starts. The
// step pipeline never re-checks these: a Config that passed Validate is
// valid by contract everywhere downstream.
func (c *Config) Validate() error {
	if c.Drift.Scheme != drift.SchemeEuler && c.Drift.Scheme != drift.SchemeRungeKutta {
		return fmt.Errorf("%w: drift.scheme must be %q or %q, got %q",
			drift.ErrParameterBounds, drift.SchemeEuler, drift.SchemeRungeKutta, c.Drift.Scheme)
	}
	if c.Drift.MaxAgeSeconds != nil && *c.Drift.MaxAgeSeconds < 0 {
		return fmt.Errorf("%w: drift.max_age_seconds must be >= 0, got %f",
			drift.ErrParameterBounds, *c.Drift.MaxAgeSeconds)
	}
	if c.Mixing.Timestep < 0.1 || c.Mixing.Timestep > 3600 {
		return fmt.Errorf("%w: turbulentmixing.timestep must be in [0.1, 3600], got %f",
			drift.ErrParameterBounds, c.Mixing.Timestep)
	}
	if c.Mixing.VerticalResolution < 0.01 || c.Mixing.VerticalResolution > 10 {
		return fmt.Errorf("%w: turbulentmixing.verticalresolution must be in [0.01, 10], got %f",
			drift.ErrParameterBounds, c.Mixing.VerticalResolution)
	}
	if c.Mixing.DiffusivityModel != drift.DiffusivityEnvironment && c.Mixing.DiffusivityModel != drift.DiffusivityConstant {
		return fmt.Errorf("%w: turbulentmixing.diffusivitymodel must be %q or %q, got %q",
			drift.ErrParameterBounds, drift.DiffusivityEnvironment, drift.DiffusivityConstant, c.Mixing.DiffusivityModel)
	}
	if c.Run.Dt <= 0 {
		return fmt.Errorf("%w: run.dt must be positive, got %f", drift.ErrParameterBounds, c.Run.Dt)
	}
	if c.Run.Duration <= 0 {
		return fmt.Errorf("%w: run.duration must be positive, got %f", drift.ErrParameterBounds, c.Run.Duration)
	}
	if c.Seed.N <= 0 {
		return fmt.Errorf("%w: seed.n must be positive, got %d", drift.ErrParameterBounds, c.Seed.N)
	}
	if c.Seed.WindDriftFactor < 0 || c.Seed.WindDriftFactor > 1 {
		return fmt.Errorf("%w: seed.wind_drift_factor must be in [0, 1], got %f",
			drift.ErrParameterBounds, c.Seed.WindDriftFactor)
	}
	return nil
}

// ToDrift converts the validated file config into the immutable record
// the step pipeline consumes.
func (c *Config) ToDrift() drift.Config {
	return drift.Config{
		Scheme:            c.Drift.Scheme,
		MaxAgeSeconds:     c.Drift.MaxAgeSeconds,
		TurbulentMixing:   c.Processes.TurbulentMixing,
		VerticalAdvection: c.Processes.VerticalAdvection,
		Mixing: drift.MixingConfig{
			Timestep:           c.Mixing.Timestep,
			VerticalResolution: c.Mixing.VerticalResolution,
			DiffusivityModel:   c.Mixing.DiffusivityModel,
		},
	}
}

// ToSeedSpec converts the seed section into a release specification.
func (c *Config) ToSeedSpec() drift.SeedSpec {
	return drift.SeedSpec{
		N:               c.Seed.N,
		X:               c.Seed.X,
		Y:               c.Seed.Y,
		Z:               c.Seed.Z,
		Radius:          c.Seed.Radius,
		WindDriftFactor: c.Seed.WindDriftFactor,
		WindDriftSpread: c.Seed.WindDriftSpread,
	}
}
