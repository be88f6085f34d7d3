package drift

// Integration scheme selectors for horizontal advection. The step
// pipeline passes the scheme through to the advectors untouched.
const (
	SchemeEuler      = "euler"
	SchemeRungeKutta = "runge-kutta"
)

// Diffusivity model selectors for turbulent mixing.
const (
	DiffusivityEnvironment = "environment"
	DiffusivityConstant    = "constant"
)

// Config is the per-run record consumed by the step pipeline. It is
// validated at load time (internal/config); the pipeline assumes every
// field already holds.
type Config struct {
	// Scheme selects the horizontal integration scheme, passed through to
	// the advection leaves.
	Scheme string

	// MaxAgeSeconds retires particles older than this. Nil disables
	// age-based retirement.
	MaxAgeSeconds *float64

	TurbulentMixing   bool
	VerticalAdvection bool

	Mixing MixingConfig
}

// MixingConfig holds the sub-parameters consumed only by the vertical
// mixer.
type MixingConfig struct {
	// Timestep is the inner mixing sub-step in seconds.
	Timestep float64
	// VerticalResolution is the depth quantum, in metres, at which the
	// diffusivity profile is looked up.
	VerticalResolution float64
	// DiffusivityModel selects between the sampled profile
	// ("environment") and a constant background value ("constant").
	DiffusivityModel string
}

func DefaultConfig() Config {
	return Config{
		Scheme:            SchemeEuler,
		TurbulentMixing:   false,
		VerticalAdvection: true,
		Mixing: MixingConfig{
			Timestep:           1.0,
			VerticalResolution: 1.0,
			DiffusivityModel:   DiffusivityEnvironment,
		},
	}
}
