package drift

// Collaborator contracts for the step pipeline. Implementations live in
// internal/ocean; the pipeline only sees these interfaces.

// HorizontalAdvector displaces active particles in the horizontal plane.
// The environment snapshot was sampled at pre-step positions, so two
// advectors applied in sequence compose additively: neither sees the
// other's displacement through the snapshot.
type HorizontalAdvector interface {
	Advect(e *Ensemble, env *Environment, cfg Config, dt float64)
}

// TerminalVelocityModel sets TerminalVelocity for every active particle.
// Runs once per step, before mixing.
type TerminalVelocityModel interface {
	Update(e *Ensemble, env *Environment)
}

// VerticalMixer applies stochastic vertical displacement to active
// particles using the current-step terminal velocity and the snapshot's
// diffusivity profile.
type VerticalMixer interface {
	Mix(e *Ensemble, env *Environment, cfg MixingConfig, dt float64)
}

// VerticalAdvector applies deterministic vertical displacement from the
// snapshot's vertical velocity.
type VerticalAdvector interface {
	Advect(e *Ensemble, env *Environment, dt float64)
}
