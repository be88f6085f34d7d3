package drift

import "errors"

// Domain errors for run setup and configuration. The step pipeline itself
// never returns errors: particle deactivation is a lifecycle event, not a
// failure.
var (
	// ErrInvalidState indicates a particle position became NaN or Inf.
	ErrInvalidState = errors.New("drift: invalid ensemble state (NaN or Inf detected)")

	// ErrParameterBounds indicates a configuration value outside its valid range.
	ErrParameterBounds = errors.New("drift: parameter out of valid bounds")

	// ErrEmptySeed indicates a seeding request for zero particles.
	ErrEmptySeed = errors.New("drift: cannot seed an empty ensemble")
)
