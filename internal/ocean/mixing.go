package ocean

import (
	"math"
	"math/rand"

	"github.com/san-kum/driftsim/internal/drift"
)

// RandomWalkMixer applies turbulent vertical mixing as a random walk: at
// each inner sub-step a particle is displaced by ±sqrt(2 K δt) plus its
// terminal-velocity drift, with K taken from the snapshot's diffusivity
// profile at the particle's instantaneous depth. Displacements reflect at
// the surface and the sea floor.
//
// The mixer owns its RNG and runs particles sequentially; one run's
// mixing sequence is reproducible from the seed.
type RandomWalkMixer struct {
	rng *rand.Rand
}

func NewRandomWalkMixer(seed int64) *RandomWalkMixer {
	return &RandomWalkMixer{rng: rand.New(rand.NewSource(seed))}
}

func (m *RandomWalkMixer) Mix(e *drift.Ensemble, env *drift.Environment, cfg drift.MixingConfig, dt float64) {
	sub := cfg.Timestep
	if sub <= 0 || sub > dt {
		sub = dt
	}
	nsub := int(math.Ceil(dt / sub))
	subdt := dt / float64(nsub)

	for i := range e.Z {
		if !e.Status[i].Active() {
			continue
		}
		z := e.Z[i]
		floor := -env.SeaFloorDepth[i]
		for k := 0; k < nsub; k++ {
			kz := m.diffusivityAt(env, cfg, i, z)
			dz := math.Sqrt(2*kz*subdt) + e.TerminalVelocity[i]*subdt
			if m.rng.Float64() < 0.5 {
				dz = -math.Sqrt(2*kz*subdt) + e.TerminalVelocity[i]*subdt
			}
			z += dz
			z = reflect(z, floor)
		}
		e.Z[i] = z
	}
}

func (m *RandomWalkMixer) diffusivityAt(env *drift.Environment, cfg drift.MixingConfig, i int, z float64) float64 {
	if cfg.DiffusivityModel == drift.DiffusivityConstant {
		return drift.FallbackDiffusivity
	}
	if cfg.VerticalResolution > 0 {
		z = math.Round(z/cfg.VerticalResolution) * cfg.VerticalResolution
	}
	return env.Diffusivity.At(i, z)
}

// reflect folds z back into [floor, 0]. A displacement larger than the
// water column is clamped to the nearer boundary after one fold.
func reflect(z, floor float64) float64 {
	if z > 0 {
		z = -z
	}
	if z < floor {
		z = 2*floor - z
	}
	if z > 0 {
		z = 0
	}
	if z < floor {
		z = floor
	}
	return z
}
