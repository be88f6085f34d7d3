package drift

import (
	"math"
	"math/rand"
)

// SeedSpec describes a point release of particles.
type SeedSpec struct {
	N       int
	X, Y, Z float64
	// Radius spreads particles uniformly within a horizontal disc, metres.
	Radius float64
	// WindDriftFactor is the mean per-particle drift factor; Spread adds a
	// uniform perturbation, clipped to [0,1].
	WindDriftFactor float64
	WindDriftSpread float64
}

// Seed creates a new ensemble from a point release. The RNG is supplied
// by the caller so runs are reproducible from a seed value.
func Seed(spec SeedSpec, rng *rand.Rand) (*Ensemble, error) {
	if spec.N <= 0 {
		return nil, ErrEmptySeed
	}
	e := NewEnsemble(spec.N)
	for i := 0; i < spec.N; i++ {
		x, y := spec.X, spec.Y
		if spec.Radius > 0 {
			r := spec.Radius * math.Sqrt(rng.Float64())
			theta := 2 * math.Pi * rng.Float64()
			x += r * math.Cos(theta)
			y += r * math.Sin(theta)
		}
		wdf := spec.WindDriftFactor
		if spec.WindDriftSpread > 0 {
			wdf += spec.WindDriftSpread * (2*rng.Float64() - 1)
		}
		wdf = math.Max(0, math.Min(1, wdf))

		e.X[i] = x
		e.Y[i] = y
		e.Z[i] = math.Min(0, spec.Z)
		e.WindDriftFactor[i] = wdf
	}
	return e, nil
}
