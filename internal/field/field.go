package field

import "github.com/san-kum/driftsim/internal/drift"

// Component field contracts. A Sampler may hold any subset; missing
// components resolve to the documented fallback values, so a partially
// specified scenario still yields a complete snapshot.

type CurrentField interface {
	Current(x, y, z float64) (u, v float64)
}

type WindField interface {
	Wind(x, y float64) (u, v float64)
}

type VerticalField interface {
	VerticalVelocity(x, y, z float64) float64
}

type DiffusivityField interface {
	Diffusivity(x, y, z float64) float64
}

type Bathymetry interface {
	SeaFloorDepth(x, y float64) float64
}

type LandMask interface {
	Land(x, y float64) bool
}

// DefaultProfileResolution is the vertical spacing of sampled diffusivity
// profile levels, metres.
const DefaultProfileResolution = 5.0

// Sampler assembles the per-step environment snapshot by evaluating each
// component field at every particle's current position. Fallbacks when a
// component is nil: currents, wind and vertical velocity are zero,
// diffusivity is drift.FallbackDiffusivity, the sea floor sits at
// drift.FallbackSeaFloorDepth and everything is open water.
type Sampler struct {
	Currents CurrentField
	Winds    WindField
	Vertical VerticalField
	Diff     DiffusivityField
	Bottom   Bathymetry
	Coast    LandMask

	// ProfileResolution overrides the diffusivity profile level spacing.
	ProfileResolution float64
}

// Sample evaluates all fields at the ensemble's current positions and
// returns a fresh snapshot. Inactive particles are sampled too; their
// values are simply never read.
func (s *Sampler) Sample(e *drift.Ensemble) *drift.Environment {
	n := e.Len()
	env := drift.NewEnvironment(n)

	for i := 0; i < n; i++ {
		x, y, z := e.X[i], e.Y[i], e.Z[i]

		if s.Currents != nil {
			env.CurrentU[i], env.CurrentV[i] = s.Currents.Current(x, y, z)
		}
		if s.Winds != nil {
			env.WindU[i], env.WindV[i] = s.Winds.Wind(x, y)
		}
		if s.Vertical != nil {
			env.VerticalVelocity[i] = s.Vertical.VerticalVelocity(x, y, z)
		}
		if s.Bottom != nil {
			env.SeaFloorDepth[i] = s.Bottom.SeaFloorDepth(x, y)
		} else {
			env.SeaFloorDepth[i] = drift.FallbackSeaFloorDepth
		}
		if s.Coast != nil && s.Coast.Land(x, y) {
			env.LandMask[i] = 1
		}
	}

	env.Diffusivity = s.sampleProfile(e)
	return env
}

// sampleProfile evaluates the diffusivity field on fixed depth levels
// covering [drift.ProfileDepthMin, drift.ProfileDepthMax] at each
// particle's horizontal position.
func (s *Sampler) sampleProfile(e *drift.Ensemble) drift.Profile {
	res := s.ProfileResolution
	if res <= 0 {
		res = DefaultProfileResolution
	}

	var depths []float64
	for z := drift.ProfileDepthMin; z < drift.ProfileDepthMax; z += res {
		depths = append(depths, z)
	}
	depths = append(depths, drift.ProfileDepthMax)

	n := e.Len()
	values := make([][]float64, len(depths))
	for l, z := range depths {
		values[l] = make([]float64, n)
		for i := 0; i < n; i++ {
			if s.Diff != nil {
				values[l][i] = s.Diff.Diffusivity(e.X[i], e.Y[i], z)
			} else {
				values[l][i] = drift.FallbackDiffusivity
			}
		}
	}
	return drift.Profile{Depths: depths, Values: values}
}
