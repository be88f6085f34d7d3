package ocean

import "github.com/san-kum/driftsim/internal/drift"

// WaterColumnAdvector applies the deterministic vertical displacement
// from the sampled upward water velocity, keeping particles between the
// surface and the sea floor.
type WaterColumnAdvector struct{}

func (a *WaterColumnAdvector) Advect(e *drift.Ensemble, env *drift.Environment, dt float64) {
	drift.ParallelFor(e.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if !e.Status[i].Active() {
				continue
			}
			z := e.Z[i] + env.VerticalVelocity[i]*dt
			if z > 0 {
				z = 0
			}
			if floor := -env.SeaFloorDepth[i]; z < floor {
				z = floor
			}
			e.Z[i] = z
		}
	})
}
