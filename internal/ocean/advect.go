package ocean

import (
	"github.com/san-kum/driftsim/internal/drift"
	"github.com/san-kum/driftsim/internal/field"
)

// CurrentAdvector moves particles with the ambient current. With the
// euler scheme it applies the snapshot velocity directly; with
// runge-kutta and a resolvable flow field attached it re-evaluates the
// field at the forward midpoint (RK2).
type CurrentAdvector struct {
	// Currents enables midpoint evaluation under the runge-kutta scheme.
	// Nil degrades runge-kutta to the snapshot euler step.
	Currents field.CurrentField
}

func (a *CurrentAdvector) Advect(e *drift.Ensemble, env *drift.Environment, cfg drift.Config, dt float64) {
	rk := cfg.Scheme == drift.SchemeRungeKutta && a.Currents != nil
	drift.ParallelFor(e.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if !e.Status[i].Active() {
				continue
			}
			u, v := env.CurrentU[i], env.CurrentV[i]
			if rk {
				mx := e.X[i] + 0.5*u*dt
				my := e.Y[i] + 0.5*v*dt
				u, v = a.Currents.Current(mx, my, e.Z[i])
			}
			e.X[i] += u * dt
			e.Y[i] += v * dt
		}
	})
}

// WindAdvector adds wind-driven drift scaled by each particle's own
// wind drift factor: 0 means no wind effect, 1 the full surface wind.
type WindAdvector struct{}

func (a *WindAdvector) Advect(e *drift.Ensemble, env *drift.Environment, cfg drift.Config, dt float64) {
	drift.ParallelFor(e.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if !e.Status[i].Active() {
				continue
			}
			f := e.WindDriftFactor[i]
			e.X[i] += env.WindU[i] * f * dt
			e.Y[i] += env.WindV[i] * f * dt
		}
	})
}
