package ocean

import "github.com/san-kum/driftsim/internal/drift"

// PassiveTracer is the terminal-velocity model for particles that simply
// follow the water: no buoyancy, no settling, terminal velocity is zero.
type PassiveTracer struct{}

func (PassiveTracer) Update(e *drift.Ensemble, env *drift.Environment) {
	for i := range e.TerminalVelocity {
		if e.Status[i].Active() {
			e.TerminalVelocity[i] = 0
		}
	}
}

// StokesSettling computes terminal velocity from Stokes' law for small
// spherical particles. Positive values rise, negative sink.
type StokesSettling struct {
	Diameter        float64 // m
	ParticleDensity float64 // kg/m^3
	WaterDensity    float64 // kg/m^3
	Viscosity       float64 // dynamic viscosity, kg/(m s)
}

const gravity = 9.81

func (m StokesSettling) Update(e *drift.Ensemble, env *drift.Environment) {
	mu := m.Viscosity
	if mu <= 0 {
		mu = 1.4e-3
	}
	w := gravity * m.Diameter * m.Diameter * (m.WaterDensity - m.ParticleDensity) / (18 * mu)
	for i := range e.TerminalVelocity {
		if e.Status[i].Active() {
			e.TerminalVelocity[i] = w
		}
	}
}
