package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/driftsim/internal/drift"
	"github.com/san-kum/driftsim/internal/field"
	"github.com/san-kum/driftsim/internal/metrics"
	"github.com/san-kum/driftsim/internal/ocean"
	"github.com/san-kum/driftsim/internal/sim"
)

// Scenario bundles a flow field with the domain it is meaningful over.
type Scenario struct {
	Sampler *field.Sampler
	Domain  *sim.Domain
}

type Registry struct {
	scenarios map[string]func() Scenario
	terminals map[string]func() drift.TerminalVelocityModel
}

func NewRegistry() *Registry {
	r := &Registry{
		scenarios: make(map[string]func() Scenario),
		terminals: make(map[string]func() drift.TerminalVelocityModel),
	}

	r.scenarios["uniform"] = func() Scenario {
		return Scenario{
			Sampler: &field.Sampler{
				Currents: &field.Uniform{U: 0.2, V: 0.05, Depth: 200},
				Winds:    &field.Uniform{WindU: 5, WindV: 0},
				Bottom:   &field.Uniform{Depth: 200},
			},
		}
	}
	r.scenarios["eddy"] = func() Scenario {
		return Scenario{
			Sampler: &field.Sampler{
				Currents: &field.Eddy{Radius: 20000, Strength: 0.5},
				Diff:     &field.Pycnocline{SurfaceK: 0.05, DeepK: 1e-4, Depth: 20, Width: 5},
				Bottom:   &field.Uniform{Depth: 500},
			},
			Domain: &sim.Domain{X0: -100000, X1: 100000, Y0: -100000, Y1: 100000},
		}
	}
	r.scenarios["channel"] = func() Scenario {
		return Scenario{
			Sampler: &field.Sampler{
				Currents: &field.ShearChannel{PeakU: 1.0, HalfWidth: 5000},
				Bottom:   &field.Uniform{Depth: 50},
			},
			Domain: &sim.Domain{X0: -10000, X1: 200000, Y0: -5000, Y1: 5000},
		}
	}
	r.scenarios["coastal"] = func() Scenario {
		coast := &field.CoastEast{CoastX: 0}
		return Scenario{
			Sampler: &field.Sampler{
				Currents: &field.Uniform{U: 0.1},
				Winds:    &field.Uniform{WindU: 8, WindV: 1},
				Bottom:   &field.Shelf{DeepDepth: 300, CoastDepth: 5, CoastX: 0, Width: 30000},
				Coast:    coast,
			},
			Domain: &sim.Domain{X0: -200000, X1: 10000, Y0: -100000, Y1: 100000},
		}
	}

	r.terminals["passive"] = func() drift.TerminalVelocityModel { return ocean.PassiveTracer{} }
	r.terminals["microplastic"] = func() drift.TerminalVelocityModel {
		return ocean.StokesSettling{Diameter: 1e-4, ParticleDensity: 1050, WaterDensity: 1027}
	}

	return r
}

func (r *Registry) GetScenario(name string) (Scenario, error) {
	fn, ok := r.scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown field scenario: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetTerminalModel(name string) (drift.TerminalVelocityModel, error) {
	fn, ok := r.terminals[name]
	if !ok {
		return nil, fmt.Errorf("unknown terminal-velocity model: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListScenarios() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewActiveFraction(),
		metrics.NewStrandedCount(),
		metrics.NewDisplacement(),
		metrics.NewMeanDepth(),
	}
}
