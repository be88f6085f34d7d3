package experiment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/san-kum/driftsim/internal/config"
	"github.com/san-kum/driftsim/internal/drift"
	"github.com/san-kum/driftsim/internal/ocean"
	"github.com/san-kum/driftsim/internal/sim"
	"github.com/san-kum/driftsim/internal/step"
)

// Experiment assembles a full run from a file config: scenario, process
// leaves, pipeline, seeded ensemble, simulator.
type Experiment struct {
	cfg       *config.Config
	terminal  string
	simulator *sim.Simulator
	ensemble  *drift.Ensemble
	runCfg    sim.Config
	driftCfg  drift.Config
	log       zerolog.Logger
}

func New(cfg *config.Config, terminal string, log zerolog.Logger) *Experiment {
	return &Experiment{cfg: cfg, terminal: terminal, log: log}
}

// Setup resolves the scenario and terminal model from the registry, seeds
// the ensemble and wires the step pipeline.
func (x *Experiment) Setup(registry *Registry, runCfg sim.Config) error {
	scenario, err := registry.GetScenario(x.cfg.Field)
	if err != nil {
		return err
	}
	terminal, err := registry.GetTerminalModel(x.terminal)
	if err != nil {
		return err
	}

	rng := sim.NewRNG(runCfg.Seed)
	ensemble, err := drift.Seed(x.cfg.ToSeedSpec(), rng)
	if err != nil {
		return err
	}

	pipeline := step.New(
		&ocean.CurrentAdvector{Currents: scenario.Sampler.Currents},
		&ocean.WindAdvector{},
		terminal,
		ocean.NewRandomWalkMixer(runCfg.Seed),
		&ocean.WaterColumnAdvector{},
	)
	if scenario.Sampler.Coast != nil {
		pipeline.Land = scenario.Sampler.Coast.Land
	}

	if runCfg.Domain == nil {
		runCfg.Domain = scenario.Domain
	}

	x.simulator = sim.New(pipeline, scenario.Sampler, x.log)
	for _, m := range registry.DefaultMetrics() {
		x.simulator.AddMetric(m)
	}
	x.ensemble = ensemble
	x.runCfg = runCfg
	x.driftCfg = x.cfg.ToDrift()
	return nil
}

func (x *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if x.simulator == nil {
		return nil, fmt.Errorf("experiment not set up")
	}
	return x.simulator.Run(ctx, x.ensemble, x.driftCfg, x.runCfg)
}

// Ensemble exposes the run's particle set, e.g. for live views.
func (x *Experiment) Ensemble() *drift.Ensemble { return x.ensemble }

// Simulator exposes the underlying simulator for adding observers.
func (x *Experiment) Simulator() *sim.Simulator { return x.simulator }
