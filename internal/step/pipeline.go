package step

import "github.com/san-kum/driftsim/internal/drift"

// stage is one named sub-step of the update pipeline. enabled is
// evaluated once per step; apply only ever touches active particles.
type stage struct {
	name    string
	enabled func(drift.Config) bool
	apply   func(e *drift.Ensemble, env *drift.Environment, cfg drift.Config, dt float64)
}

func always(drift.Config) bool { return true }

// Pipeline advances an ensemble by one timestep. It composes the physical
// process leaves in a fixed order:
//
//  1. age accrual
//  2. current advection
//  3. wind advection
//  4. terminal-velocity recompute   (only when mixing runs)
//  5. turbulent vertical mixing     (config.TurbulentMixing)
//  6. vertical advection            (config.VerticalAdvection)
//  7. land stranding
//  8. age retirement                (config.MaxAgeSeconds set)
//
// The environment snapshot is sampled at pre-step positions and fixed for
// the whole step, so the two horizontal advections compose additively
// even though they mutate positions in sequence. Stranding is checked
// against post-update positions and takes priority over retirement when a
// particle satisfies both.
//
// Step never fails: deactivation is a lifecycle transition reported
// through the status field, and an all-inactive ensemble is a no-op.
type Pipeline struct {
	stages []stage
	steps  int

	// Land, when set, is queried at post-update positions for the
	// stranding check. When nil the snapshot's land mask is used instead,
	// which lags position updates by one step.
	Land func(x, y float64) bool
}

// New wires the process leaves into a pipeline. Which stages actually run
// is decided per call from the config, so one pipeline serves any
// combination of process flags.
func New(current, wind drift.HorizontalAdvector, terminal drift.TerminalVelocityModel,
	mixer drift.VerticalMixer, vertical drift.VerticalAdvector) *Pipeline {

	mixing := func(cfg drift.Config) bool { return cfg.TurbulentMixing }

	return &Pipeline{stages: []stage{
		{"age", always, accrueAge},
		{"advect_current", always, current.Advect},
		{"advect_wind", always, wind.Advect},
		{"terminal_velocity", mixing, func(e *drift.Ensemble, env *drift.Environment, _ drift.Config, _ float64) {
			terminal.Update(e, env)
		}},
		{"vertical_mixing", mixing, func(e *drift.Ensemble, env *drift.Environment, cfg drift.Config, dt float64) {
			mixer.Mix(e, env, cfg.Mixing, dt)
		}},
		{"vertical_advection", func(cfg drift.Config) bool { return cfg.VerticalAdvection },
			func(e *drift.Ensemble, env *drift.Environment, _ drift.Config, dt float64) {
				vertical.Advect(e, env, dt)
			}},
	}}
}

// Step runs the enabled stages in order, then the two deactivation
// checks. The ensemble is mutated in place; env and cfg are read-only.
func (p *Pipeline) Step(e *drift.Ensemble, env *drift.Environment, cfg drift.Config, dt float64) {
	for _, s := range p.stages {
		if s.enabled(cfg) {
			s.apply(e, env, cfg, dt)
		}
	}

	p.strand(e, env)
	if cfg.MaxAgeSeconds != nil {
		p.retire(e, *cfg.MaxAgeSeconds)
	}
	p.steps++
}

// Steps returns the number of completed Step calls, the step index
// recorded on deactivated particles.
func (p *Pipeline) Steps() int { return p.steps }

// StageNames lists the pipeline's sub-steps in execution order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.name
	}
	return names
}

func accrueAge(e *drift.Ensemble, _ *drift.Environment, _ drift.Config, dt float64) {
	drift.ParallelFor(e.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if e.Status[i].Active() {
				e.AgeSeconds[i] += dt
			}
		}
	})
}

// strand deactivates particles whose position reports land, after all
// position updates for the step have been applied.
func (p *Pipeline) strand(e *drift.Ensemble, env *drift.Environment) {
	for i := range e.Status {
		if !e.Status[i].Active() {
			continue
		}
		var onLand bool
		if p.Land != nil {
			onLand = p.Land(e.X[i], e.Y[i])
		} else if env.LandMask != nil {
			onLand = env.LandMask[i] == 1
		}
		if onLand {
			e.Deactivate(i, drift.StatusStranded, p.steps)
		}
	}
}

func (p *Pipeline) retire(e *drift.Ensemble, maxAge float64) {
	for i := range e.Status {
		if e.Status[i].Active() && e.AgeSeconds[i] >= maxAge {
			e.Deactivate(i, drift.StatusRetired, p.steps)
		}
	}
}
