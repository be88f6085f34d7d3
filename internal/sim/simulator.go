package sim

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/san-kum/driftsim/internal/drift"
	"github.com/san-kum/driftsim/internal/field"
	"github.com/san-kum/driftsim/internal/step"
)

// Metric accumulates an ensemble statistic over a run.
type Metric interface {
	Name() string
	Observe(e *drift.Ensemble, t float64)
	Value() float64
	Reset()
}

// Observer is called after every completed step.
type Observer interface {
	OnStep(e *drift.Ensemble, t float64)
}

// Domain bounds the horizontal plane; particles leaving it are
// deactivated with StatusOutside.
type Domain struct {
	X0, X1, Y0, Y1 float64
}

func (d Domain) Contains(x, y float64) bool {
	return x >= d.X0 && x <= d.X1 && y >= d.Y0 && y <= d.Y1
}

// Config controls one run of the simulator.
type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
	// RecordEvery stores an ensemble snapshot every k steps; 0 disables
	// trajectory recording.
	RecordEvery int
	// Domain, when non-nil, deactivates particles that leave it.
	Domain *Domain
}

// Result collects the outcome of a run.
type Result struct {
	Times       []float64
	Snapshots   []*drift.Ensemble
	Metrics     map[string]float64
	StepsTaken  int
	Deactivated map[drift.Status]int
}

// Simulator drives the step pipeline over a full run: sample the
// environment at the current positions, advance one step, record and
// observe, until the duration is spent or no particle remains active.
type Simulator struct {
	pipeline  *step.Pipeline
	sampler   *field.Sampler
	metrics   []Metric
	observers []Observer
	log       zerolog.Logger
}

func New(pipeline *step.Pipeline, sampler *field.Sampler, log zerolog.Logger) *Simulator {
	return &Simulator{
		pipeline: pipeline,
		sampler:  sampler,
		log:      log,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", drift.ErrParameterBounds, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", drift.ErrParameterBounds, cfg.Duration)
	}
	return nil
}

// Run advances the ensemble until cfg.Duration is spent, the context is
// cancelled, or every particle is inactive. The ensemble is mutated in
// place; snapshots in the result are clones.
func (s *Simulator) Run(ctx context.Context, e *drift.Ensemble, dcfg drift.Config, cfg Config) (*Result, error) {
	if err := s.validate(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Metrics:     make(map[string]float64),
		Deactivated: make(map[drift.Status]int),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if e.NumActive() == 0 {
			s.log.Info().Int("step", i).Msg("no active particles left, stopping early")
			break
		}

		env := s.sampler.Sample(e)
		s.pipeline.Step(e, env, dcfg, cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		if cfg.Domain != nil {
			s.deactivateOutside(e, *cfg.Domain)
		}

		if !e.IsValid() {
			return result, fmt.Errorf("%w: at t=%.1f", drift.ErrInvalidState, t)
		}

		for _, m := range s.metrics {
			m.Observe(e, t)
		}
		for _, o := range s.observers {
			o.OnStep(e, t)
		}

		if cfg.RecordEvery > 0 && (i+1)%cfg.RecordEvery == 0 {
			result.Times = append(result.Times, t)
			result.Snapshots = append(result.Snapshots, e.Clone())
		}

		if i%100 == 0 {
			s.log.Debug().
				Int("step", i).
				Float64("t", t).
				Int("active", e.NumActive()).
				Msg("step complete")
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	for _, st := range e.Status {
		if !st.Active() {
			result.Deactivated[st]++
		}
	}

	s.log.Info().
		Int("steps", result.StepsTaken).
		Int("active", e.NumActive()).
		Int("stranded", result.Deactivated[drift.StatusStranded]).
		Int("retired", result.Deactivated[drift.StatusRetired]).
		Msg("run finished")

	return result, nil
}

// deactivateOutside drops particles beyond the domain bounds. Runs after
// the step's own deactivation checks, so stranding keeps priority.
func (s *Simulator) deactivateOutside(e *drift.Ensemble, d Domain) {
	for i := range e.Status {
		if e.Status[i].Active() && !d.Contains(e.X[i], e.Y[i]) {
			e.Deactivate(i, drift.StatusOutside, s.pipeline.Steps()-1)
		}
	}
}

// NewRNG returns the run's particle-seeding RNG for a seed value.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
