package metrics

import (
	"math"

	"github.com/san-kum/driftsim/internal/drift"
)

// ActiveFraction reports the time-averaged fraction of particles still
// active.
type ActiveFraction struct {
	samples int
	total   float64
}

func NewActiveFraction() *ActiveFraction { return &ActiveFraction{} }

func (m *ActiveFraction) Name() string { return "active_fraction" }

func (m *ActiveFraction) Observe(e *drift.Ensemble, t float64) {
	if e.Len() == 0 {
		return
	}
	m.total += float64(e.NumActive()) / float64(e.Len())
	m.samples++
}

func (m *ActiveFraction) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *ActiveFraction) Reset() { m.samples, m.total = 0, 0 }

// StrandedCount reports the final number of stranded particles.
type StrandedCount struct {
	count int
}

func NewStrandedCount() *StrandedCount { return &StrandedCount{} }

func (m *StrandedCount) Name() string { return "stranded" }

func (m *StrandedCount) Observe(e *drift.Ensemble, t float64) {
	m.count = e.CountStatus(drift.StatusStranded)
}

func (m *StrandedCount) Value() float64 { return float64(m.count) }
func (m *StrandedCount) Reset()         { m.count = 0 }

// Displacement reports the horizontal distance, in metres, between the
// active centre of mass and its position at the first observation.
type Displacement struct {
	started  bool
	x0, y0   float64
	distance float64
}

func NewDisplacement() *Displacement { return &Displacement{} }

func (m *Displacement) Name() string { return "com_displacement" }

func (m *Displacement) Observe(e *drift.Ensemble, t float64) {
	x, y, n := 0.0, 0.0, 0
	for i := range e.X {
		if e.Status[i].Active() {
			x += e.X[i]
			y += e.Y[i]
			n++
		}
	}
	if n == 0 {
		return
	}
	x /= float64(n)
	y /= float64(n)
	if !m.started {
		m.x0, m.y0 = x, y
		m.started = true
	}
	m.distance = math.Hypot(x-m.x0, y-m.y0)
}

func (m *Displacement) Value() float64 { return m.distance }
func (m *Displacement) Reset()         { *m = Displacement{} }

// MeanDepth reports the final mean depth of active particles, metres
// (negative down).
type MeanDepth struct {
	depth float64
}

func NewMeanDepth() *MeanDepth { return &MeanDepth{} }

func (m *MeanDepth) Name() string { return "mean_depth" }

func (m *MeanDepth) Observe(e *drift.Ensemble, t float64) {
	z, n := 0.0, 0
	for i := range e.Z {
		if e.Status[i].Active() {
			z += e.Z[i]
			n++
		}
	}
	if n > 0 {
		m.depth = z / float64(n)
	}
}

func (m *MeanDepth) Value() float64 { return m.depth }
func (m *MeanDepth) Reset()         { m.depth = 0 }
