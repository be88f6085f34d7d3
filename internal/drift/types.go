package drift

import "math"

// Status is the lifecycle state of a single particle. Transitions are
// one-way: once a particle leaves StatusActive it keeps its terminal
// status for the rest of the run.
type Status uint8

const (
	StatusActive Status = iota
	StatusStranded
	StatusRetired
	StatusOutside
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusStranded:
		return "stranded"
	case StatusRetired:
		return "retired"
	case StatusOutside:
		return "outside"
	default:
		return "unknown"
	}
}

// Active reports whether a particle with this status still takes part in
// physical updates.
func (s Status) Active() bool { return s == StatusActive }

// Ensemble holds the full particle set for one run as parallel attribute
// arrays. Indexing is stable: a particle keeps its slot for the whole run,
// deactivation only flips its Status.
type Ensemble struct {
	X, Y []float64 // horizontal position, metres in a local tangent plane
	Z    []float64 // depth, metres, z <= 0 with 0 at the surface

	AgeSeconds       []float64
	WindDriftFactor  []float64 // in [0,1], fixed at seeding
	TerminalVelocity []float64 // m/s, positive upward, recomputed per step

	Status []Status

	// DeactivatedStep records the step index at which a particle left the
	// active set, -1 while active.
	DeactivatedStep []int
}

func NewEnsemble(n int) *Ensemble {
	e := &Ensemble{
		X:                make([]float64, n),
		Y:                make([]float64, n),
		Z:                make([]float64, n),
		AgeSeconds:       make([]float64, n),
		WindDriftFactor:  make([]float64, n),
		TerminalVelocity: make([]float64, n),
		Status:           make([]Status, n),
		DeactivatedStep:  make([]int, n),
	}
	for i := range e.DeactivatedStep {
		e.DeactivatedStep[i] = -1
	}
	return e
}

func (e *Ensemble) Len() int { return len(e.X) }

func (e *Ensemble) NumActive() int {
	n := 0
	for _, s := range e.Status {
		if s.Active() {
			n++
		}
	}
	return n
}

// Deactivate moves particle i out of the active set. It is idempotent:
// an already-inactive particle keeps its original status and step.
func (e *Ensemble) Deactivate(i int, status Status, step int) {
	if !e.Status[i].Active() {
		return
	}
	e.Status[i] = status
	e.DeactivatedStep[i] = step
}

// DeactivateWhere deactivates every active particle for which mask is true.
func (e *Ensemble) DeactivateWhere(mask []bool, status Status, step int) {
	for i, m := range mask {
		if m {
			e.Deactivate(i, status, step)
		}
	}
}

// CountStatus returns the number of particles currently in the given status.
func (e *Ensemble) CountStatus(status Status) int {
	n := 0
	for _, s := range e.Status {
		if s == status {
			n++
		}
	}
	return n
}

func (e *Ensemble) Clone() *Ensemble {
	c := NewEnsemble(e.Len())
	copy(c.X, e.X)
	copy(c.Y, e.Y)
	copy(c.Z, e.Z)
	copy(c.AgeSeconds, e.AgeSeconds)
	copy(c.WindDriftFactor, e.WindDriftFactor)
	copy(c.TerminalVelocity, e.TerminalVelocity)
	copy(c.Status, e.Status)
	copy(c.DeactivatedStep, e.DeactivatedStep)
	return c
}

// IsValid reports whether all position attributes are finite.
func (e *Ensemble) IsValid() bool {
	for i := range e.X {
		if math.IsNaN(e.X[i]) || math.IsInf(e.X[i], 0) ||
			math.IsNaN(e.Y[i]) || math.IsInf(e.Y[i], 0) ||
			math.IsNaN(e.Z[i]) || math.IsInf(e.Z[i], 0) {
			return false
		}
	}
	return true
}
