package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/driftsim/internal/drift"
)

func TestActiveFraction(t *testing.T) {
	m := NewActiveFraction()
	e := drift.NewEnsemble(4)

	m.Observe(e, 0) // 4/4
	e.Deactivate(0, drift.StatusStranded, 0)
	e.Deactivate(1, drift.StatusStranded, 0)
	m.Observe(e, 600) // 2/4

	if got := m.Value(); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("expected 0.75, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestStrandedCountTracksFinalState(t *testing.T) {
	m := NewStrandedCount()
	e := drift.NewEnsemble(3)

	m.Observe(e, 0)
	e.Deactivate(2, drift.StatusStranded, 1)
	m.Observe(e, 600)

	if m.Value() != 1 {
		t.Errorf("expected 1 stranded, got %f", m.Value())
	}
}

func TestDisplacementFromFirstObservation(t *testing.T) {
	m := NewDisplacement()
	e := drift.NewEnsemble(2)
	e.X[0], e.X[1] = 0, 100

	m.Observe(e, 0) // centre of mass at (50, 0)
	e.X[0], e.X[1] = 300, 400
	e.Y[0], e.Y[1] = 400, 400
	m.Observe(e, 600) // centre at (350, 400)

	if got := m.Value(); math.Abs(got-500) > 1e-9 {
		t.Errorf("expected displacement 500, got %f", got)
	}
}

func TestDisplacementIgnoresInactive(t *testing.T) {
	m := NewDisplacement()
	e := drift.NewEnsemble(2)
	e.X[1] = 1e9
	e.Deactivate(1, drift.StatusOutside, 0)

	m.Observe(e, 0)
	e.X[0] = 10
	m.Observe(e, 600)

	if got := m.Value(); math.Abs(got-10) > 1e-9 {
		t.Errorf("expected displacement 10, got %f", got)
	}
}

func TestMeanDepth(t *testing.T) {
	m := NewMeanDepth()
	e := drift.NewEnsemble(3)
	e.Z[0], e.Z[1], e.Z[2] = -10, -20, -90
	e.Deactivate(2, drift.StatusRetired, 0)

	m.Observe(e, 0)

	if got := m.Value(); math.Abs(got-(-15)) > 1e-12 {
		t.Errorf("expected mean depth -15, got %f", got)
	}
}
