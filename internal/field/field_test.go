package field

import (
	"math"
	"testing"

	"github.com/san-kum/driftsim/internal/drift"
)

func TestSamplerFallbacks(t *testing.T) {
	s := &Sampler{} // nothing attached
	e := drift.NewEnsemble(3)
	e.X[1], e.Y[1], e.Z[1] = 5000, -3000, -10

	env := s.Sample(e)

	for i := 0; i < 3; i++ {
		if env.CurrentU[i] != 0 || env.CurrentV[i] != 0 {
			t.Errorf("particle %d: expected zero current fallback", i)
		}
		if env.WindU[i] != 0 || env.WindV[i] != 0 {
			t.Errorf("particle %d: expected zero wind fallback", i)
		}
		if env.VerticalVelocity[i] != 0 {
			t.Errorf("particle %d: expected zero vertical velocity fallback", i)
		}
		if env.SeaFloorDepth[i] != drift.FallbackSeaFloorDepth {
			t.Errorf("particle %d: expected sea floor fallback %d, got %f",
				i, int(drift.FallbackSeaFloorDepth), env.SeaFloorDepth[i])
		}
		if env.LandMask[i] != 0 {
			t.Errorf("particle %d: expected open water fallback", i)
		}
	}

	if got := env.Diffusivity.At(0, -10); got != drift.FallbackDiffusivity {
		t.Errorf("expected diffusivity fallback %f, got %f", drift.FallbackDiffusivity, got)
	}
}

func TestSamplerProfileCoversRequiredRange(t *testing.T) {
	s := &Sampler{Diff: &Pycnocline{SurfaceK: 0.05, DeepK: 1e-4, Depth: 20, Width: 5}}
	env := s.Sample(drift.NewEnsemble(1))

	depths := env.Diffusivity.Depths
	if len(depths) == 0 {
		t.Fatal("empty profile")
	}
	if depths[0] != drift.ProfileDepthMin {
		t.Errorf("profile must start at %f, got %f", drift.ProfileDepthMin, depths[0])
	}
	if depths[len(depths)-1] != drift.ProfileDepthMax {
		t.Errorf("profile must end at %f, got %f", drift.ProfileDepthMax, depths[len(depths)-1])
	}

	// mixed layer above the pycnocline, quiet below
	if env.Diffusivity.At(0, -5) < env.Diffusivity.At(0, -60) {
		t.Error("expected higher diffusivity in the mixed layer than at depth")
	}
}

func TestSamplerEvaluatesAtParticlePositions(t *testing.T) {
	s := &Sampler{
		Currents: &ShearChannel{PeakU: 2, HalfWidth: 1000},
		Coast:    &CoastEast{CoastX: 100},
	}

	e := drift.NewEnsemble(3)
	e.Y[0] = 0    // channel centre, full speed
	e.Y[1] = 1000 // channel wall, no flow
	e.X[2] = 200  // on land

	env := s.Sample(e)

	if math.Abs(env.CurrentU[0]-2) > 1e-9 {
		t.Errorf("expected peak current 2 at centre, got %f", env.CurrentU[0])
	}
	if env.CurrentU[1] != 0 {
		t.Errorf("expected no flow at wall, got %f", env.CurrentU[1])
	}
	if env.LandMask[2] != 1 {
		t.Errorf("expected land mask 1 beyond the coast, got %f", env.LandMask[2])
	}
	if env.LandMask[0] != 0 {
		t.Errorf("expected open water at centre, got %f", env.LandMask[0])
	}
}

func TestEddyVelocityField(t *testing.T) {
	eddy := &Eddy{Radius: 1000, Strength: 1}

	if u, v := eddy.Current(0, 0, 0); u != 0 || v != 0 {
		t.Errorf("expected stagnant centre, got (%f, %f)", u, v)
	}

	// peak tangential speed at r = Radius, counter-clockwise
	u, v := eddy.Current(1000, 0, 0)
	if math.Abs(u) > 1e-9 || math.Abs(v-1) > 1e-9 {
		t.Errorf("expected (0, 1) at the radius, got (%f, %f)", u, v)
	}

	// decays far outside
	u, v = eddy.Current(10000, 0, 0)
	if math.Hypot(u, v) > 0.01 {
		t.Errorf("expected decayed flow far from the eddy, got speed %f", math.Hypot(u, v))
	}
}

func TestShelfBathymetry(t *testing.T) {
	shelf := &Shelf{DeepDepth: 300, CoastDepth: 5, CoastX: 0, Width: 10000}

	if d := shelf.SeaFloorDepth(-50000, 0); d != 300 {
		t.Errorf("expected deep water offshore, got %f", d)
	}
	if d := shelf.SeaFloorDepth(0, 0); d != 5 {
		t.Errorf("expected coast depth at the coastline, got %f", d)
	}
	if d := shelf.SeaFloorDepth(-5000, 0); d <= 5 || d >= 300 {
		t.Errorf("expected intermediate depth on the shelf, got %f", d)
	}
}
