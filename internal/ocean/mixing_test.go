package ocean

import (
	"math"
	"testing"

	"github.com/san-kum/driftsim/internal/drift"
)

func mixingEnv(n int, seaFloor, k float64) *drift.Environment {
	env := drift.NewEnvironment(n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		env.SeaFloorDepth[i] = seaFloor
		values[i] = k
	}
	env.Diffusivity = drift.Profile{
		Depths: []float64{drift.ProfileDepthMin, drift.ProfileDepthMax},
		Values: [][]float64{values, values},
	}
	return env
}

func defaultMixing() drift.MixingConfig {
	return drift.MixingConfig{Timestep: 10, VerticalResolution: 1, DiffusivityModel: drift.DiffusivityEnvironment}
}

func TestMixerKeepsParticlesInWaterColumn(t *testing.T) {
	m := NewRandomWalkMixer(42)
	e := drift.NewEnsemble(500)
	for i := range e.Z {
		e.Z[i] = -2
	}
	env := mixingEnv(500, 20, 0.5)

	for step := 0; step < 10; step++ {
		m.Mix(e, env, defaultMixing(), 600)
	}

	for i := range e.Z {
		if e.Z[i] > 0 || e.Z[i] < -20 {
			t.Fatalf("particle %d left the water column: z=%f", i, e.Z[i])
		}
	}
}

func TestMixerSpreadsParticles(t *testing.T) {
	m := NewRandomWalkMixer(7)
	e := drift.NewEnsemble(1000)
	for i := range e.Z {
		e.Z[i] = -50
	}
	env := mixingEnv(1000, 100, 0.1)

	m.Mix(e, env, defaultMixing(), 600)

	variance := 0.0
	for _, z := range e.Z {
		d := z + 50
		variance += d * d
	}
	variance /= float64(len(e.Z))

	// random walk variance after time T is roughly 2 K T
	want := 2 * 0.1 * 600
	if variance < want/3 || variance > want*3 {
		t.Errorf("expected depth variance near %f, got %f", want, variance)
	}
}

func TestMixerTerminalVelocityBiasesDrift(t *testing.T) {
	m := NewRandomWalkMixer(99)
	e := drift.NewEnsemble(1000)
	for i := range e.Z {
		e.Z[i] = -50
		e.TerminalVelocity[i] = -0.01 // sinking
	}
	env := mixingEnv(1000, 200, 0.01)

	m.Mix(e, env, defaultMixing(), 600)

	mean := 0.0
	for _, z := range e.Z {
		mean += z
	}
	mean /= float64(len(e.Z))

	// expected drift: w * dt = -6 m on top of the start depth
	if math.Abs(mean-(-56)) > 2 {
		t.Errorf("expected mean depth near -56, got %f", mean)
	}
}

func TestMixerSkipsInactive(t *testing.T) {
	m := NewRandomWalkMixer(3)
	e := drift.NewEnsemble(2)
	e.Z[0], e.Z[1] = -5, -5
	e.Status[1] = drift.StatusStranded

	m.Mix(e, mixingEnv(2, 50, 1.0), defaultMixing(), 600)

	if e.Z[0] == -5 {
		t.Error("active particle did not move under strong mixing")
	}
	if e.Z[1] != -5 {
		t.Errorf("inactive particle moved: %f", e.Z[1])
	}
}

func TestMixerConstantModelIgnoresProfile(t *testing.T) {
	// two mixers with the same seed produce identical walks when the
	// diffusivity they see is identical
	a := NewRandomWalkMixer(11)
	b := NewRandomWalkMixer(11)

	ea := drift.NewEnsemble(100)
	eb := drift.NewEnsemble(100)
	for i := 0; i < 100; i++ {
		ea.Z[i], eb.Z[i] = -10, -10
	}

	cfg := defaultMixing()
	cfg.DiffusivityModel = drift.DiffusivityConstant

	// wildly different profiles; constant model must not see them
	a.Mix(ea, mixingEnv(100, 100, 5.0), cfg, 600)
	b.Mix(eb, mixingEnv(100, 100, 1e-6), cfg, 600)

	for i := 0; i < 100; i++ {
		if ea.Z[i] != eb.Z[i] {
			t.Fatalf("constant diffusivity model consulted the profile at particle %d", i)
		}
	}
}

func TestReflectBounds(t *testing.T) {
	tests := []struct {
		name  string
		z     float64
		floor float64
		want  float64
	}{
		{"inside", -5, -20, -5},
		{"above surface", 3, -20, -3},
		{"below floor", -25, -20, -15},
		{"exactly surface", 0, -20, 0},
		{"exactly floor", -20, -20, -20},
		{"double overshoot clamped", 50, -20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reflect(tt.z, tt.floor); got != tt.want {
				t.Errorf("reflect(%f, %f) = %f, want %f", tt.z, tt.floor, got, tt.want)
			}
		})
	}
}

func TestWaterColumnAdvector(t *testing.T) {
	a := &WaterColumnAdvector{}
	e := drift.NewEnsemble(3)
	e.Z[0], e.Z[1], e.Z[2] = -10, -1, -49

	env := drift.NewEnvironment(3)
	env.VerticalVelocity[0] = 0.005  // rises 3 m
	env.VerticalVelocity[1] = 0.005  // would surface, clamps to 0
	env.VerticalVelocity[2] = -0.005 // would ground, clamps to floor
	for i := 0; i < 3; i++ {
		env.SeaFloorDepth[i] = 50
	}

	a.Advect(e, env, 600)

	if math.Abs(e.Z[0]+7) > 1e-9 {
		t.Errorf("expected z -7, got %f", e.Z[0])
	}
	if e.Z[1] != 0 {
		t.Errorf("expected clamp at surface, got %f", e.Z[1])
	}
	if e.Z[2] != -50 {
		t.Errorf("expected clamp at sea floor, got %f", e.Z[2])
	}
}
