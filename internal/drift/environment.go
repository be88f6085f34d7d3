package drift

// Fallback values used by the sampling layer when a field component is
// unavailable at a particle position.
const (
	FallbackDiffusivity   = 0.02  // m^2/s
	FallbackSeaFloorDepth = 10000 // m
)

// Depth range, in metres, that diffusivity profiles must cover.
const (
	ProfileDepthMin = -120.0
	ProfileDepthMax = 0.0
)

// Environment is a read-only per-step snapshot of the ambient fields
// evaluated at each particle's pre-step position. The step pipeline reads
// it and never writes it; a fresh snapshot is sampled before every step.
type Environment struct {
	CurrentU, CurrentV []float64 // ambient current, m/s
	WindU, WindV       []float64 // surface wind, m/s
	VerticalVelocity   []float64 // upward water velocity, m/s
	SeaFloorDepth      []float64 // positive metres below surface
	LandMask           []float64 // 1 on land, 0 at sea

	Diffusivity Profile
}

func NewEnvironment(n int) *Environment {
	return &Environment{
		CurrentU:         make([]float64, n),
		CurrentV:         make([]float64, n),
		WindU:            make([]float64, n),
		WindV:            make([]float64, n),
		VerticalVelocity: make([]float64, n),
		SeaFloorDepth:    make([]float64, n),
		LandMask:         make([]float64, n),
	}
}

// Profile holds a vertical diffusivity profile per particle: Values[l][i]
// is the diffusivity for particle i at depth Depths[l]. Depths are
// ascending (deepest first, surface last).
type Profile struct {
	Depths []float64
	Values [][]float64
}

// At linearly interpolates the profile for particle i at depth z,
// clamping outside the covered range. An empty profile returns the
// fallback diffusivity.
func (p Profile) At(i int, z float64) float64 {
	if len(p.Depths) == 0 {
		return FallbackDiffusivity
	}
	if z <= p.Depths[0] {
		return p.Values[0][i]
	}
	last := len(p.Depths) - 1
	if z >= p.Depths[last] {
		return p.Values[last][i]
	}
	for l := 1; l <= last; l++ {
		if z <= p.Depths[l] {
			z0, z1 := p.Depths[l-1], p.Depths[l]
			w := (z - z0) / (z1 - z0)
			return p.Values[l-1][i]*(1-w) + p.Values[l][i]*w
		}
	}
	return p.Values[last][i]
}
