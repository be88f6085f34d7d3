package field

import "math"

// Analytic fields for scenarios and tests. All are steady in time.

// Uniform carries the same velocities everywhere.
type Uniform struct {
	U, V         float64
	WindU, WindV float64
	W            float64
	K            float64 // diffusivity, m^2/s
	Depth        float64 // sea floor depth, m
}

func (f *Uniform) Current(x, y, z float64) (float64, float64) { return f.U, f.V }
func (f *Uniform) Wind(x, y float64) (float64, float64)       { return f.WindU, f.WindV }
func (f *Uniform) VerticalVelocity(x, y, z float64) float64   { return f.W }
func (f *Uniform) Diffusivity(x, y, z float64) float64        { return f.K }
func (f *Uniform) SeaFloorDepth(x, y float64) float64         { return f.Depth }

// Eddy is a Gaussian vortex: solid-body rotation near the centre, decaying
// with radius. Positive Strength rotates counter-clockwise.
type Eddy struct {
	CenterX, CenterY float64
	Radius           float64 // e-folding radius, m
	Strength         float64 // peak tangential speed, m/s
}

func (f *Eddy) Current(x, y, z float64) (float64, float64) {
	dx, dy := x-f.CenterX, y-f.CenterY
	r := math.Hypot(dx, dy)
	if r == 0 {
		return 0, 0
	}
	speed := f.Strength * (r / f.Radius) * math.Exp(0.5*(1-(r*r)/(f.Radius*f.Radius)))
	return -speed * dy / r, speed * dx / r
}

// ShearChannel is a parabolic along-channel current: fastest at y = 0,
// vanishing at the walls y = ±HalfWidth.
type ShearChannel struct {
	PeakU     float64
	HalfWidth float64
}

func (f *ShearChannel) Current(x, y, z float64) (float64, float64) {
	frac := y / f.HalfWidth
	if frac < -1 || frac > 1 {
		return 0, 0
	}
	return f.PeakU * (1 - frac*frac), 0
}

// Pycnocline is a two-layer diffusivity profile: well-mixed above the
// pycnocline depth, quiet below it, with a smooth transition.
type Pycnocline struct {
	SurfaceK float64 // mixed-layer diffusivity
	DeepK    float64 // below-pycnocline diffusivity
	Depth    float64 // pycnocline depth, m (positive)
	Width    float64 // transition half-width, m
}

func (f *Pycnocline) Diffusivity(x, y, z float64) float64 {
	w := f.Width
	if w <= 0 {
		w = 1
	}
	// z is negative down; fraction of the way into the deep layer.
	t := 0.5 * (1 + math.Tanh((-z-f.Depth)/w))
	return f.SurfaceK*(1-t) + f.DeepK*t
}

// Shelf is a bathymetry that shoals linearly toward positive x until it
// reaches the coast depth.
type Shelf struct {
	DeepDepth  float64 // depth far offshore, m
	CoastDepth float64 // depth at the coast, m
	CoastX     float64 // x of the coastline
	Width      float64 // shelf width, m
}

func (f *Shelf) SeaFloorDepth(x, y float64) float64 {
	if x >= f.CoastX {
		return f.CoastDepth
	}
	d := f.CoastX - x
	if d >= f.Width {
		return f.DeepDepth
	}
	return f.CoastDepth + (f.DeepDepth-f.CoastDepth)*d/f.Width
}

// CoastEast marks everything at or beyond x = CoastX as land.
type CoastEast struct {
	CoastX float64
}

func (f *CoastEast) Land(x, y float64) bool { return x >= f.CoastX }
