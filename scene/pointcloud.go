package scene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/crystal-shard/render"
	"github.com/lixenwraith/crystal-shard/vmath"
)

// PointCloud is a static set of points displaced each frame by a shared time value
type PointCloud struct {
	Positions []mgl64.Vec3
	Colors    []render.RGB
	Sizes     []float64
	Speeds    []float64
	Time      float64
}

// NewPointCloud scatters p.Count points uniformly in a cube of edge p.Spread
func NewPointCloud(rng *rand.Rand, p PointCloudParams) *PointCloud {
	n := max(p.Count, 0)
	pc := &PointCloud{
		Positions: make([]mgl64.Vec3, n),
		Colors:    make([]render.RGB, n),
		Sizes:     make([]float64, n),
		Speeds:    make([]float64, n),
	}
	half := p.Spread / 2
	for i := 0; i < n; i++ {
		pc.Positions[i] = mgl64.Vec3{
			vmath.RandSigned(rng, half),
			vmath.RandSigned(rng, half),
			vmath.RandSigned(rng, half),
		}
		if len(p.Palette) > 0 {
			pc.Colors[i] = p.Palette[rng.Intn(len(p.Palette))]
		} else {
			pc.Colors[i] = render.RGBWhite
		}
		pc.Sizes[i] = vmath.RandRange(rng, p.SizeMin, p.SizeMax)
		pc.Speeds[i] = vmath.RandRange(rng, p.SpeedMin, p.SpeedMax)
	}
	return pc
}

// Len returns the number of points
func (pc *PointCloud) Len() int {
	return len(pc.Positions)
}

// Displaced returns point i after the time-based wave offset; stored positions never change
func (pc *PointCloud) Displaced(i int) mgl64.Vec3 {
	p := pc.Positions[i]
	phase := pc.Time * pc.Speeds[i]
	return mgl64.Vec3{
		p.X() + math.Cos(phase+p.Y()*0.01)*10,
		p.Y() + math.Sin(phase+p.X()*0.01)*10,
		p.Z(),
	}
}
