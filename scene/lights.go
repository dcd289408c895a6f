package scene

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/crystal-shard/render"
	"github.com/lixenwraith/crystal-shard/tween"
)

// AmbientLight lights every face equally
type AmbientLight struct {
	Color     render.RGB
	Intensity float64
}

// DirectionalLight shines from Position toward the origin
type DirectionalLight struct {
	Color     render.RGB
	Intensity float64
	Position  mgl64.Vec3
}

// Direction returns the unit vector from the lit surface toward the light
func (d DirectionalLight) Direction() mgl64.Vec3 {
	if d.Position.Len() == 0 {
		return mgl64.Vec3{0, 0, 1}
	}
	return d.Position.Normalize()
}

// PointLight is a colored light whose position is animated by its own orbit track
type PointLight struct {
	Color     render.RGB
	Intensity float64
	Distance  float64 // zero means no cutoff
	Position  mgl64.Vec3
	Orbit     *tween.Track[mgl64.Vec3]
}

// Step advances the orbit track and moves the light
func (l *PointLight) Step(dt time.Duration) {
	if l.Orbit != nil {
		l.Position = l.Orbit.Advance(dt)
	}
}

// Attenuation returns the falloff factor at distance d
func (l *PointLight) Attenuation(d float64) float64 {
	if l.Distance <= 0 {
		return 1
	}
	f := 1 - d/l.Distance
	if f <= 0 {
		return 0
	}
	return f * f
}

// lerpVec3 interpolates componentwise
func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// newPointLights places lights evenly on a circle, each sliding toward the slot Span radians ahead
// and back on an endless sine yoyo
func newPointLights(p LightParams) []*PointLight {
	n := len(p.PointColors)
	lights := make([]*PointLight, n)
	for i, c := range p.PointColors {
		angle := float64(i) / float64(n) * 2 * math.Pi
		from := mgl64.Vec3{math.Cos(angle) * p.OrbitRadius, math.Sin(angle) * p.OrbitRadius, p.OrbitZ}
		to := mgl64.Vec3{math.Cos(angle+p.OrbitSpan) * p.OrbitRadius, math.Sin(angle+p.OrbitSpan) * p.OrbitRadius, p.OrbitZ}
		lights[i] = &PointLight{
			Color:     c,
			Intensity: p.PointIntensity,
			Distance:  p.PointDistance,
			Position:  from,
			Orbit: tween.New(from, to, lerpVec3, tween.Options{
				Duration: p.OrbitBase + time.Duration(i)*p.OrbitStep,
				Ease:     tween.SineInOut,
				Repeat:   tween.Infinite,
				Yoyo:     true,
			}),
		}
	}
	return lights
}

func tanHalf(fovDeg float64) float64 {
	return math.Tan(mgl64.DegToRad(fovDeg) / 2)
}
