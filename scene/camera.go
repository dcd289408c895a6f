package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/crystal-shard/vmath"
)

// Camera is a perspective camera looking at Target
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	Fov      float64 // vertical, degrees
	Aspect   float64
	Near     float64
	Far      float64
}

// NewCamera places a camera at distance on +Z looking at the origin
func NewCamera(p CameraParams, aspect float64) *Camera {
	return &Camera{
		Position: mgl64.Vec3{0, 0, p.Distance},
		Up:       mgl64.Vec3{0, 1, 0},
		Fov:      p.Fov,
		Aspect:   aspect,
		Near:     p.Near,
		Far:      p.Far,
	}
}

// Projection returns the perspective matrix for the current aspect
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// View returns the world-to-camera matrix
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// Viewport captures one frame's view-projection for a surface of w x h units
func (c *Camera) Viewport(w, h float64) Viewport {
	return Viewport{
		view: c.View(),
		vp:   c.Projection().Mul4(c.View()),
		w:    w,
		h:    h,
		near: c.Near,
		far:  c.Far,
		// Pixels per world unit at distance one
		focal: h / 2 / tanHalf(c.Fov),
	}
}

// Viewport projects world points onto a surface
type Viewport struct {
	view  mgl64.Mat4
	vp    mgl64.Mat4
	w, h  float64
	near  float64
	far   float64
	focal float64
}

// Project returns the surface position and view depth of p
// ok is false when p lies outside the near/far range
func (v Viewport) Project(p mgl64.Vec3) (pt vmath.Point, depth float64, ok bool) {
	clip := v.vp.Mul4x1(p.Vec4(1))
	depth = clip.W()
	if depth < v.near || depth > v.far {
		return vmath.Point{}, depth, false
	}
	ndcX := clip.X() / depth
	ndcY := clip.Y() / depth
	return vmath.Pt((ndcX+1)/2*v.w, (1-ndcY)/2*v.h), depth, true
}

// ToView transforms a world point into camera space, camera looks down -Z
func (v Viewport) ToView(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, v.view)
}

// ScreenSize converts a world-space size at depth to surface units
func (v Viewport) ScreenSize(size, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return size * v.focal / depth
}
