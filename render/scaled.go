package render

import (
	"math"

	"github.com/lixenwraith/crystal-shard/vmath"
)

// Scaled presents a surface in logical units that are factor pixels wide
// A low-resolution terminal can host components tuned for browser-sized viewports
type Scaled struct {
	Surface
	factor float64
}

// NewScaled wraps s; factor <= 0 is treated as 1
func NewScaled(s Surface, factor float64) *Scaled {
	if factor <= 0 {
		factor = 1
	}
	return &Scaled{Surface: s, factor: factor}
}

// Factor returns pixels per logical unit
func (s *Scaled) Factor() float64 {
	return s.factor
}

// Size reports logical dimensions
func (s *Scaled) Size() (int, int) {
	w, h := s.Surface.Size()
	return int(math.Round(float64(w) / s.factor)), int(math.Round(float64(h) / s.factor))
}

func (s *Scaled) Line(x0, y0, x1, y1 float64, from, to RGB, alpha, width float64) {
	f := s.factor
	s.Surface.Line(x0*f, y0*f, x1*f, y1*f, from, to, alpha, width*f)
}

func (s *Scaled) Circle(cx, cy, r float64, c RGB, alpha, glow float64) {
	f := s.factor
	// Sub-pixel discs still show as a single dot
	s.Surface.Circle(cx*f, cy*f, math.Max(r*f, 0.5), c, alpha, glow*f)
}

func (s *Scaled) Triangle(a, b, c vmath.Point, col RGB, alpha float64) {
	f := s.factor
	s.Surface.Triangle(a.Scale(f), b.Scale(f), c.Scale(f), col, alpha)
}

func (s *Scaled) Label(x, y float64, text string, c RGB) {
	s.Surface.Label(x*s.factor, y*s.factor, text, c)
}

// Resize takes logical dimensions and forwards pixels when the inner surface resizes
func (s *Scaled) Resize(width, height int) {
	if r, ok := s.Surface.(Resizer); ok {
		r.Resize(int(math.Round(float64(width)*s.factor)), int(math.Round(float64(height)*s.factor)))
	}
}
