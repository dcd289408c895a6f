package render

import (
	"math"

	"github.com/lixenwraith/crystal-shard/vmath"
)

// Canvas rasterizes Surface calls into a RenderBuffer
type Canvas struct {
	buf    *RenderBuffer
	labels []Label
}

// NewCanvas creates a transparent canvas of width x height pixels
func NewCanvas(width, height int) *Canvas {
	return &Canvas{buf: NewRenderBuffer(width, height)}
}

// Buffer exposes the backing pixels for compositing
func (c *Canvas) Buffer() *RenderBuffer {
	return c.buf
}

// Labels returns the text runs drawn since the last Clear
func (c *Canvas) Labels() []Label {
	return c.labels
}

func (c *Canvas) Size() (int, int) {
	return c.buf.Size()
}

func (c *Canvas) Resize(width, height int) {
	c.buf.Resize(width, height)
	c.labels = c.labels[:0]
}

func (c *Canvas) Clear() {
	c.buf.Clear()
	c.labels = c.labels[:0]
}

// Line uses a DDA walk; widths below one pixel reduce coverage instead of thickness
func (c *Canvas) Line(x0, y0, x1, y1 float64, from, to RGB, alpha, width float64) {
	if alpha <= 0 || width <= 0 {
		return
	}
	dx := x1 - x0
	dy := y1 - y0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		c.buf.Set(int(x0), int(y0), from, BlendAlpha, alpha)
		return
	}

	coverage := alpha * math.Min(width, 1)
	half := int(math.Max(width, 1)-1) / 2
	sx := dx / float64(steps)
	sy := dy / float64(steps)
	steep := math.Abs(dy) > math.Abs(dx)

	x, y := x0, y0
	for i := 0; i <= steps; i++ {
		col := Lerp(from, to, float64(i)/float64(steps))
		px, py := int(math.Floor(x)), int(math.Floor(y))
		for o := -half; o <= half; o++ {
			if steep {
				c.buf.Set(px+o, py, col, BlendAlpha, coverage)
			} else {
				c.buf.Set(px, py+o, col, BlendAlpha, coverage)
			}
		}
		x += sx
		y += sy
	}
}

// Circle fills with antialiased coverage, glow falls off quadratically beyond r
func (c *Canvas) Circle(cx, cy, r float64, col RGB, alpha, glow float64) {
	if alpha <= 0 || r < 0 {
		return
	}
	reach := r + math.Max(glow, 0)
	w, h := c.buf.Size()
	x0 := max(int(math.Floor(cx-reach)), 0)
	x1 := min(int(math.Ceil(cx+reach)), w-1)
	y0 := max(int(math.Floor(cy-reach)), 0)
	y1 := min(int(math.Ceil(cy+reach)), h-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := vmath.Dist(float64(x)+0.5, float64(y)+0.5, cx, cy)
			if cov := vmath.Clamp01(r - d + 0.5); cov > 0 {
				c.buf.Set(x, y, col, BlendAlpha, alpha*cov)
				continue
			}
			if glow > 0 && d < reach {
				f := 1 - (d-r)/glow
				c.buf.Set(x, y, col, BlendAdd, alpha*f*f*0.5)
			}
		}
	}
}

// Triangle fills pixel centers inside abc, either winding
func (c *Canvas) Triangle(a, b, p vmath.Point, col RGB, alpha float64) {
	if alpha <= 0 {
		return
	}
	area := edge(a, b, p)
	if area == 0 {
		return
	}
	w, h := c.buf.Size()
	minX := max(int(math.Floor(math.Min(a.X, math.Min(b.X, p.X)))), 0)
	maxX := min(int(math.Ceil(math.Max(a.X, math.Max(b.X, p.X)))), w-1)
	minY := max(int(math.Floor(math.Min(a.Y, math.Min(b.Y, p.Y)))), 0)
	maxY := min(int(math.Ceil(math.Max(a.Y, math.Max(b.Y, p.Y)))), h-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			q := vmath.Pt(float64(x)+0.5, float64(y)+0.5)
			w0 := edge(b, p, q) / area
			w1 := edge(p, a, q) / area
			w2 := edge(a, b, q) / area
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				c.buf.Set(x, y, col, BlendAlpha, alpha)
			}
		}
	}
}

func (c *Canvas) Label(x, y float64, s string, col RGB) {
	if s == "" {
		return
	}
	c.labels = append(c.labels, Label{X: int(x), Y: int(y), Text: s, C: col})
}

// edge returns twice the signed area of abc
func edge(a, b, c vmath.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
