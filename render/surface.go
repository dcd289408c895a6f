package render

import "github.com/lixenwraith/crystal-shard/vmath"

// Surface is the 2D drawing contract shared by every visual component
// Coordinates are in surface units, origin top-left, y down
type Surface interface {
	Size() (int, int)
	Clear()
	// Line draws a segment whose color runs from one end to the other
	Line(x0, y0, x1, y1 float64, from, to RGB, alpha, width float64)
	// Circle fills a disc, glow > 0 adds an additive halo of that radius
	Circle(cx, cy, r float64, c RGB, alpha, glow float64)
	Triangle(a, b, c vmath.Point, col RGB, alpha float64)
	Label(x, y float64, s string, c RGB)
}

// Resizer is implemented by surfaces whose dimensions can be changed in place
type Resizer interface {
	Resize(width, height int)
}

// Label is a text run anchored at a pixel position
type Label struct {
	X, Y int
	Text string
	C    RGB
}
