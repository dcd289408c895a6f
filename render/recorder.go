package render

import "github.com/lixenwraith/crystal-shard/vmath"

// OpKind identifies a recorded drawing call
type OpKind uint8

const (
	OpClear OpKind = iota
	OpLine
	OpCircle
	OpTriangle
	OpLabel
)

// Op is one recorded drawing call with its principal arguments
type Op struct {
	Kind   OpKind
	Points [3]vmath.Point
	R      float64
	Alpha  float64
	Width  float64
	Glow   float64
	Colors [2]RGB
	Text   string
}

// Recorder is a Surface that stores calls instead of drawing them
type Recorder struct {
	width, height int
	Ops           []Op
}

// NewRecorder creates an empty recorder reporting the given size
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) Size() (int, int) {
	return r.width, r.height
}

func (r *Recorder) Resize(width, height int) {
	r.width, r.height = width, height
}

// Clear drops previously recorded ops and records the clear itself
func (r *Recorder) Clear() {
	r.Ops = append(r.Ops[:0], Op{Kind: OpClear})
}

func (r *Recorder) Line(x0, y0, x1, y1 float64, from, to RGB, alpha, width float64) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpLine,
		Points: [3]vmath.Point{{X: x0, Y: y0}, {X: x1, Y: y1}},
		Alpha:  alpha,
		Width:  width,
		Colors: [2]RGB{from, to},
	})
}

func (r *Recorder) Circle(cx, cy, rad float64, c RGB, alpha, glow float64) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpCircle,
		Points: [3]vmath.Point{{X: cx, Y: cy}},
		R:      rad,
		Alpha:  alpha,
		Glow:   glow,
		Colors: [2]RGB{c},
	})
}

func (r *Recorder) Triangle(a, b, c vmath.Point, col RGB, alpha float64) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpTriangle,
		Points: [3]vmath.Point{a, b, c},
		Alpha:  alpha,
		Colors: [2]RGB{col},
	})
}

func (r *Recorder) Label(x, y float64, s string, c RGB) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpLabel,
		Points: [3]vmath.Point{{X: x, Y: y}},
		Colors: [2]RGB{c},
		Text:   s,
	})
}

// Count returns the number of recorded ops of kind k
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Reset forgets every op without recording a clear
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
