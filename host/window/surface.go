package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/lixenwraith/crystal-shard/render"
	"github.com/lixenwraith/crystal-shard/vmath"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	labelFace     = text.NewGoXFace(basicfont.Face7x13)
)

func init() {
	whiteImage.Fill(color.White)
}

// LineHeight is the label row height in pixels
const LineHeight = 14

func nrgba(c render.RGB, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(vmath.Clamp01(alpha)*255 + 0.5)}
}

// ImageSurface draws onto an offscreen ebiten image with the vector package
type ImageSurface struct {
	img  *ebiten.Image
	path vector.Path
	vs   []ebiten.Vertex
	is   []uint16
}

// NewImageSurface allocates a transparent width x height image
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{img: ebiten.NewImage(max(width, 1), max(height, 1))}
}

// Image returns the backing image
func (s *ImageSurface) Image() *ebiten.Image {
	return s.img
}

func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *ImageSurface) Resize(width, height int) {
	if w, h := s.Size(); w == width && h == height {
		return
	}
	s.img.Deallocate()
	s.img = ebiten.NewImage(max(width, 1), max(height, 1))
}

func (s *ImageSurface) Clear() {
	s.img.Clear()
}

// Line strokes two halves so the gradient endpoints keep their colors
func (s *ImageSurface) Line(x0, y0, x1, y1 float64, from, to render.RGB, alpha, width float64) {
	mx, my := (x0+x1)/2, (y0+y1)/2
	w := float32(max(width, 1))
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(mx), float32(my), w, nrgba(from, alpha), true)
	vector.StrokeLine(s.img, float32(mx), float32(my), float32(x1), float32(y1), w, nrgba(to, alpha), true)
}

// Circle fills the disc; glow is a fainter halo under it
func (s *ImageSurface) Circle(cx, cy, r float64, c render.RGB, alpha, glow float64) {
	if glow > 0 {
		vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r+glow), nrgba(c, alpha*0.15), true)
	}
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), nrgba(c, alpha), true)
}

func (s *ImageSurface) Triangle(a, b, c vmath.Point, col render.RGB, alpha float64) {
	s.path.Reset()
	s.path.MoveTo(float32(a.X), float32(a.Y))
	s.path.LineTo(float32(b.X), float32(b.Y))
	s.path.LineTo(float32(c.X), float32(c.Y))
	s.path.Close()

	s.vs, s.is = s.path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	cr, cg, cb := float32(col.R)/255, float32(col.G)/255, float32(col.B)/255
	ca := float32(vmath.Clamp01(alpha))
	for i := range s.vs {
		s.vs[i].SrcX, s.vs[i].SrcY = 1, 1
		s.vs[i].ColorR, s.vs[i].ColorG, s.vs[i].ColorB, s.vs[i].ColorA = cr, cg, cb, ca
	}
	s.img.DrawTriangles(s.vs, s.is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (s *ImageSurface) Label(x, y float64, str string, c render.RGB) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(nrgba(c, 1))
	text.Draw(s.img, str, labelFace, op)
}
