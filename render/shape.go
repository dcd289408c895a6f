package render

import "github.com/lixenwraith/crystal-shard/vmath"

// FillDiamond draws a rhombus of the given size centered at (cx, cy), rotated by angle radians
// The left half takes c1 and the right half c2
func FillDiamond(s Surface, cx, cy, size, angle float64, c1, c2 RGB, alpha float64) {
	h := size / 2
	center := vmath.Pt(cx, cy)
	top := vmath.Pt(0, -h).Rotate(angle).Add(center)
	right := vmath.Pt(h, 0).Rotate(angle).Add(center)
	bottom := vmath.Pt(0, h).Rotate(angle).Add(center)
	left := vmath.Pt(-h, 0).Rotate(angle).Add(center)

	s.Triangle(top, bottom, left, c1, alpha)
	s.Triangle(top, right, bottom, c2, alpha)
}
