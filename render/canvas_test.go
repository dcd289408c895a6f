package render

import (
	"testing"

	"github.com/lixenwraith/crystal-shard/vmath"
)

func TestCircleCoversCenter(t *testing.T) {
	c := NewCanvas(20, 20)
	c.Circle(10, 10, 3, RGBWhite, 1, 0)

	if p := c.Buffer().At(10, 10); p.A < 0.99 {
		t.Errorf("center alpha = %f, want ~1", p.A)
	}
	if p := c.Buffer().At(0, 0); p.A != 0 {
		t.Errorf("corner alpha = %f, want 0", p.A)
	}
}

func TestCircleGlowReachesBeyondRadius(t *testing.T) {
	plain := NewCanvas(20, 20)
	plain.Circle(10, 10, 2, RGBWhite, 1, 0)
	glowing := NewCanvas(20, 20)
	glowing.Circle(10, 10, 2, RGBWhite, 1, 4)

	if p := plain.Buffer().At(14, 10); p.A != 0 {
		t.Errorf("no-glow alpha at r+2 = %f, want 0", p.A)
	}
	if p := glowing.Buffer().At(14, 10); p.A <= 0 {
		t.Error("glow did not reach r+2")
	}
}

func TestCircleClipsToBuffer(t *testing.T) {
	c := NewCanvas(16, 8)
	// A point sprite right at the near plane projects to an enormous disc
	c.Circle(8, 4, 1e6, RGBWhite, 1, 1e6)

	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			if p := c.Buffer().At(x, y); p.A < 0.99 {
				t.Fatalf("pixel %d,%d alpha = %f, want covered", x, y, p.A)
			}
		}
	}

	off := NewCanvas(16, 8)
	off.Circle(-50, -50, 3, RGBWhite, 1, 2)
	if p := off.Buffer().At(0, 0); p.A != 0 {
		t.Errorf("off-canvas circle touched 0,0: alpha %f", p.A)
	}
}

func TestLineGradientEnds(t *testing.T) {
	c := NewCanvas(30, 5)
	red := RGB{255, 0, 0}
	blue := RGB{0, 0, 255}
	c.Line(0, 2, 29, 2, red, blue, 1, 1)

	left := c.Buffer().At(0, 2)
	right := c.Buffer().At(29, 2)
	if left.C.R < 200 || left.C.B > 50 {
		t.Errorf("left end = %v, want red", left.C)
	}
	if right.C.B < 200 || right.C.R > 50 {
		t.Errorf("right end = %v, want blue", right.C)
	}
}

func TestTriangleEitherWinding(t *testing.T) {
	a, b, p := vmath.Pt(1, 1), vmath.Pt(9, 1), vmath.Pt(5, 9)
	for _, tri := range [][3]vmath.Point{{a, b, p}, {a, p, b}} {
		c := NewCanvas(10, 10)
		c.Triangle(tri[0], tri[1], tri[2], RGBWhite, 1)
		if c.Buffer().At(5, 4).A == 0 {
			t.Errorf("winding %v: interior pixel not filled", tri)
		}
		if c.Buffer().At(0, 9).A != 0 {
			t.Errorf("winding %v: exterior pixel filled", tri)
		}
	}
}

func TestClearDropsLabels(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Label(0, 0, "hi", RGBWhite)
	c.Circle(2, 2, 1, RGBWhite, 1, 0)
	c.Clear()
	if len(c.Labels()) != 0 {
		t.Errorf("labels after Clear = %d, want 0", len(c.Labels()))
	}
	if c.Buffer().At(2, 2).A != 0 {
		t.Error("pixels survived Clear")
	}
}

func TestScaledForwardsPixels(t *testing.T) {
	rec := NewRecorder(100, 50)
	s := NewScaled(rec, 0.5)

	if w, h := s.Size(); w != 200 || h != 100 {
		t.Errorf("Size = (%d, %d), want (200, 100)", w, h)
	}
	s.Circle(10, 20, 4, RGBWhite, 1, 8)
	op := rec.Ops[0]
	if op.Points[0] != vmath.Pt(5, 10) || op.R != 2 || op.Glow != 4 {
		t.Errorf("scaled circle = %+v", op)
	}

	s.Resize(300, 120)
	if w, h := rec.Size(); w != 150 || h != 60 {
		t.Errorf("inner size after Resize = (%d, %d), want (150, 60)", w, h)
	}
}
