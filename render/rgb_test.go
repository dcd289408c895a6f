package render

import "testing"

func TestBlendExtremes(t *testing.T) {
	dst := RGB{10, 20, 30}
	src := RGB{200, 100, 50}

	if got := Blend(dst, src, 0); got != dst {
		t.Errorf("alpha 0: got %v, want %v", got, dst)
	}
	if got := Blend(dst, src, 1); got != src {
		t.Errorf("alpha 1: got %v, want %v", got, src)
	}
	if got := Blend(RGBBlack, RGBWhite, 0.5); got.R < 127 || got.R > 128 {
		t.Errorf("alpha 0.5: got %v, want mid gray", got)
	}
}

func TestAddSaturates(t *testing.T) {
	got := Add(RGB{200, 10, 0}, RGB{100, 10, 0})
	want := RGB{255, 20, 0}
	if got != want {
		t.Errorf("Add = %v, want %v", got, want)
	}
}

func TestScreenNeverDarkens(t *testing.T) {
	a := RGB{40, 120, 200}
	b := RGB{90, 10, 255}
	got := Screen(a, b)
	if got.R < max(a.R, b.R) || got.G < max(a.G, b.G) || got.B < max(a.B, b.B) {
		t.Errorf("Screen(%v, %v) = %v darker than an input", a, b, got)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#ff00ff", RGB{255, 0, 255}},
		{"#00ffff", RGB{0, 255, 255}},
		{"#404040", RGB{64, 64, 64}},
		{"nope", RGB{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Hex(tt.in, RGB{1, 2, 3}); got != tt.want {
				t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLerpEndpoints(t *testing.T) {
	a := RGB{255, 100, 255}
	b := RGB{100, 200, 255}
	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp t=0 = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp t=1 = %v, want %v", got, b)
	}
	mid := Lerp(a, b, 0.5)
	if mid.R >= a.R || mid.R <= b.R {
		t.Errorf("Lerp t=0.5 red %d not between %d and %d", mid.R, b.R, a.R)
	}
}

func TestShiftHueFullTurn(t *testing.T) {
	c := RGB{120, 200, 80}
	got := ShiftHue(c, 360)
	diff := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	if diff(got.R, c.R) > 2 || diff(got.G, c.G) > 2 || diff(got.B, c.B) > 2 {
		t.Errorf("ShiftHue 360 = %v, want ~%v", got, c)
	}
}
