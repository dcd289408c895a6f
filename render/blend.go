package render

// BlendMode defines how a source pixel is composited onto a destination
type BlendMode uint8

const (
	BlendReplace BlendMode = iota // dst = src, alpha = a
	BlendAlpha                    // Porter-Duff source-over
	BlendAdd                      // additive light, alpha = max
	BlendScreen                   // screen, alpha = max
	BlendMax                      // per-channel max, alpha = max
)

// Pixel is a straight-alpha color sample in a layer
type Pixel struct {
	C RGB
	A float64
}

// composite applies src with coverage alpha onto dst
func composite(dst Pixel, src RGB, alpha float64, mode BlendMode) Pixel {
	if alpha <= 0 {
		return dst
	}
	if alpha > 1 {
		alpha = 1
	}

	switch mode {
	case BlendReplace:
		return Pixel{C: src, A: alpha}

	case BlendAdd:
		return Pixel{C: Add(dst.C, Scale(src, alpha)), A: max(dst.A, alpha)}

	case BlendScreen:
		return Pixel{C: Screen(dst.C, Scale(src, alpha)), A: max(dst.A, alpha)}

	case BlendMax:
		return Pixel{C: Max(dst.C, Scale(src, alpha)), A: max(dst.A, alpha)}

	default:
		outA := alpha + dst.A*(1-alpha)
		if outA <= 0 {
			return Pixel{}
		}
		// Weight of the existing color within the result
		w := dst.A * (1 - alpha) / outA
		return Pixel{C: Blend(src, dst.C, w), A: outA}
	}
}
