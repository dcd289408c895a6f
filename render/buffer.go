package render

// RenderBuffer is a pixel compositor with straight alpha
// Pixels outside the buffer are silently dropped
type RenderBuffer struct {
	pixels []Pixel
	width  int
	height int
}

// NewRenderBuffer creates a transparent buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	width, height = max(width, 0), max(height, 0)
	return &RenderBuffer{
		pixels: make([]Pixel, width*height),
		width:  width,
		height: height,
	}
}

// Size returns buffer dimensions in pixels
func (b *RenderBuffer) Size() (int, int) {
	return b.width, b.height
}

// Resize adjusts dimensions, reallocates only if capacity is insufficient
func (b *RenderBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.pixels) < size {
		b.pixels = make([]Pixel, size)
	} else {
		b.pixels = b.pixels[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear makes every pixel transparent black
func (b *RenderBuffer) Clear() {
	b.Fill(Pixel{})
}

// Fill sets every pixel to p using exponential copy
func (b *RenderBuffer) Fill(p Pixel) {
	if len(b.pixels) == 0 {
		return
	}
	b.pixels[0] = p
	for filled := 1; filled < len(b.pixels); filled *= 2 {
		copy(b.pixels[filled:], b.pixels[:filled])
	}
}

// inBounds returns true if (x, y) addresses a pixel
func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set composites a color with the given coverage alpha and blend mode
func (b *RenderBuffer) Set(x, y int, c RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.pixels[idx] = composite(b.pixels[idx], c, alpha, mode)
}

// At returns the pixel at (x, y), transparent when out of bounds
func (b *RenderBuffer) At(x, y int) Pixel {
	if !b.inBounds(x, y) {
		return Pixel{}
	}
	return b.pixels[y*b.width+x]
}

// CompositeOnto blends every non-transparent pixel of b onto dst
// Buffers of different sizes composite their overlapping region
func (b *RenderBuffer) CompositeOnto(dst *RenderBuffer, mode BlendMode) {
	w := min(b.width, dst.width)
	h := min(b.height, dst.height)
	for y := 0; y < h; y++ {
		src := b.pixels[y*b.width : y*b.width+w]
		out := dst.pixels[y*dst.width : y*dst.width+w]
		for x, p := range src {
			if p.A <= 0 {
				continue
			}
			out[x] = composite(out[x], p.C, p.A, mode)
		}
	}
}
