package render

import (
	"github.com/gdamore/tcell/v2"
)

// HalfBlock packs two vertical pixels into one cell: foreground on top, background below
const HalfBlock = '▀'

// PixelsPerRow is the number of vertical pixels one terminal row carries
const PixelsPerRow = 2

// PixelSize converts terminal cells to pixel dimensions
func PixelSize(cols, rows int) (int, int) {
	return cols, rows * PixelsPerRow
}

func tcellColor(c RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// FlushToScreen writes a composed buffer and its labels to a tcell screen
// Pixels are assumed opaque, as produced by Compositor.Compose
func FlushToScreen(screen tcell.Screen, buf *RenderBuffer, labels []Label) {
	cols, rows := screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := buf.At(x, y*PixelsPerRow).C
			bottom := buf.At(x, y*PixelsPerRow+1).C
			style := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			screen.SetContent(x, y, HalfBlock, nil, style)
		}
	}

	for _, l := range labels {
		row := l.Y / PixelsPerRow
		if row < 0 || row >= rows {
			continue
		}
		x := l.X
		for _, r := range l.Text {
			if x >= cols {
				break
			}
			if x >= 0 {
				under := Lerp(buf.At(x, row*PixelsPerRow).C, buf.At(x, row*PixelsPerRow+1).C, 0.5)
				style := tcell.StyleDefault.Foreground(tcellColor(l.C)).Background(tcellColor(under))
				screen.SetContent(x, row, r, nil, style)
			}
			x++
		}
	}
}
