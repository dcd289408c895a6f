package works

import (
	"math"
	"time"

	"github.com/lixenwraith/crystal-shard/render"
	"github.com/lixenwraith/crystal-shard/vmath"
)

// Rect is a tile area in surface units
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r, right and bottom edges excluded
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center returns the midpoint of r
func (r Rect) Center() vmath.Point {
	return vmath.Pt(r.X+r.W/2, r.Y+r.H/2)
}

// Layout controls tile placement
type Layout struct {
	MinTile float64 // narrowest tile before a column is dropped
	Gap     float64
	Margin  float64
	Label   float64 // space below each tile for the title
}

// DefaultLayout returns spacing tuned for the terminal surface
func DefaultLayout() Layout {
	return Layout{MinTile: 40, Gap: 6, Margin: 8, Label: 6}
}

var tileColors = [2]render.RGB{
	{R: 255, G: 159, B: 243},
	{R: 165, G: 241, B: 233},
}

// Grid lays out projects as crystal tiles and tracks hover and selection
type Grid struct {
	projects []Project
	layout   Layout
	tiles    []Rect
	glow     []float64

	width, height float64
	cols          int
	selected      int
	hover         int
	elapsed       time.Duration

	surface render.Surface
}

// NewGrid creates a grid sized to width x height with nothing selected
func NewGrid(projects []Project, layout Layout, width, height float64) *Grid {
	g := &Grid{
		projects: projects,
		layout:   layout,
		glow:     make([]float64, len(projects)),
		selected: -1,
		hover:    -1,
	}
	g.Resize(width, height)
	return g
}

// Bind sets the surface drawn by Step
func (g *Grid) Bind(s render.Surface) {
	g.surface = s
}

// Projects returns the catalog
func (g *Grid) Projects() []Project {
	return g.projects
}

// Columns returns the current column count
func (g *Grid) Columns() int {
	return g.cols
}

// Tiles returns the tile rectangles in catalog order
func (g *Grid) Tiles() []Rect {
	return g.tiles
}

// Resize recomputes the layout
func (g *Grid) Resize(width, height float64) {
	g.width, g.height = width, height
	n := len(g.projects)
	g.tiles = g.tiles[:0]
	if n == 0 {
		g.cols = 0
		return
	}

	l := g.layout
	inner := math.Max(width-2*l.Margin, 0)
	cols := int((inner + l.Gap) / (l.MinTile + l.Gap))
	cols = max(1, min(cols, n))
	g.cols = cols
	rows := (n + cols - 1) / cols

	tile := (inner - float64(cols-1)*l.Gap) / float64(cols)
	// Tiles are square; shrink to fit the height when needed
	if rows > 0 {
		fit := (height - 2*l.Margin - float64(rows-1)*l.Gap - float64(rows)*l.Label) / float64(rows)
		tile = math.Max(math.Min(tile, fit), 1)
	}

	used := float64(cols)*tile + float64(cols-1)*l.Gap
	left := (width - used) / 2
	for i := 0; i < n; i++ {
		r, c := i/cols, i%cols
		g.tiles = append(g.tiles, Rect{
			X: left + float64(c)*(tile+l.Gap),
			Y: l.Margin + float64(r)*(tile+l.Gap+l.Label),
			W: tile,
			H: tile,
		})
	}
}

// HitTest returns the index of the tile under (x, y)
func (g *Grid) HitTest(x, y float64) (int, bool) {
	for i, r := range g.tiles {
		if r.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// Hover marks the tile under (x, y) as hovered
func (g *Grid) Hover(x, y float64) {
	g.hover, _ = g.HitTest(x, y)
}

// Click selects the tile under (x, y) and returns its project
func (g *Grid) Click(x, y float64) (Project, bool) {
	i, ok := g.HitTest(x, y)
	if !ok {
		return Project{}, false
	}
	g.selected = i
	return g.projects[i], true
}

// Select sets the selection, out of range clears it
func (g *Grid) Select(i int) {
	if i < 0 || i >= len(g.projects) {
		g.selected = -1
		return
	}
	g.selected = i
}

// Next moves the selection forward, wrapping
func (g *Grid) Next() {
	if len(g.projects) == 0 {
		return
	}
	g.selected = (g.selected + 1) % len(g.projects)
}

// Prev moves the selection backward, wrapping
func (g *Grid) Prev() {
	n := len(g.projects)
	if n == 0 {
		return
	}
	if g.selected < 0 {
		g.selected = n - 1
		return
	}
	g.selected = (g.selected - 1 + n) % n
}

// Selected returns the selected project
func (g *Grid) Selected() (Project, bool) {
	if g.selected < 0 {
		return Project{}, false
	}
	return g.projects[g.selected], true
}

// Glow returns the highlight level of tile i in [0,1]
func (g *Grid) Glow(i int) float64 {
	return g.glow[i]
}

// Step eases tile highlights toward hover/selection and renders when bound
func (g *Grid) Step(dt time.Duration) {
	g.elapsed += dt
	for i := range g.glow {
		target := 0.0
		if i == g.selected || i == g.hover {
			target = 1
		}
		g.glow[i] = vmath.Ease(g.glow[i], target, 0.2)
	}
	if g.surface != nil {
		g.Render(g.surface)
	}
}

// Render draws one diamond per tile with its title underneath
func (g *Grid) Render(s render.Surface) {
	s.Clear()
	bob := math.Sin(g.elapsed.Seconds() * 2)
	for i, r := range g.tiles {
		glow := g.glow[i]
		c := r.Center()
		size := math.Min(r.W, r.H) * (0.8 + 0.15*glow)
		// Each tile gets its own hue so neighbours read apart
		c1 := render.ShiftHue(tileColors[0], float64(i)*36)
		c2 := render.ShiftHue(tileColors[1], float64(i)*36)
		render.FillDiamond(s, c.X, c.Y-glow*bob*2, size, 0, c1, c2, 0.55+0.4*glow)
		if glow > 0.05 {
			s.Circle(c.X, c.Y, size/4, render.RGBWhite, 0.15*glow, size/3)
		}

		title := g.projects[i].Title
		s.Label(c.X-float64(len(title))/2, r.Y+r.H+1, title, render.Lerp(render.RGB{R: 160, G: 160, B: 190}, render.RGBWhite, glow))
	}
}
