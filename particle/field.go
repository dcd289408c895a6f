package particle

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/crystal-shard/render"
	"github.com/lixenwraith/crystal-shard/status"
	"github.com/lixenwraith/crystal-shard/vmath"
)

// Particle is one drifting point of the network
type Particle struct {
	X, Y           float64
	SpeedX, SpeedY float64
	Radius         float64
	Opacity        float64
	Color          render.RGB
}

// Field is the 2D particle network: drifting points, proximity lines, pointer attraction
// All methods are called from the frame goroutine
type Field struct {
	cfg           Config
	rng           *rand.Rand
	width, height float64
	particles     []Particle

	pointer    vmath.Point
	hasPointer bool
	active     bool
	surface    render.Surface

	// Cached metric pointers, nil when uninstrumented
	statParticles   *atomic.Int64
	statConnections *atomic.Int64
}

// NewField allocates cfg.Count particles inside a width x height surface
func NewField(width, height float64, cfg Config, rng *rand.Rand) *Field {
	if len(cfg.Palette) == 0 {
		cfg.Palette = Palette
	}
	f := &Field{
		cfg:    cfg,
		rng:    rng,
		width:  width,
		height: height,
		active: true,
	}
	f.particles = f.spawn(cfg.Count)
	return f
}

// Instrument publishes particle and connection counts to reg
func (f *Field) Instrument(reg *status.Registry) {
	if reg == nil {
		return
	}
	f.statParticles = reg.Ints.Get(status.KeyParticles)
	f.statConnections = reg.Ints.Get(status.KeyConnections)
	f.statParticles.Store(int64(len(f.particles)))
}

func (f *Field) spawn(n int) []Particle {
	n = max(n, 0)
	ps := make([]Particle, n)
	for i := range ps {
		speed := vmath.RandRange(f.rng, f.cfg.SpeedMin, f.cfg.SpeedMax)
		vel := vmath.Pt(speed, 0).Rotate(vmath.RandAngle(f.rng))
		ps[i] = Particle{
			X:       f.rng.Float64() * f.width,
			Y:       f.rng.Float64() * f.height,
			SpeedX:  vel.X,
			SpeedY:  vel.Y,
			Radius:  vmath.RandRange(f.rng, f.cfg.SizeMin, f.cfg.SizeMax),
			Opacity: 0.3 + f.rng.Float64()*0.7,
			Color:   f.cfg.Palette[f.rng.Intn(len(f.cfg.Palette))],
		}
	}
	return ps
}

// Bind sets the surface drawn by Step
func (f *Field) Bind(s render.Surface) {
	f.surface = s
}

// Size returns the wrap bounds
func (f *Field) Size() (float64, float64) {
	return f.width, f.height
}

// Resize changes wrap bounds; particles outside re-enter on their next tick
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
}

// SetPointer records the attraction point for subsequent ticks
func (f *Field) SetPointer(x, y float64) {
	f.pointer = vmath.Pt(x, y)
	f.hasPointer = true
}

// ClearPointer removes the attraction point
func (f *Field) ClearPointer() {
	f.hasPointer = false
}

func (f *Field) Pause()       { f.active = false }
func (f *Field) Resume()      { f.active = true }
func (f *Field) Active() bool { return f.active }

// Len returns the live particle count
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns a copy of the current particle set
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// SetParticleCount discards every particle and allocates n fresh ones
func (f *Field) SetParticleCount(n int) {
	f.cfg.Count = max(n, 0)
	f.particles = f.spawn(f.cfg.Count)
	if f.statParticles != nil {
		f.statParticles.Store(int64(len(f.particles)))
	}
}

// Tick moves every particle one frame, pulls it toward pointer when near, and wraps each axis
func (f *Field) Tick(pointer *vmath.Point) {
	radiusSq := f.cfg.AttractionRadius * f.cfg.AttractionRadius
	for i := range f.particles {
		p := &f.particles[i]
		p.X += p.SpeedX
		p.Y += p.SpeedY

		if pointer != nil {
			dx := pointer.X - p.X
			dy := pointer.Y - p.Y
			if dx*dx+dy*dy < radiusSq {
				p.X += dx * f.cfg.AttractionStrength
				p.Y += dy * f.cfg.AttractionStrength
			}
		}

		p.X = vmath.Wrap(p.X, f.width)
		p.Y = vmath.Wrap(p.Y, f.height)
	}
}

// Render clears s, draws connections, then particles on top
func (f *Field) Render(s render.Surface) {
	s.Clear()

	conns := Connections(f.particles, f.cfg.MaxDistance)
	for _, c := range conns {
		a, b := f.particles[c.A], f.particles[c.B]
		s.Line(a.X, a.Y, b.X, b.Y, a.Color, b.Color, c.Opacity*f.cfg.ConnectionOpacity, f.cfg.LineWidth)
	}

	for _, p := range f.particles {
		s.Circle(p.X, p.Y, p.Radius, p.Color, p.Opacity*f.cfg.ColorAlpha, p.Radius*f.cfg.GlowFactor)
	}

	if f.statConnections != nil {
		f.statConnections.Store(int64(len(conns)))
	}
}

// Step runs one frame when active; scheduling continues while paused
func (f *Field) Step(_ time.Duration) {
	if !f.active {
		return
	}
	var ptr *vmath.Point
	if f.hasPointer {
		ptr = &f.pointer
	}
	f.Tick(ptr)
	if f.surface != nil {
		f.Render(f.surface)
	}
}
