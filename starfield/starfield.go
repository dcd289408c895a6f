package starfield

import (
	"math"
	"math/rand"
	"time"

	"github.com/ojrac/opensimplex-go"

	"github.com/lixenwraith/crystal-shard/render"
	"github.com/lixenwraith/crystal-shard/tween"
	"github.com/lixenwraith/crystal-shard/vmath"
)

// Config sizes the three parallax layers
type Config struct {
	DustCount    int
	StarCount    int
	DiamondCount int

	DustParallax    float64 // pixels per unit pointer offset at depth 1
	StarParallax    float64
	DiamondParallax float64

	// Pointer smoothing spring
	SpringFPS       int
	SpringFrequency float64
	SpringDamping   float64
}

// DefaultConfig returns the stock layer sizes
func DefaultConfig() Config {
	return Config{
		DustCount:       100,
		StarCount:       200,
		DiamondCount:    15,
		DustParallax:    20,
		StarParallax:    20,
		DiamondParallax: 40,
		SpringFPS:       60,
		SpringFrequency: 4,
		SpringDamping:   0.8,
	}
}

// Star is a point in one of the two star layers; X and Y are fractions of the surface
type Star struct {
	X, Y    float64
	Size    float64
	Opacity float64
	Depth   float64 // parallax weight, dust only
	Seed    float64 // noise row, twinkle stars only

	Twinkle *tween.Track[float64] // opacity multiplier, dust only
}

// Diamond is a faint floating rhombus
type Diamond struct {
	X, Y     float64
	Size     float64
	Rotation float64 // radians
	Opacity  float64
	Float    *tween.Track[vmath.Point] // X: vertical offset in pixels, Y: extra rotation in radians
}

var diamondTint = render.RGB{R: 100, G: 200, B: 255}

// Field draws stardust, twinkling stars and floating diamonds behind the particle network
type Field struct {
	cfg           Config
	width, height float64

	dust     []Star
	stars    []Star
	diamonds []Diamond

	noise   opensimplex.Noise
	elapsed float64

	springX, springY *tween.Spring
	surface          render.Surface
}

// New populates every layer for a width x height surface
func New(width, height float64, cfg Config, rng *rand.Rand) *Field {
	f := &Field{
		cfg:     cfg,
		width:   width,
		height:  height,
		noise:   opensimplex.NewNormalized(rng.Int63()),
		springX: tween.NewSpring(cfg.SpringFPS, cfg.SpringFrequency, cfg.SpringDamping),
		springY: tween.NewSpring(cfg.SpringFPS, cfg.SpringFrequency, cfg.SpringDamping),
	}
	// Centered pointer means no parallax offset
	f.springX.Pos, f.springX.Target = 0.5, 0.5
	f.springY.Pos, f.springY.Target = 0.5, 0.5

	for i := 0; i < cfg.DustCount; i++ {
		twinkle := tween.NewFloat(1, 0.3, tween.Options{
			Duration: time.Duration(vmath.RandRange(rng, 2, 5) * float64(time.Second)),
			Delay:    time.Duration(rng.Float64() * 5 * float64(time.Second)),
			Ease:     tween.SineInOut,
			Repeat:   tween.Infinite,
			Yoyo:     true,
		})
		f.dust = append(f.dust, Star{
			X:       rng.Float64(),
			Y:       rng.Float64(),
			Size:    vmath.RandRange(rng, 1, 3),
			Opacity: vmath.RandRange(rng, 0.4, 1),
			Depth:   vmath.RandRange(rng, 0.1, 1),
			Twinkle: twinkle,
		})
	}

	for i := 0; i < cfg.StarCount; i++ {
		f.stars = append(f.stars, Star{
			X:       rng.Float64(),
			Y:       rng.Float64(),
			Size:    rng.Float64() * 2,
			Opacity: vmath.RandRange(rng, 0.3, 1),
			Seed:    float64(i) * 7.3,
		})
	}

	for i := 0; i < cfg.DiamondCount; i++ {
		rotation := vmath.RandAngle(rng)
		drift := tween.New(vmath.Point{}, vmath.Pt(vmath.RandSigned(rng, 10), vmath.RandSigned(rng, 5)*math.Pi/180),
			lerpPoint, tween.Options{
				Duration: time.Duration(vmath.RandRange(rng, 5, 10) * float64(time.Second)),
				Ease:     tween.SineInOut,
				Repeat:   tween.Infinite,
				Yoyo:     true,
			})
		f.diamonds = append(f.diamonds, Diamond{
			X:        rng.Float64(),
			Y:        rng.Float64(),
			Size:     vmath.RandRange(rng, 20, 80),
			Rotation: rotation,
			Opacity:  vmath.RandRange(rng, 0.05, 0.15),
			Float:    drift,
		})
	}
	return f
}

func lerpPoint(a, b vmath.Point, t float64) vmath.Point {
	return vmath.Pt(vmath.Lerp(a.X, b.X, t), vmath.Lerp(a.Y, b.Y, t))
}

// Bind sets the surface drawn by Step
func (f *Field) Bind(s render.Surface) {
	f.surface = s
}

// Resize changes the surface dimensions; stars keep their fractional positions
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
}

// SetPointer sets the parallax target from a surface position
func (f *Field) SetPointer(x, y float64) {
	if f.width <= 0 || f.height <= 0 {
		return
	}
	f.springX.Target = vmath.Clamp01(x / f.width)
	f.springY.Target = vmath.Clamp01(y / f.height)
}

// Pointer returns the smoothed normalized pointer
func (f *Field) Pointer() vmath.Point {
	return vmath.Pt(f.springX.Pos, f.springY.Pos)
}

// DustOffset is the parallax shift of a dust star at depth
func (f *Field) DustOffset(depth float64) vmath.Point {
	p := f.Pointer()
	k := depth * -f.cfg.DustParallax
	return vmath.Pt((p.X-0.5)*k, (p.Y-0.5)*k)
}

// LayerOffset is the whole-layer shift for the given parallax strength
func (f *Field) LayerOffset(strength float64) vmath.Point {
	p := f.Pointer()
	return vmath.Pt(-(p.X-0.5)*strength, -(p.Y-0.5)*strength)
}

// Twinkle returns star i's noise-driven opacity at the current time, between half and full opacity
func (f *Field) Twinkle(i int) float64 {
	s := f.stars[i]
	n := vmath.Clamp01(f.noise.Eval2(s.Seed, f.elapsed*0.5))
	return s.Opacity * (0.5 + 0.5*n)
}

// Dust, Stars and Diamonds expose the layers
func (f *Field) Dust() []Star        { return f.dust }
func (f *Field) Stars() []Star       { return f.stars }
func (f *Field) Diamonds() []Diamond { return f.diamonds }

// Step advances springs, tracks and noise time, then renders when bound
func (f *Field) Step(dt time.Duration) {
	f.springX.Update()
	f.springY.Update()
	f.elapsed += dt.Seconds()
	for i := range f.dust {
		f.dust[i].Twinkle.Advance(dt)
	}
	for i := range f.diamonds {
		f.diamonds[i].Float.Advance(dt)
	}
	if f.surface != nil {
		f.Render(f.surface)
	}
}

// Render clears s and draws dust, stars, then diamonds
func (f *Field) Render(s render.Surface) {
	s.Clear()

	for _, st := range f.dust {
		off := f.DustOffset(st.Depth)
		alpha := st.Opacity * st.Twinkle.Value()
		s.Circle(st.X*f.width+off.X, st.Y*f.height+off.Y, st.Size/2, render.RGBWhite, alpha, st.Size)
	}

	off := f.LayerOffset(f.cfg.StarParallax)
	for i, st := range f.stars {
		if st.Size <= 0 {
			continue
		}
		s.Circle(st.X*f.width+off.X, st.Y*f.height+off.Y, st.Size/2, render.RGBWhite, f.Twinkle(i), st.Size*2)
	}

	off = f.LayerOffset(f.cfg.DiamondParallax)
	for _, d := range f.diamonds {
		fl := d.Float.Value()
		render.FillDiamond(s, d.X*f.width+off.X, d.Y*f.height+off.Y+fl.X, d.Size, d.Rotation+fl.Y,
			render.RGBWhite, diamondTint, d.Opacity)
	}
}
