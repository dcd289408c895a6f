package transition

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/crystal-shard/render"
	"github.com/lixenwraith/crystal-shard/tween"
	"github.com/lixenwraith/crystal-shard/vmath"
)

// Config times the glass-shatter transition
type Config struct {
	ShardCount int
	SizeMin    float64
	SizeMax    float64
	ScaleMin   float64
	ScaleMax   float64
	FlightMin  time.Duration
	FlightMax  time.Duration

	OverlayFade time.Duration
	FlashIn     time.Duration
	FlashHold   time.Duration
	FlashOut    time.Duration

	Title string // shown while the key visual is lit
}

// DefaultConfig returns the stock timing
func DefaultConfig() Config {
	return Config{
		ShardCount:  20,
		SizeMin:     10,
		SizeMax:     50,
		ScaleMin:    1,
		ScaleMax:    3,
		FlightMin:   time.Second,
		FlightMax:   2 * time.Second,
		OverlayFade: 300 * time.Millisecond,
		FlashIn:     100 * time.Millisecond,
		FlashHold:   500 * time.Millisecond,
		FlashOut:    400 * time.Millisecond,
		Title:       "CRYSTAL SHARD",
	}
}

// Total returns the time from Start until the completion callback
func (c Config) Total() time.Duration {
	return c.OverlayFade + c.FlashIn + c.FlashHold + c.FlashOut
}

type glassState struct {
	Offset  vmath.Point
	Opacity float64
	Scale   float64
}

func lerpGlass(a, b glassState, t float64) glassState {
	return glassState{
		Offset:  vmath.Pt(vmath.Lerp(a.Offset.X, b.Offset.X, t), vmath.Lerp(a.Offset.Y, b.Offset.Y, t)),
		Opacity: vmath.Lerp(a.Opacity, b.Opacity, t),
		Scale:   vmath.Lerp(a.Scale, b.Scale, t),
	}
}

// Glass is one flying fragment
type Glass struct {
	Origin   vmath.Point
	Size     float64
	Rotation float64
	Motion   *tween.Track[glassState]
}

var (
	overlayColor = render.RgbBackground
	glassColor   = render.RGBWhite
	glassEdge    = render.RGB{R: 200, G: 230, B: 255}
	visualColor  = render.RGB{R: 255, G: 159, B: 243}
	visualTint   = render.RGB{R: 165, G: 241, B: 233}
)

// Shatter overlays the page, bursts glass fragments outward and flashes the key visual
// before handing over to the next view
type Shatter struct {
	cfg Config
	rng *rand.Rand

	width, height float64
	timeline      *tween.Timeline
	overlay       *tween.Track[float64]
	flashIn       *tween.Track[float64]
	flashOut      *tween.Track[float64]
	glass         []Glass

	running  bool
	complete bool

	onStart    func()
	onComplete func()
	surface    render.Surface
}

// New creates an idle transition
func New(cfg Config, rng *rand.Rand) *Shatter {
	return &Shatter{cfg: cfg, rng: rng}
}

// OnStart sets a callback run when a transition begins, used for the shatter sound
func (s *Shatter) OnStart(fn func()) {
	s.onStart = fn
}

// OnComplete sets a callback run exactly once per transition
func (s *Shatter) OnComplete(fn func()) {
	s.onComplete = fn
}

// Bind sets the surface drawn by Step
func (s *Shatter) Bind(surface render.Surface) {
	s.surface = surface
}

// Active reports whether anything is still animating
func (s *Shatter) Active() bool {
	return s.running
}

// Completed reports whether the completion callback has fired for the current run
func (s *Shatter) Completed() bool {
	return s.complete
}

// Glass returns the fragments of the current run
func (s *Shatter) Glass() []Glass {
	return s.glass
}

// Start begins a transition over a width x height surface; ignored while one is running
func (s *Shatter) Start(width, height float64) bool {
	if s.running {
		return false
	}
	s.width, s.height = width, height
	s.running = true
	s.complete = false

	cfg := s.cfg
	s.overlay = tween.NewFloat(0, 1, tween.Options{Duration: cfg.OverlayFade})
	s.flashIn = tween.NewFloat(0, 1, tween.Options{Duration: cfg.FlashIn})
	s.flashOut = tween.NewFloat(1, 0, tween.Options{Duration: cfg.FlashOut})

	flashAt := cfg.OverlayFade
	outAt := flashAt + cfg.FlashIn + cfg.FlashHold
	s.timeline = tween.NewTimeline().
		Add(0, s.overlay).
		Add(flashAt, s.flashIn).
		Add(outAt, s.flashOut).
		Call(outAt+cfg.FlashOut, s.finish)

	s.glass = s.glass[:0]
	for i := 0; i < cfg.ShardCount; i++ {
		to := glassState{
			Offset: vmath.Pt(vmath.RandSigned(s.rng, width/4), vmath.RandSigned(s.rng, height/4)),
			Scale:  vmath.RandRange(s.rng, cfg.ScaleMin, cfg.ScaleMax),
		}
		flight := cfg.FlightMin + time.Duration(s.rng.Float64()*float64(cfg.FlightMax-cfg.FlightMin))
		s.glass = append(s.glass, Glass{
			Origin:   vmath.Pt(s.rng.Float64()*width, s.rng.Float64()*height),
			Size:     vmath.RandRange(s.rng, cfg.SizeMin, cfg.SizeMax),
			Rotation: vmath.RandAngle(s.rng),
			Motion: tween.New(glassState{Opacity: 1, Scale: 1}, to, lerpGlass, tween.Options{
				Duration: flight,
				Ease:     tween.Power2Out,
			}),
		})
		s.timeline.Add(0, s.glass[i].Motion)
	}

	if s.onStart != nil {
		s.onStart()
	}
	return true
}

func (s *Shatter) finish() {
	s.complete = true
	if s.onComplete != nil {
		s.onComplete()
	}
}

// Overlay returns the backdrop opacity
func (s *Shatter) Overlay() float64 {
	if s.overlay == nil {
		return 0
	}
	return s.overlay.Value()
}

// Flash returns the key visual opacity
func (s *Shatter) Flash() float64 {
	if s.flashIn == nil {
		return 0
	}
	if s.flashOut.Elapsed() > 0 {
		return s.flashOut.Value()
	}
	return s.flashIn.Value()
}

// Step advances the run and renders when bound
func (s *Shatter) Step(dt time.Duration) {
	if !s.running {
		return
	}
	s.timeline.Step(dt)
	if s.timeline.Done() {
		s.running = false
	}
	if s.surface != nil {
		s.Render(s.surface)
	}
}

// Render clears surface and, while active, draws overlay, glass and key visual
func (s *Shatter) Render(surface render.Surface) {
	surface.Clear()
	if !s.running {
		return
	}
	w, h := surface.Size()
	fw, fh := float64(w), float64(h)

	if a := s.Overlay() * 0.85; a > 0 {
		tl, tr := vmath.Pt(0, 0), vmath.Pt(fw, 0)
		bl, br := vmath.Pt(0, fh), vmath.Pt(fw, fh)
		surface.Triangle(tl, tr, br, overlayColor, a)
		surface.Triangle(tl, br, bl, overlayColor, a)
	}

	for _, g := range s.glass {
		st := g.Motion.Value()
		if st.Opacity <= 0 {
			continue
		}
		render.FillDiamond(surface, g.Origin.X+st.Offset.X, g.Origin.Y+st.Offset.Y,
			g.Size*st.Scale, g.Rotation, glassColor, glassEdge, 0.2*st.Opacity)
		surface.Circle(g.Origin.X+st.Offset.X, g.Origin.Y+st.Offset.Y, 0.5, glassColor, 0.5*st.Opacity, 5)
	}

	if f := s.Flash(); f > 0 {
		size := min(fw, fh) * 0.6
		render.FillDiamond(surface, fw/2, fh/2, size, 0, visualColor, visualTint, f)
		if f > 0.5 && s.cfg.Title != "" {
			surface.Label(fw/2-float64(len(s.cfg.Title))/2, fh/2, s.cfg.Title, render.RGBWhite)
		}
	}
}
