// Package host wires the animated components to output surfaces and user input
package host

import (
	"errors"
	"log"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/crystal-shard/config"
	"github.com/lixenwraith/crystal-shard/engine"
	"github.com/lixenwraith/crystal-shard/particle"
	"github.com/lixenwraith/crystal-shard/render"
	"github.com/lixenwraith/crystal-shard/scene"
	"github.com/lixenwraith/crystal-shard/starfield"
	"github.com/lixenwraith/crystal-shard/status"
	"github.com/lixenwraith/crystal-shard/transition"
	"github.com/lixenwraith/crystal-shard/works"
)

// ErrNoScheduler is returned by Initialize when Deps.Scheduler is nil
var ErrNoScheduler = errors.New("page needs a scheduler")

// View is the page currently shown in the foreground
type View int

const (
	ViewHome View = iota
	ViewWorks
)

func (v View) String() string {
	if v == ViewWorks {
		return "works"
	}
	return "home"
}

// Containers are the output surfaces, one per component; a nil container skips its component
type Containers struct {
	Stars      render.Surface
	Scene      render.Surface
	Field      render.Surface
	Showcase   render.Surface
	Works      render.Surface
	Transition render.Surface
	HUD        render.Surface
}

// Audio is the part of the player the page drives
type Audio interface {
	Toggle() bool
	Interact()
	PlayShatter()
}

// Deps are collaborators supplied by the host
type Deps struct {
	Scheduler engine.Scheduler
	Registry  *status.Registry
	Audio     Audio // nil runs silent
	Rand      *rand.Rand
	Projects  []works.Project
}

// Page owns every component of the portfolio page and their lifecycle
// Apart from NewPage, methods must run on the scheduler goroutine, hosts reach them through Post
type Page struct {
	cfg  config.Config
	c    Containers
	deps Deps

	width, height int
	lineHeight    float64 // HUD text row in logical units

	stars      *starfield.Field
	background *scene.Scene
	field      *particle.Field
	showcase   *scene.Scene
	grid       *works.Grid
	shatter    *transition.Shatter
	hud        *HUD

	view        View
	initialized bool

	presenters []engine.Loop   // step after every component loop
	loops      []engine.LoopID // registrations owned by this page

	statView        *status.Text
	statSelected    *status.Text
	statTransitions *atomic.Int64
}

// NewPage records configuration and containers; nothing is built until Initialize
func NewPage(cfg config.Config, width, height int, c Containers, deps Deps) *Page {
	if deps.Registry == nil {
		deps.Registry = status.NewRegistry()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if len(deps.Projects) == 0 {
		deps.Projects = works.DefaultProjects()
	}
	return &Page{cfg: cfg, c: c, deps: deps, width: width, height: height, lineHeight: 16}
}

// SetLineHeight sets the HUD row height in logical units, call before Initialize
func (p *Page) SetLineHeight(h float64) {
	p.lineHeight = h
}

// AddPresenter registers l on every Initialize after all component loops
// Hosts use it to flush the composed layers once the frame is drawn
func (p *Page) AddPresenter(l engine.Loop) {
	p.presenters = append(p.presenters, l)
}

// HUD returns the metrics overlay, nil when skipped
func (p *Page) HUD() *HUD { return p.hud }

// Initialize builds each component whose container is present and registers its loop
// A second call is a no-op
func (p *Page) Initialize() error {
	if p.initialized {
		return nil
	}
	if p.deps.Scheduler == nil {
		return ErrNoScheduler
	}
	reg := p.deps.Registry
	rng := p.deps.Rand
	w, h := float64(p.width), float64(p.height)

	p.statView = reg.Strings.Get(status.KeyView)
	p.statSelected = reg.Strings.Get(status.KeySelected)
	p.statTransitions = reg.Ints.Get(status.KeyTransitions)
	reg.Strings.Get(status.KeyVariant).Store(p.cfg.Scene.Variant)

	if p.c.Stars != nil {
		p.stars = starfield.New(w, h, starfield.DefaultConfig(), rng)
		p.stars.Bind(p.c.Stars)
		p.register(p.stars)
	}

	if p.c.Scene != nil {
		p.background = scene.New(p.width, p.height, p.cfg.BackgroundParams(), rng)
		p.background.Instrument(reg)
		p.background.Bind(p.c.Scene)
		if dir := p.cfg.Scene.EnvMap; dir != "" {
			// Logged inside, the scene renders untextured
			_ = p.background.LoadEnvMap(dir)
		}
		p.register(p.background)
	}

	if p.c.Field != nil {
		p.field = particle.NewField(w, h, p.cfg.ParticleConfig(), rng)
		p.field.Instrument(reg)
		p.field.Bind(p.c.Field)
		if p.cfg.Field.Paused {
			p.field.Pause()
		}
		p.register(p.field)
	}

	if p.c.Showcase != nil && p.cfg.Scene.Variant == config.VariantShowcase {
		p.showcase = scene.New(p.width, p.height, p.cfg.ShowcaseParams(), rng)
		p.showcase.Instrument(reg)
		p.showcase.Bind(p.c.Showcase)
		if dir := p.cfg.Scene.EnvMap; dir != "" {
			_ = p.showcase.LoadEnvMap(dir)
		}
		for i := range p.deps.Projects {
			p.showcase.AddShard(p.showcaseSlot(i))
		}
		p.register(engine.LoopFunc(p.stepShowcase))
	}

	if p.c.Works != nil {
		p.grid = works.NewGrid(p.deps.Projects, works.DefaultLayout(), w, h)
		p.grid.Bind(p.c.Works)
		p.register(engine.LoopFunc(p.stepWorks))
	}

	if p.c.Transition != nil {
		p.shatter = transition.New(transition.DefaultConfig(), rng)
		p.shatter.Bind(p.c.Transition)
		if p.deps.Audio != nil {
			p.shatter.OnStart(p.deps.Audio.PlayShatter)
		}
		p.shatter.OnComplete(p.swapView)
		p.register(p.shatter)
	}

	if p.c.HUD != nil {
		p.hud = NewHUD(reg, p.lineHeight)
		p.hud.Bind(p.c.HUD)
		p.register(p.hud)
	}

	for _, l := range p.presenters {
		p.register(l)
	}

	p.setView(ViewHome)
	p.initialized = true
	p.deps.Scheduler.Start()
	log.Printf("page initialized %dx%d variant=%s", p.width, p.height, p.cfg.Scene.Variant)
	return nil
}

func (p *Page) register(l engine.Loop) {
	p.loops = append(p.loops, p.deps.Scheduler.Register(l))
}

// Teardown stops the scheduler, unregisters the page loops and drops every component
// Safe to call twice; Initialize may follow
func (p *Page) Teardown() {
	if !p.initialized {
		return
	}
	p.deps.Scheduler.Stop()
	for _, id := range p.loops {
		p.deps.Scheduler.Unregister(id)
	}
	p.loops = nil
	p.stars, p.background, p.field, p.showcase = nil, nil, nil, nil
	p.grid, p.shatter, p.hud = nil, nil, nil
	p.initialized = false
}

// Initialized reports whether components are live
func (p *Page) Initialized() bool {
	return p.initialized
}

// Size returns the logical viewport
func (p *Page) Size() (int, int) {
	return p.width, p.height
}

// View returns the foreground view
func (p *Page) View() View {
	return p.view
}

// Field returns the particle field, nil when skipped
func (p *Page) Field() *particle.Field { return p.field }

// Background returns the backdrop scene, nil when skipped
func (p *Page) Background() *scene.Scene { return p.background }

// Showcase returns the foreground scene, nil when skipped
func (p *Page) Showcase() *scene.Scene { return p.showcase }

// Grid returns the works grid, nil when skipped
func (p *Page) Grid() *works.Grid { return p.grid }

// Shatter returns the transition, nil when skipped
func (p *Page) Shatter() *transition.Shatter { return p.shatter }

// Stars returns the starfield, nil when skipped
func (p *Page) Stars() *starfield.Field { return p.stars }

// Resize relays a new logical viewport to every component
func (p *Page) Resize(width, height int) {
	p.width, p.height = width, height
	if !p.initialized {
		return
	}
	w, h := float64(width), float64(height)
	if p.stars != nil {
		p.stars.Resize(w, h)
	}
	if p.background != nil {
		p.background.OnResize(width, height)
	}
	if p.field != nil {
		p.field.Resize(w, h)
	}
	if p.showcase != nil {
		p.showcase.OnResize(width, height)
	}
	if p.grid != nil {
		p.grid.Resize(w, h)
	}
	if r, ok := p.c.Transition.(render.Resizer); ok {
		r.Resize(width, height)
	}
	if r, ok := p.c.HUD.(render.Resizer); ok {
		r.Resize(width, height)
	}
}

// PointerMove relays the pointer in logical units
func (p *Page) PointerMove(x, y float64) {
	if !p.initialized {
		return
	}
	if p.stars != nil {
		p.stars.SetPointer(x, y)
	}
	if p.background != nil {
		p.background.OnPointerMove(x, y)
	}
	if p.field != nil {
		p.field.SetPointer(x, y)
	}
	if p.showcase != nil {
		p.showcase.OnPointerMove(x, y)
	}
	if p.grid != nil && p.view == ViewWorks {
		p.grid.Hover(x, y)
	}
}

// PointerLeave drops the field attraction
func (p *Page) PointerLeave() {
	if p.field != nil {
		p.field.ClearPointer()
	}
}

// Click counts as user interaction and opens the tile under the pointer on the works view
func (p *Page) Click(x, y float64) (works.Project, bool) {
	if !p.initialized {
		return works.Project{}, false
	}
	if p.deps.Audio != nil {
		p.deps.Audio.Interact()
	}
	if p.grid == nil || p.view != ViewWorks {
		return works.Project{}, false
	}
	proj, ok := p.grid.Click(x, y)
	if ok {
		p.statSelected.Store(proj.Title)
		log.Printf("open %s -> %s", proj.Title, proj.Link)
	}
	return proj, ok
}

// ToggleAudio flips the music and returns whether it now plays
func (p *Page) ToggleAudio() bool {
	if p.deps.Audio == nil {
		return false
	}
	return p.deps.Audio.Toggle()
}

// Enter runs the shatter transition into the other view
// Without a transition container the view swaps immediately; ignored while a transition runs
func (p *Page) Enter() bool {
	if !p.initialized {
		return false
	}
	if p.deps.Audio != nil {
		p.deps.Audio.Interact()
	}
	if p.shatter == nil {
		p.swapView()
		return true
	}
	if !p.shatter.Start(float64(p.width), float64(p.height)) {
		return false
	}
	p.statTransitions.Add(1)
	return true
}

// ToggleWorks swaps views without the transition; ignored while one runs
func (p *Page) ToggleWorks() {
	if !p.initialized || (p.shatter != nil && p.shatter.Active()) {
		return
	}
	p.swapView()
}

// ToggleHUD shows or hides the metrics overlay
func (p *Page) ToggleHUD() {
	if p.hud != nil {
		p.hud.Toggle()
	}
}

func (p *Page) swapView() {
	if p.view == ViewHome {
		p.setView(ViewWorks)
	} else {
		p.setView(ViewHome)
	}
}

func (p *Page) setView(v View) {
	p.view = v
	p.statView.Store(v.String())
}

// TogglePause pauses or resumes the particle field
func (p *Page) TogglePause() {
	if p.field == nil {
		return
	}
	if p.field.Active() {
		p.field.Pause()
	} else {
		p.field.Resume()
	}
}

// AdjustParticles changes the particle count by delta, never below zero
func (p *Page) AdjustParticles(delta int) {
	if p.field == nil {
		return
	}
	p.field.SetParticleCount(max(p.field.Len()+delta, 0))
}

// Select moves the works selection by one tile
func (p *Page) Select(forward bool) {
	if p.grid == nil || p.view != ViewWorks {
		return
	}
	if forward {
		p.grid.Next()
	} else {
		p.grid.Prev()
	}
	if proj, ok := p.grid.Selected(); ok {
		p.statSelected.Store(proj.Title)
	}
}

// AddShard adds one showcase shard in the next free slot
func (p *Page) AddShard() {
	if p.showcase == nil {
		return
	}
	p.showcase.AddShard(p.showcaseSlot(len(p.showcase.Shards())))
}

// RemoveShard removes the most recently added showcase shard
func (p *Page) RemoveShard() bool {
	if p.showcase == nil {
		return false
	}
	shards := p.showcase.Shards()
	if len(shards) == 0 {
		return false
	}
	return p.showcase.RemoveShard(shards[len(shards)-1].ID)
}

// ClearShards empties the showcase
func (p *Page) ClearShards() {
	if p.showcase != nil {
		p.showcase.RemoveAllShards()
	}
}

// showcaseSlot places shard i on a ring facing the camera, tinted along the palette
func (p *Page) showcaseSlot(i int) scene.ShardConfig {
	cfg := scene.DefaultShardConfig()
	angle := float64(i) * 2 * math.Pi / 5
	ring := 2.2 + 0.8*float64(i/5)
	cfg.Position = mgl64.Vec3{math.Cos(angle) * ring, math.Sin(angle) * ring * 0.6, 0}
	cfg.Rotation = mgl64.Vec3{p.deps.Rand.Float64() * math.Pi, p.deps.Rand.Float64() * math.Pi, 0}
	cfg.Scale = mgl64.Vec3{0.8, 0.8, 0.8}
	cfg.Color = render.ShiftHue(showcaseTint, float64(i)*36)
	return cfg
}

var showcaseTint = render.RGB{R: 0xff, G: 0x9f, B: 0xf3}

// stepShowcase renders the showcase on the home view and clears it otherwise
func (p *Page) stepShowcase(dt time.Duration) {
	if p.view == ViewHome {
		p.showcase.Step(dt)
		return
	}
	p.c.Showcase.Clear()
}

// stepWorks renders the grid on the works view and clears it otherwise
func (p *Page) stepWorks(dt time.Duration) {
	if p.view == ViewWorks {
		p.grid.Step(dt)
		return
	}
	p.c.Works.Clear()
}
