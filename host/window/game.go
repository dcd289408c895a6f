// Package window hosts the page in a desktop window
package window

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/crystal-shard/config"
	"github.com/lixenwraith/crystal-shard/engine"
	"github.com/lixenwraith/crystal-shard/host"
	"github.com/lixenwraith/crystal-shard/render"
)

// Game adapts the page to ebiten: one scheduler tick per Update, layers drawn in Draw
type Game struct {
	page   *host.Page
	sched  *engine.ManualScheduler
	layers []*ImageSurface

	width, height int
	pointer       [2]int
	started       bool
}

// New builds the page with one offscreen image per component
func New(cfg config.Config, deps host.Deps, width, height int) *Game {
	g := &Game{
		sched:  engine.NewManualScheduler(cfg.Interval()),
		width:  width,
		height: height,
	}
	surface := func() render.Surface {
		s := NewImageSurface(width, height)
		g.layers = append(g.layers, s)
		return s
	}
	// Creation order is draw order
	c := host.Containers{
		Scene:      surface(),
		Stars:      surface(),
		Field:      surface(),
		Showcase:   surface(),
		Works:      surface(),
		Transition: surface(),
		HUD:        surface(),
	}
	deps.Scheduler = g.sched
	g.page = host.NewPage(cfg, width, height, c, deps)
	g.page.SetLineHeight(LineHeight)
	return g
}

// Page returns the hosted page
func (g *Game) Page() *host.Page {
	return g.page
}

// Update applies input and runs exactly one frame
func (g *Game) Update() error {
	if !g.started {
		if err := g.page.Initialize(); err != nil {
			return err
		}
		g.started = true
	}
	if g.quitRequested() {
		g.page.Teardown()
		return ebiten.Termination
	}
	g.pollPointer()
	g.pollKeys()
	g.sched.Advance(1)
	return nil
}

func (g *Game) quitRequested() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)
}

func (g *Game) pollPointer() {
	x, y := ebiten.CursorPosition()
	if x != g.pointer[0] || y != g.pointer[1] {
		g.pointer = [2]int{x, y}
		g.sched.Post(func() { g.page.PointerMove(float64(x), float64(y)) })
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.sched.Post(func() { g.page.Click(float64(x), float64(y)) })
	}
}

// keyActions maps keys to page calls, the same set the terminal host binds
var keyActions = map[ebiten.Key]func(p *host.Page){
	ebiten.KeySpace: (*host.Page).TogglePause,
	ebiten.KeyEqual: func(p *host.Page) { p.AdjustParticles(host.ParticleStep) },
	ebiten.KeyMinus: func(p *host.Page) { p.AdjustParticles(-host.ParticleStep) },
	ebiten.KeyM:     func(p *host.Page) { p.ToggleAudio() },
	ebiten.KeyEnter: func(p *host.Page) { p.Enter() },
	ebiten.KeyW:     (*host.Page).ToggleWorks,
	ebiten.KeyTab:   func(p *host.Page) { p.Select(!ebiten.IsKeyPressed(ebiten.KeyShift)) },
	ebiten.KeyS:     (*host.Page).AddShard,
	ebiten.KeyX:     func(p *host.Page) { p.RemoveShard() },
	ebiten.KeyC:     (*host.Page).ClearShards,
	ebiten.KeyH:     (*host.Page).ToggleHUD,
}

func (g *Game) pollKeys() {
	for key, action := range keyActions {
		if inpututil.IsKeyJustPressed(key) {
			g.sched.Post(func() { action(g.page) })
		}
	}
}

// Draw composites the layers over the page background
func (g *Game) Draw(screen *ebiten.Image) {
	bg := render.RgbBackground
	screen.Fill(nrgba(bg, 1))
	for _, l := range g.layers {
		screen.DrawImage(l.Image(), nil)
	}
}

// Layout follows the window size and relays changes to the page
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		for _, l := range g.layers {
			l.Resize(outsideWidth, outsideHeight)
		}
		g.sched.Post(func() { g.page.Resize(outsideWidth, outsideHeight) })
	}
	return g.width, g.height
}

// Run opens the window and blocks until it closes
func Run(cfg config.Config, deps host.Deps, width, height int) error {
	ebiten.SetWindowTitle("Crystal Shard")
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	g := New(cfg, deps, width, height)
	err := ebiten.RunGame(g)
	g.page.Teardown()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
