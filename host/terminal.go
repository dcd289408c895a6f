package host

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/crystal-shard/config"
	"github.com/lixenwraith/crystal-shard/core"
	"github.com/lixenwraith/crystal-shard/engine"
	"github.com/lixenwraith/crystal-shard/render"
)

// ParticleStep is the particle count change per +/- key
const ParticleStep = 10

// Terminal hosts the page on a tcell screen using half-block pixels
type Terminal struct {
	screen tcell.Screen
	sched  engine.Scheduler
	layers *Layers
	page   *Page

	buttons tcell.ButtonMask
	done    chan struct{}
}

// NewTerminal sizes the layers to an initialized screen and builds the page
func NewTerminal(screen tcell.Screen, cfg config.Config, deps Deps) *Terminal {
	cols, rows := screen.Size()
	pw, ph := render.PixelSize(cols, rows)
	layers := NewLayers(pw, ph, cfg.PixelScale)
	lw, lh := layers.LogicalSize()

	t := &Terminal{
		screen: screen,
		sched:  deps.Scheduler,
		layers: layers,
		done:   make(chan struct{}),
	}
	page := NewPage(cfg, lw, lh, layers.Containers, deps)
	page.SetLineHeight(render.PixelsPerRow)
	page.AddPresenter(engine.LoopFunc(t.present))
	t.page = page
	return t
}

// Page returns the hosted page
func (t *Terminal) Page() *Page {
	return t.page
}

// Layers returns the compositor layers
func (t *Terminal) Layers() *Layers {
	return t.layers
}

// Start prepares the screen and initializes the page, present steps after the page loops
func (t *Terminal) Start() error {
	core.SetResetHook(t.screen.Fini)
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.HideCursor()
	return t.page.Initialize()
}

// Run starts the page and blocks until the user quits
func (t *Terminal) Run() error {
	if err := t.Start(); err != nil {
		return err
	}
	defer t.page.Teardown()

	events := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-t.done:
				return
			}
		}
	})
	defer close(t.done)

	for ev := range events {
		if !t.Handle(ev) {
			return nil
		}
	}
	return nil
}

// present flattens the layers onto the screen after the page loops have drawn
func (t *Terminal) present(time.Duration) {
	buf := t.layers.Compositor.Compose()
	render.FlushToScreen(t.screen, buf, t.layers.Compositor.Labels())
	t.screen.Show()
}

// Handle translates one terminal event into page calls posted to the scheduler
// Returns false when the user asked to quit
func (t *Terminal) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		pw, ph := render.PixelSize(cols, rows)
		t.sched.Post(func() {
			t.layers.Resize(pw, ph)
			lw, lh := t.layers.LogicalSize()
			t.page.Resize(lw, lh)
		})
		t.screen.Sync()

	case *tcell.EventMouse:
		col, row := ev.Position()
		// Center of the cell, rows hold two pixels
		x, y := t.layers.ToLogical(float64(col)+0.5, float64(row*render.PixelsPerRow)+1)
		pressed := ev.Buttons()&tcell.Button1 != 0 && t.buttons&tcell.Button1 == 0
		t.buttons = ev.Buttons()
		t.sched.Post(func() {
			t.page.PointerMove(x, y)
			if pressed {
				t.page.Click(x, y)
			}
		})

	case *tcell.EventKey:
		return t.handleKey(ev)
	}
	return true
}

func (t *Terminal) handleKey(ev *tcell.EventKey) bool {
	var action func()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		action = func() { t.page.Enter() }
	case tcell.KeyTab:
		action = func() { t.page.Select(true) }
	case tcell.KeyBacktab:
		action = func() { t.page.Select(false) }
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			action = t.page.TogglePause
		case '+', '=':
			action = func() { t.page.AdjustParticles(ParticleStep) }
		case '-':
			action = func() { t.page.AdjustParticles(-ParticleStep) }
		case 'm':
			action = func() { t.page.ToggleAudio() }
		case 'w':
			action = t.page.ToggleWorks
		case 's':
			action = t.page.AddShard
		case 'x':
			action = func() { t.page.RemoveShard() }
		case 'c':
			action = t.page.ClearShards
		case 'h':
			action = t.page.ToggleHUD
		}
	}
	if action != nil {
		t.sched.Post(action)
	}
	return true
}
