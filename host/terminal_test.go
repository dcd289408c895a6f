package host

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/crystal-shard/engine"
	"github.com/lixenwraith/crystal-shard/render"
)

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen, *engine.ManualScheduler) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 12)

	sched := engine.NewManualScheduler(testConfig().Interval())
	term := NewTerminal(screen, testConfig(), Deps{Scheduler: sched, Rand: rand.New(rand.NewSource(9))})
	if err := term.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return term, screen, sched
}

func TestTerminalSizing(t *testing.T) {
	term, _, _ := newTestTerminal(t)
	// 40x12 cells are 40x24 pixels at 4 logical units per pixel
	if w, h := term.Page().Size(); w != 160 || h != 96 {
		t.Errorf("logical size = %dx%d, want 160x96", w, h)
	}
	if w, h := term.Layers().Compositor.Size(); w != 40 || h != 24 {
		t.Errorf("pixel size = %dx%d, want 40x24", w, h)
	}
}

// litCells counts cells whose half-block shows anything but the page background
func litCells(screen tcell.SimulationScreen) (blocks, lit int) {
	bg := render.RgbBackground
	empty := tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B))
	cols, rows := screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r, _, style, _ := screen.GetContent(x, y)
			if r != render.HalfBlock {
				continue
			}
			blocks++
			if fg, back, _ := style.Decompose(); fg != empty || back != empty {
				lit++
			}
		}
	}
	return blocks, lit
}

func TestTerminalPresentsHalfBlocks(t *testing.T) {
	_, screen, sched := newTestTerminal(t)
	sched.Advance(1)

	blocks, lit := litCells(screen)
	// The HUD writes text over the top rows
	if blocks < 40*8 {
		t.Errorf("half-block cells = %d, want most of the screen", blocks)
	}
	// The first frame is drawn before it is presented
	if lit == 0 {
		t.Error("first frame presented an empty compositor")
	}
}

func TestTerminalResizePresentsDrawnFrame(t *testing.T) {
	term, screen, sched := newTestTerminal(t)
	sched.Advance(1)

	screen.SetSize(60, 20)
	term.Handle(tcell.NewEventResize(60, 20))
	sched.Advance(1)

	if _, lit := litCells(screen); lit == 0 {
		t.Error("resize frame presented cleared layers")
	}
}

func TestTerminalQuitKeys(t *testing.T) {
	term, _, _ := newTestTerminal(t)
	tests := []struct {
		name string
		ev   *tcell.EventKey
		keep bool
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), false},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), true},
	}
	for _, tt := range tests {
		if got := term.Handle(tt.ev); got != tt.keep {
			t.Errorf("%s: Handle = %v, want %v", tt.name, got, tt.keep)
		}
	}
}

func TestTerminalKeysPostToFrame(t *testing.T) {
	term, _, sched := newTestTerminal(t)
	page := term.Page()

	term.Handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	term.Handle(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone))
	if !page.Field().Active() || page.Field().Len() != 100 {
		t.Fatal("key applied before the frame ran")
	}
	sched.Advance(1)
	if page.Field().Active() {
		t.Error("space did not pause the field")
	}
	if page.Field().Len() != 110 {
		t.Errorf("particles = %d, want 110", page.Field().Len())
	}

	term.Handle(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	term.Handle(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	term.Handle(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	sched.Advance(1)
	if n := len(page.Showcase().Shards()); n != 6 {
		t.Errorf("showcase shards = %d, want 6", n)
	}
	if page.View() != ViewWorks {
		t.Error("w did not open the works view")
	}
	if sel, ok := page.Grid().Selected(); !ok || sel.Title != "NinjaDAO" {
		t.Errorf("tab selected %q", sel.Title)
	}

	term.Handle(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	sched.Advance(1)
	if n := len(page.Showcase().Shards()); n != 0 {
		t.Errorf("showcase shards after clear = %d", n)
	}
}

func TestTerminalMouse(t *testing.T) {
	term, _, sched := newTestTerminal(t)
	term.Handle(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	sched.Advance(1)

	// Cell (10,5) centers on pixel (10.5, 11), logical (42, 44)
	x, y := term.Page().Background().Pointer()
	if math.Abs(x+1.9) > 1e-9 || math.Abs(y+0.2) > 1e-9 {
		t.Errorf("scene pointer = %v,%v want -1.9,-0.2", x, y)
	}
}

func TestTerminalResize(t *testing.T) {
	term, _, sched := newTestTerminal(t)
	term.Handle(tcell.NewEventResize(60, 20))
	sched.Advance(1)

	if w, h := term.Page().Size(); w != 240 || h != 160 {
		t.Errorf("logical size = %dx%d, want 240x160", w, h)
	}
	if w, h := term.Page().Field().Size(); w != 240 || h != 160 {
		t.Errorf("field size = %vx%v", w, h)
	}
}
