package transition

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/lixenwraith/crystal-shard/render"
)

const frame = 10 * time.Millisecond

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func run(s *Shatter, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		s.Step(frame)
	}
}

func newShatter() *Shatter {
	return New(DefaultConfig(), rand.New(rand.NewSource(3)))
}

func TestStartIgnoredWhileRunning(t *testing.T) {
	s := newShatter()
	starts := 0
	s.OnStart(func() { starts++ })

	if !s.Start(800, 600) {
		t.Fatal("first Start returned false")
	}
	if s.Start(800, 600) {
		t.Error("second Start accepted while running")
	}
	if starts != 1 {
		t.Errorf("start callbacks = %d, want 1", starts)
	}
	if got := len(s.Glass()); got != 20 {
		t.Errorf("glass count = %d, want 20", got)
	}
}

func TestCompletionFiresOnce(t *testing.T) {
	s := newShatter()
	completions := 0
	s.OnComplete(func() { completions++ })
	s.Start(800, 600)

	run(s, 1290*time.Millisecond)
	if completions != 0 || s.Completed() {
		t.Fatalf("completed early at %v", 1290*time.Millisecond)
	}
	s.Step(frame)
	if completions != 1 || !s.Completed() {
		t.Fatalf("completions at 1.3s = %d, want 1", completions)
	}

	run(s, 2*time.Second)
	if completions != 1 {
		t.Errorf("completions after glass settled = %d, want 1", completions)
	}
	if s.Active() {
		t.Error("still active after every flight ended")
	}
}

func TestRestartAfterFinish(t *testing.T) {
	s := newShatter()
	completions := 0
	s.OnComplete(func() { completions++ })
	s.Start(800, 600)
	run(s, 3*time.Second)

	if !s.Start(400, 300) {
		t.Fatal("restart rejected")
	}
	if s.Completed() {
		t.Error("restart kept completed flag")
	}
	run(s, 3*time.Second)
	if completions != 2 {
		t.Errorf("completions over two runs = %d, want 2", completions)
	}
}

func TestOverlayAndFlashTiming(t *testing.T) {
	tests := []struct {
		at      time.Duration
		overlay float64
		flash   float64
	}{
		{150 * time.Millisecond, 0.5, 0},
		{300 * time.Millisecond, 1, 0},
		{350 * time.Millisecond, 1, 0.5},
		{700 * time.Millisecond, 1, 1},
		{1100 * time.Millisecond, 1, 0.5},
		{1300 * time.Millisecond, 1, 0},
	}

	s := newShatter()
	s.Start(800, 600)
	var elapsed time.Duration
	for _, tt := range tests {
		run(s, tt.at-elapsed)
		elapsed = tt.at
		if !near(s.Overlay(), tt.overlay) {
			t.Errorf("overlay at %v = %v, want %v", tt.at, s.Overlay(), tt.overlay)
		}
		if !near(s.Flash(), tt.flash) {
			t.Errorf("flash at %v = %v, want %v", tt.at, s.Flash(), tt.flash)
		}
	}
}

func TestGlassFliesOutAndFades(t *testing.T) {
	s := newShatter()
	s.Start(800, 600)
	run(s, 2*time.Second)

	for i, g := range s.Glass() {
		st := g.Motion.Value()
		if !g.Motion.Done() {
			t.Fatalf("glass %d still in flight after 2s", i)
		}
		if st.Opacity != 0 {
			t.Errorf("glass %d opacity = %v, want 0", i, st.Opacity)
		}
		if math.Abs(st.Offset.X) > 200 || math.Abs(st.Offset.Y) > 150 {
			t.Errorf("glass %d offset %v beyond a quarter of the surface", i, st.Offset)
		}
		if st.Scale < 1 || st.Scale > 3 {
			t.Errorf("glass %d scale = %v, want [1,3]", i, st.Scale)
		}
		if g.Size < 10 || g.Size > 50 {
			t.Errorf("glass %d size = %v, want [10,50]", i, g.Size)
		}
	}
}

func TestRenderLayers(t *testing.T) {
	s := newShatter()
	rec := render.NewRecorder(800, 600)
	s.Bind(rec)

	s.Render(rec)
	if len(rec.Ops) != 1 {
		t.Fatalf("idle render recorded %d ops, want only the clear", len(rec.Ops))
	}

	s.Start(800, 600)
	run(s, 500*time.Millisecond)

	// overlay 2, glass 2 each, key visual 2
	if got := rec.Count(render.OpTriangle); got != 2+40+2 {
		t.Errorf("triangles = %d, want 44", got)
	}
	if got := rec.Count(render.OpCircle); got != 20 {
		t.Errorf("glints = %d, want 20", got)
	}
	if got := rec.Count(render.OpLabel); got != 1 {
		t.Errorf("labels = %d, want 1", got)
	}

	run(s, 3*time.Second)
	if len(rec.Ops) != 1 {
		t.Errorf("finished render recorded %d ops, want only the clear", len(rec.Ops))
	}
}
