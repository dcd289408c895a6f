package host

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/lixenwraith/crystal-shard/config"
	"github.com/lixenwraith/crystal-shard/engine"
	"github.com/lixenwraith/crystal-shard/render"
	"github.com/lixenwraith/crystal-shard/status"
)

type fakeAudio struct {
	toggles, interacts, shatters int
	on                           bool
}

func (a *fakeAudio) Toggle() bool { a.toggles++; a.on = !a.on; return a.on }
func (a *fakeAudio) Interact()    { a.interacts++ }
func (a *fakeAudio) PlayShatter() { a.shatters++ }

// countingScheduler counts registrations on top of a manual scheduler
type countingScheduler struct {
	*engine.ManualScheduler
	registered int
}

func (c *countingScheduler) Register(l engine.Loop) engine.LoopID {
	c.registered++
	return c.ManualScheduler.Register(l)
}

func recorders(w, h int) Containers {
	return Containers{
		Stars:      render.NewRecorder(w, h),
		Scene:      render.NewRecorder(w, h),
		Field:      render.NewRecorder(w, h),
		Showcase:   render.NewRecorder(w, h),
		Works:      render.NewRecorder(w, h),
		Transition: render.NewRecorder(w, h),
		HUD:        render.NewRecorder(w, h),
	}
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Scene.Points = 50
	cfg.Scene.Shards = 3
	return cfg
}

func newTestPage(t *testing.T, c Containers, audio Audio) (*Page, *engine.ManualScheduler, *status.Registry) {
	t.Helper()
	sched := engine.NewManualScheduler(testConfig().Interval())
	reg := status.NewRegistry()
	deps := Deps{Scheduler: sched, Registry: reg, Rand: rand.New(rand.NewSource(5))}
	if audio != nil {
		deps.Audio = audio
	}
	p := NewPage(testConfig(), 320, 200, c, deps)
	if err := p.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return p, sched, reg
}

func TestInitializeRequiresScheduler(t *testing.T) {
	p := NewPage(testConfig(), 320, 200, recorders(320, 200), Deps{})
	if err := p.Initialize(); !errors.Is(err, ErrNoScheduler) {
		t.Errorf("err = %v, want ErrNoScheduler", err)
	}
}

func TestInitializeOnce(t *testing.T) {
	sched := &countingScheduler{ManualScheduler: engine.NewManualScheduler(testConfig().Interval())}
	p := NewPage(testConfig(), 320, 200, recorders(320, 200), Deps{Scheduler: sched})
	if err := p.Initialize(); err != nil {
		t.Fatal(err)
	}
	n := sched.registered
	if n != 7 {
		t.Errorf("registered loops = %d, want 7", n)
	}
	p.Initialize()
	if sched.registered != n {
		t.Errorf("second Initialize registered %d more loops", sched.registered-n)
	}
}

func TestNilContainersSkipped(t *testing.T) {
	p, sched, _ := newTestPage(t, Containers{Field: render.NewRecorder(320, 200)}, nil)

	if p.Field() == nil {
		t.Fatal("field not built")
	}
	if p.Background() != nil || p.Showcase() != nil || p.Grid() != nil || p.Shatter() != nil || p.Stars() != nil || p.HUD() != nil {
		t.Fatal("component built without a container")
	}

	p.Resize(640, 400)
	p.PointerMove(10, 10)
	p.Click(10, 10)
	p.AddShard()
	p.ClearShards()
	p.Select(true)
	if p.RemoveShard() || p.ToggleAudio() {
		t.Error("skipped components reported work")
	}
	if !p.Enter() || p.View() != ViewWorks {
		t.Error("Enter without transition did not swap immediately")
	}
	if sched.Advance(3) != 3 {
		t.Error("frames did not run")
	}
}

func TestResizeRelays(t *testing.T) {
	c := recorders(320, 200)
	p, _, _ := newTestPage(t, c, nil)
	p.Resize(100, 400)

	if w, h := p.Field().Size(); w != 100 || h != 400 {
		t.Errorf("field size = %vx%v", w, h)
	}
	if w, h := p.Background().Size(); w != 100 || h != 400 {
		t.Errorf("scene size = %dx%d", w, h)
	}
	if w, h := c.Scene.Size(); w != 100 || h != 400 {
		t.Errorf("scene surface = %dx%d, want resized with the camera", w, h)
	}
	if w, h := c.Transition.Size(); w != 100 || h != 400 {
		t.Errorf("transition surface = %dx%d", w, h)
	}
	if p.Grid().Columns() != 1 {
		t.Errorf("grid columns = %d after narrowing", p.Grid().Columns())
	}
	if a := p.Background().Camera.Aspect; a != 0.25 {
		t.Errorf("aspect = %v, want 0.25", a)
	}
}

func TestPointerRelays(t *testing.T) {
	p, _, _ := newTestPage(t, recorders(320, 200), nil)
	p.PointerMove(260, 100)

	if x, y := p.Background().Pointer(); x != 5 || y != 0 {
		t.Errorf("scene pointer = %v,%v want 5,0", x, y)
	}
}

func TestEnterTransitionSwapsView(t *testing.T) {
	audio := &fakeAudio{}
	p, sched, reg := newTestPage(t, recorders(320, 200), audio)

	if !p.Enter() {
		t.Fatal("Enter rejected")
	}
	if audio.shatters != 1 || audio.interacts != 1 {
		t.Errorf("audio shatter/interact = %d/%d, want 1/1", audio.shatters, audio.interacts)
	}
	// 1.3s at 60fps completes on the 79th frame
	sched.Advance(78)
	if p.View() != ViewHome {
		t.Fatal("view swapped before the flash ended")
	}
	sched.Advance(1)
	if p.View() != ViewWorks {
		t.Fatal("view not swapped at completion")
	}
	if got := reg.Strings.Get(status.KeyView).Load(); got != "works" {
		t.Errorf("view metric = %q", got)
	}
	if got := reg.Ints.Get(status.KeyTransitions).Load(); got != 1 {
		t.Errorf("transitions = %d", got)
	}

	sched.Advance(120)
	if p.Shatter().Active() {
		t.Fatal("transition still active")
	}
	p.Enter()
	sched.Advance(80)
	if p.View() != ViewHome {
		t.Error("second Enter did not return home")
	}
}

func TestClickOpensTileOnWorksView(t *testing.T) {
	audio := &fakeAudio{}
	p, sched, reg := newTestPage(t, recorders(320, 200), audio)

	if _, ok := p.Click(98, 36); ok {
		t.Error("click opened a tile on the home view")
	}
	p.ToggleWorks()
	proj, ok := p.Click(98, 36)
	if !ok || proj.Title != "SWC Project" {
		t.Fatalf("click = %+v,%v want SWC Project", proj, ok)
	}
	if got := reg.Strings.Get(status.KeySelected).Load(); got != "SWC Project" {
		t.Errorf("selected metric = %q", got)
	}
	if audio.interacts != 2 {
		t.Errorf("interactions = %d, want 2", audio.interacts)
	}

	p.Select(true)
	if sel, _ := p.Grid().Selected(); sel.Title != "Kisekae App" {
		t.Errorf("Select forward = %q", sel.Title)
	}

	sched.Advance(1)
	works := p.c.Works.(*render.Recorder)
	if works.Count(render.OpLabel) != 5 {
		t.Errorf("works labels = %d, want 5", works.Count(render.OpLabel))
	}
	p.ToggleWorks()
	sched.Advance(1)
	if len(works.Ops) != 1 {
		t.Errorf("hidden works recorded %d ops, want only the clear", len(works.Ops))
	}
}

func TestShowcaseShards(t *testing.T) {
	p, _, reg := newTestPage(t, recorders(320, 200), nil)
	sc := p.Showcase()
	if sc == nil {
		t.Fatal("showcase not built")
	}
	if n := len(sc.Shards()); n != 5 {
		t.Fatalf("seeded shards = %d, want one per project", n)
	}
	p.AddShard()
	if n := len(sc.Shards()); n != 6 {
		t.Errorf("after add = %d", n)
	}
	if !p.RemoveShard() || len(sc.Shards()) != 5 {
		t.Errorf("after remove = %d", len(sc.Shards()))
	}
	p.ClearShards()
	if p.RemoveShard() || len(sc.Shards()) != 0 {
		t.Error("shards left after clear")
	}
	if got := reg.Ints.Get(status.SceneKey("showcase", status.KeyShards)).Load(); got != 0 {
		t.Errorf("showcase shard metric = %d", got)
	}
}

func TestBackgroundVariantSkipsShowcase(t *testing.T) {
	cfg := testConfig()
	cfg.Scene.Variant = config.VariantBackground
	p := NewPage(cfg, 320, 200, recorders(320, 200), Deps{Scheduler: engine.NewManualScheduler(cfg.Interval())})
	if err := p.Initialize(); err != nil {
		t.Fatal(err)
	}
	if p.Showcase() != nil {
		t.Error("showcase built for the background variant")
	}
}

func TestFieldControls(t *testing.T) {
	p, _, _ := newTestPage(t, recorders(320, 200), nil)
	p.AdjustParticles(ParticleStep)
	if n := p.Field().Len(); n != 110 {
		t.Errorf("particles = %d, want 110", n)
	}
	p.AdjustParticles(-500)
	if n := p.Field().Len(); n != 0 {
		t.Errorf("particles = %d, want 0", n)
	}
	p.TogglePause()
	if p.Field().Active() {
		t.Error("field active after pause")
	}
	p.TogglePause()
	if !p.Field().Active() {
		t.Error("field paused after resume")
	}
}

func TestToggleAudio(t *testing.T) {
	audio := &fakeAudio{}
	p, _, _ := newTestPage(t, recorders(320, 200), audio)
	if !p.ToggleAudio() || p.ToggleAudio() {
		t.Error("toggle did not alternate")
	}
	if audio.toggles != 2 {
		t.Errorf("toggles = %d", audio.toggles)
	}
}

func TestTeardownStopsFrames(t *testing.T) {
	p, sched, _ := newTestPage(t, recorders(320, 200), nil)
	if sched.Advance(2) != 2 {
		t.Fatal("frames did not run")
	}
	p.Teardown()
	p.Teardown()
	if sched.Advance(2) != 0 {
		t.Error("frames ran after teardown")
	}
	if p.Initialized() || p.Field() != nil {
		t.Error("components kept after teardown")
	}
	p.PointerMove(1, 1)
}

func TestReinitializeReplacesLoops(t *testing.T) {
	p, sched, reg := newTestPage(t, recorders(320, 200), nil)
	if n := sched.Loops(); n != 7 {
		t.Fatalf("loops after Initialize = %d, want 7", n)
	}
	sched.Advance(1)
	old := p.Field()

	p.Teardown()
	if n := sched.Loops(); n != 0 {
		t.Fatalf("loops after Teardown = %d, want 0", n)
	}

	if err := p.Initialize(); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
	if n := sched.Loops(); n != 7 {
		t.Errorf("loops after re-Initialize = %d, want 7", n)
	}
	if p.Field() == old {
		t.Error("field was not rebuilt")
	}

	before := old.Particles()[0]
	if sched.Advance(3) != 3 {
		t.Fatal("frames did not run after re-Initialize")
	}
	if after := old.Particles()[0]; after != before {
		t.Errorf("torn-down field still steps: %+v -> %+v", before, after)
	}
	if reg.Ints.Get(status.KeyParticles).Load() != int64(p.Field().Len()) {
		t.Errorf("particles metric does not track the live field")
	}
}

func TestPresenterStepsAfterComponents(t *testing.T) {
	field := render.NewRecorder(320, 200)
	sched := engine.NewManualScheduler(testConfig().Interval())
	p := NewPage(testConfig(), 320, 200, Containers{Field: field}, Deps{Scheduler: sched})

	var seen []int
	p.AddPresenter(engine.LoopFunc(func(time.Duration) {
		seen = append(seen, field.Count(render.OpCircle))
	}))
	if err := p.Initialize(); err != nil {
		t.Fatal(err)
	}
	sched.Advance(1)

	if len(seen) != 1 || seen[0] == 0 {
		t.Errorf("presenter saw %v circles, want the field drawn first", seen)
	}

	p.Teardown()
	if err := p.Initialize(); err != nil {
		t.Fatal(err)
	}
	sched.Advance(1)
	if len(seen) != 2 {
		t.Errorf("presenter ran %d times after re-Initialize, want once per frame", len(seen))
	}
}
