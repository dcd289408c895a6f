package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/crystal-shard/status"
)

func TestManualSchedulerAdvanceRunsExactTicks(t *testing.T) {
	ms := NewManualScheduler(16 * time.Millisecond)

	var count int
	var total time.Duration
	ms.Register(LoopFunc(func(dt time.Duration) {
		count++
		total += dt
	}))

	if ran := ms.Advance(3); ran != 0 {
		t.Fatalf("Expected no frames before Start, got %d", ran)
	}

	ms.Start()
	if ran := ms.Advance(5); ran != 5 {
		t.Fatalf("Expected 5 frames, got %d", ran)
	}
	if count != 5 {
		t.Errorf("Expected loop to step 5 times, got %d", count)
	}
	if total != 80*time.Millisecond {
		t.Errorf("Expected total dt 80ms, got %v", total)
	}
	if ms.Frames() != 5 {
		t.Errorf("Expected Frames()=5, got %d", ms.Frames())
	}

	ms.Stop()
	if ran := ms.Advance(2); ran != 0 {
		t.Errorf("Expected no frames after Stop, got %d", ran)
	}
}

func TestManualSchedulerPostRunsBeforeLoops(t *testing.T) {
	ms := NewManualScheduler(time.Millisecond)
	ms.Start()

	var order []string
	ms.Register(LoopFunc(func(time.Duration) { order = append(order, "loop") }))
	ms.Post(func() { order = append(order, "event") })

	ms.Advance(1)

	if len(order) != 2 || order[0] != "event" || order[1] != "loop" {
		t.Errorf("Expected [event loop], got %v", order)
	}

	// Posted work runs once
	ms.Advance(1)
	if len(order) != 3 {
		t.Errorf("Expected posted function to run exactly once, got %v", order)
	}
}

func TestLoopsStepInRegistrationOrder(t *testing.T) {
	ms := NewManualScheduler(time.Millisecond)
	ms.Start()

	var order []int
	for i := 0; i < 3; i++ {
		ms.Register(LoopFunc(func(time.Duration) { order = append(order, i) }))
	}
	ms.Advance(1)

	for i, v := range order {
		if v != i {
			t.Fatalf("Expected registration order, got %v", order)
		}
	}
}

func TestFrameSchedulerStartStop(t *testing.T) {
	reg := status.NewRegistry()
	fs := NewFrameScheduler(NewPausableClock(), 2*time.Millisecond, reg)

	var frames atomic.Int64
	var posted atomic.Bool
	fs.Register(LoopFunc(func(dt time.Duration) {
		if dt < 0 || dt > MaxFrameDelta {
			t.Errorf("dt out of range: %v", dt)
		}
		frames.Add(1)
	}))
	fs.Post(func() { posted.Store(true) })

	fs.Start()
	fs.Start() // second start is a no-op

	deadline := time.Now().Add(2 * time.Second)
	for frames.Load() < 5 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	fs.Stop()
	fs.Stop() // idempotent

	if frames.Load() < 5 {
		t.Fatalf("Expected at least 5 frames, got %d", frames.Load())
	}
	if !posted.Load() {
		t.Error("Posted function did not run")
	}
	if uint64(reg.Ints.Get(status.KeyFrames).Load()) != fs.Frames() {
		t.Errorf("Frame metric %d does not match Frames() %d", reg.Ints.Get(status.KeyFrames).Load(), fs.Frames())
	}

	after := frames.Load()
	time.Sleep(20 * time.Millisecond)
	if frames.Load() != after {
		t.Error("Frames continued after Stop")
	}
}

func TestFrameSchedulerPausedSkipsLoops(t *testing.T) {
	clock := NewPausableClock()
	clock.Pause()
	fs := NewFrameScheduler(clock, time.Millisecond, nil)

	var frames atomic.Int64
	var posted atomic.Bool
	fs.Register(LoopFunc(func(time.Duration) { frames.Add(1) }))
	fs.Post(func() { posted.Store(true) })

	fs.Start()
	time.Sleep(30 * time.Millisecond)
	fs.Stop()

	if frames.Load() != 0 {
		t.Errorf("Expected no frames while paused, got %d", frames.Load())
	}
	if !posted.Load() {
		t.Error("Posted events should still drain while paused")
	}
}

func TestManualSchedulerUnregister(t *testing.T) {
	ms := NewManualScheduler(time.Millisecond)
	ms.Start()

	var order []string
	a := ms.Register(LoopFunc(func(time.Duration) { order = append(order, "a") }))
	ms.Register(LoopFunc(func(time.Duration) { order = append(order, "b") }))
	if a == 0 {
		t.Fatal("Register issued the zero id")
	}

	if !ms.Unregister(a) {
		t.Fatal("Unregister of a live id returned false")
	}
	if ms.Unregister(a) {
		t.Error("second Unregister should report false")
	}
	ms.Advance(1)

	if len(order) != 1 || order[0] != "b" {
		t.Errorf("Expected [b], got %v", order)
	}
	if ms.Loops() != 1 {
		t.Errorf("Expected 1 loop left, got %d", ms.Loops())
	}
}

// waitFrames polls until frames passes n or the deadline expires
func waitFrames(frames *atomic.Int64, n int64) bool {
	deadline := time.Now().Add(2 * time.Second)
	for frames.Load() < n && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	return frames.Load() >= n
}

func TestFrameSchedulerRestartsAfterStop(t *testing.T) {
	fs := NewFrameScheduler(NewPausableClock(), 2*time.Millisecond, nil)
	var frames atomic.Int64
	fs.Register(LoopFunc(func(time.Duration) { frames.Add(1) }))

	fs.Start()
	if !waitFrames(&frames, 3) {
		t.Fatalf("Expected frames before Stop, got %d", frames.Load())
	}
	fs.Stop()

	before := frames.Load()
	fs.Start()
	if !waitFrames(&frames, before+3) {
		t.Fatalf("Expected frames to resume after restart, stuck at %d", frames.Load())
	}
	fs.Stop()

	after := frames.Load()
	time.Sleep(20 * time.Millisecond)
	if frames.Load() != after {
		t.Error("Frames continued after second Stop")
	}
}

func TestFrameSchedulerStopBeforeStart(t *testing.T) {
	fs := NewFrameScheduler(NewPausableClock(), 2*time.Millisecond, nil)
	var frames atomic.Int64
	fs.Register(LoopFunc(func(time.Duration) { frames.Add(1) }))

	fs.Stop() // nothing running

	fs.Start()
	if !waitFrames(&frames, 3) {
		t.Fatalf("Expected frames after Start, got %d", frames.Load())
	}
	fs.Stop()

	after := frames.Load()
	time.Sleep(20 * time.Millisecond)
	if frames.Load() != after {
		t.Errorf("Stop did not halt the loop: %d frames at Stop, %d later", after, frames.Load())
	}
}

func TestFrameSchedulerUnregisterSkipsLoop(t *testing.T) {
	fs := NewFrameScheduler(NewPausableClock(), 2*time.Millisecond, nil)
	var kept, dropped atomic.Int64
	fs.Register(LoopFunc(func(time.Duration) { kept.Add(1) }))
	id := fs.Register(LoopFunc(func(time.Duration) { dropped.Add(1) }))
	if !fs.Unregister(id) {
		t.Fatal("Unregister returned false")
	}

	fs.Start()
	ok := waitFrames(&kept, 3)
	fs.Stop()

	if !ok {
		t.Fatalf("Expected frames, got %d", kept.Load())
	}
	if dropped.Load() != 0 {
		t.Errorf("Unregistered loop stepped %d times", dropped.Load())
	}
}
