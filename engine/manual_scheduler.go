package engine

import (
	"sync"
	"time"
)

// ManualScheduler steps loops only when told to
// Drives deterministic tests and hosts that own their own frame callback
type ManualScheduler struct {
	step time.Duration

	mu      sync.Mutex
	loops   loopSet
	pending []func()
	running bool
	frames  uint64
}

// NewManualScheduler creates a scheduler that hands every loop a fixed dt
func NewManualScheduler(step time.Duration) *ManualScheduler {
	return &ManualScheduler{step: step}
}

// Register appends a loop
func (ms *ManualScheduler) Register(l Loop) LoopID {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.loops.add(l)
}

// Unregister removes a loop, false when id is unknown
func (ms *ManualScheduler) Unregister(id LoopID) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.loops.remove(id)
}

// Loops returns the number of registered loops
func (ms *ManualScheduler) Loops() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.loops.len()
}

// Post queues fn for the start of the next frame
func (ms *ManualScheduler) Post(fn func()) {
	ms.mu.Lock()
	ms.pending = append(ms.pending, fn)
	ms.mu.Unlock()
}

// Start enables Advance
func (ms *ManualScheduler) Start() {
	ms.mu.Lock()
	ms.running = true
	ms.mu.Unlock()
}

// Stop disables Advance, pending work is kept
func (ms *ManualScheduler) Stop() {
	ms.mu.Lock()
	ms.running = false
	ms.mu.Unlock()
}

// Frames returns the number of frames executed
func (ms *ManualScheduler) Frames() uint64 {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.frames
}

// Advance runs exactly n frames and returns how many ran
// Returns 0 when the scheduler is stopped
func (ms *ManualScheduler) Advance(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		ms.mu.Lock()
		if !ms.running {
			ms.mu.Unlock()
			break
		}
		loops := ms.loops.entries
		pending := ms.pending
		ms.pending = nil
		ms.frames++
		ms.mu.Unlock()

		runFrame(loops, pending, ms.step)
		ran++
	}
	return ran
}
