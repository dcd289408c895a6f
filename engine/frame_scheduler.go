package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/crystal-shard/core"
	"github.com/lixenwraith/crystal-shard/status"
)

// MaxFrameDelta caps dt handed to loops after a stall so tweens do not jump
const MaxFrameDelta = 100 * time.Millisecond

// FrameScheduler runs registered loops on a fixed frame interval
// Pause-aware through its PausableClock, sleeps on a timer instead of busy-waiting
type FrameScheduler struct {
	clock    *PausableClock
	interval time.Duration

	mu      sync.Mutex
	loops   loopSet
	pending []func()

	// Frame timing, owned by the scheduler goroutine
	lastFrameTime time.Time
	nextDeadline  time.Time

	frameCount atomic.Uint64

	// Control, a fresh stop channel per run
	ctrl     sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool

	// Cached metric pointers
	statFrames  *atomic.Int64
	statFrameMs *status.Float
}

// NewFrameScheduler creates a scheduler ticking every interval
func NewFrameScheduler(clock *PausableClock, interval time.Duration, reg *status.Registry) *FrameScheduler {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &FrameScheduler{
		clock:       clock,
		interval:    interval,
		statFrames:  reg.Ints.Get(status.KeyFrames),
		statFrameMs: reg.Floats.Get(status.KeyFrameTimeMs),
	}
}

// Register appends a loop, loops step in registration order
func (fs *FrameScheduler) Register(l Loop) LoopID {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.loops.add(l)
}

// Unregister removes a loop from the next frame on
func (fs *FrameScheduler) Unregister(id LoopID) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.loops.remove(id)
}

// Post queues fn to run on the frame goroutine before the next frame's loops
func (fs *FrameScheduler) Post(fn func()) {
	fs.mu.Lock()
	fs.pending = append(fs.pending, fn)
	fs.mu.Unlock()
}

// Frames returns the number of frames executed
func (fs *FrameScheduler) Frames() uint64 {
	return fs.frameCount.Load()
}

// Start begins the frame loop; a no-op while running, restarts after Stop
func (fs *FrameScheduler) Start() {
	fs.ctrl.Lock()
	defer fs.ctrl.Unlock()
	if fs.running {
		return
	}
	fs.running = true
	stop := make(chan struct{})
	fs.stopChan = stop
	fs.wg.Add(1)
	core.Go(func() { fs.schedulerLoop(stop) })
}

// Stop halts the frame loop and waits for the in-flight frame to finish
// A no-op when not running; must not be called from a loop
func (fs *FrameScheduler) Stop() {
	fs.ctrl.Lock()
	defer fs.ctrl.Unlock()
	if !fs.running {
		return
	}
	fs.running = false
	close(fs.stopChan)
	fs.wg.Wait()
}

// schedulerLoop runs frames at deadline with drift correction until stop closes
func (fs *FrameScheduler) schedulerLoop(stop <-chan struct{}) {
	defer fs.wg.Done()

	fs.lastFrameTime = fs.clock.Now()
	fs.nextDeadline = fs.lastFrameTime.Add(fs.interval)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		default:
		}

		var sleepDuration time.Duration

		if fs.clock.IsPaused() {
			// Still drain posted events so input stays responsive while paused
			fs.drainPending()
			sleepDuration = fs.interval * 2
		} else {
			now := fs.clock.Now()
			if !now.Before(fs.nextDeadline) {
				fs.processFrame(now)

				fs.nextDeadline = fs.nextDeadline.Add(fs.interval)
				if now.Sub(fs.nextDeadline) > fs.interval*2 {
					fs.nextDeadline = now.Add(fs.interval)
				}
				sleepDuration = max(fs.nextDeadline.Sub(fs.clock.Now()), 0)
			} else {
				sleepDuration = fs.nextDeadline.Sub(now)
			}
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-stop:
				return
			}
		}
	}
}

// drainPending runs posted functions without stepping loops
func (fs *FrameScheduler) drainPending() {
	fs.mu.Lock()
	pending := fs.pending
	fs.pending = nil
	fs.mu.Unlock()
	runFrame(nil, pending, 0)
}

// processFrame executes one frame
func (fs *FrameScheduler) processFrame(now time.Time) {
	dt := min(now.Sub(fs.lastFrameTime), MaxFrameDelta)
	fs.lastFrameTime = now

	fs.mu.Lock()
	loops := fs.loops.entries
	pending := fs.pending
	fs.pending = nil
	fs.mu.Unlock()

	start := fs.clock.RealTime()
	runFrame(loops, pending, dt)

	frames := fs.frameCount.Add(1)
	fs.statFrames.Store(int64(frames))
	fs.statFrameMs.Set(float64(fs.clock.RealTime().Sub(start).Microseconds()) / 1000)
}
