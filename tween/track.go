package tween

import "time"

// Infinite repeats a track forever
const Infinite = -1

// Options shape a track's timing
type Options struct {
	Duration time.Duration
	Delay    time.Duration // applied once, before the first cycle
	Ease     Ease          // nil means Linear
	Repeat   int           // extra cycles after the first, Infinite for endless
	Yoyo     bool          // odd cycles run backwards
}

// Track animates one value from From to To
// A track is owned by exactly one entity and advanced only from that entity's tick
type Track[T any] struct {
	From, To T

	lerp       func(a, b T, t float64) T
	opts       Options
	elapsed    time.Duration
	value      T
	done       bool
	onComplete func()
}

// New creates a track at its start value
func New[T any](from, to T, lerp func(a, b T, t float64) T, opts Options) *Track[T] {
	if opts.Ease == nil {
		opts.Ease = Linear
	}
	return &Track[T]{From: from, To: to, lerp: lerp, opts: opts, value: from}
}

// NewFloat creates a scalar track
func NewFloat(from, to float64, opts Options) *Track[float64] {
	return New(from, to, Float, opts)
}

// OnComplete sets a callback fired once when a finite track ends
func (tr *Track[T]) OnComplete(fn func()) *Track[T] {
	tr.onComplete = fn
	return tr
}

// Value returns the current interpolated value
func (tr *Track[T]) Value() T {
	return tr.value
}

// Done reports whether a finite track has reached its end
func (tr *Track[T]) Done() bool {
	return tr.done
}

// Elapsed returns time advanced so far including the delay
func (tr *Track[T]) Elapsed() time.Duration {
	return tr.elapsed
}

// Reset rewinds to the start, the callback is kept
func (tr *Track[T]) Reset() {
	tr.elapsed = 0
	tr.done = false
	tr.value = tr.From
}

// Step advances by dt
func (tr *Track[T]) Step(dt time.Duration) {
	tr.Advance(dt)
}

// Advance moves the track forward by dt and returns the new value
func (tr *Track[T]) Advance(dt time.Duration) T {
	if tr.done {
		return tr.value
	}
	tr.elapsed += dt

	active := tr.elapsed - tr.opts.Delay
	if active < 0 {
		tr.value = tr.From
		return tr.value
	}

	dur := tr.opts.Duration
	if dur <= 0 {
		tr.finish(tr.opts.Repeat)
		return tr.value
	}

	cycle := int(active / dur)
	if tr.opts.Repeat != Infinite && cycle > tr.opts.Repeat {
		tr.finish(tr.opts.Repeat)
		return tr.value
	}

	p := float64(active%dur) / float64(dur)
	tr.value = tr.at(cycle, p)
	return tr.value
}

// at evaluates progress p within the given cycle
func (tr *Track[T]) at(cycle int, p float64) T {
	if tr.opts.Yoyo && cycle%2 == 1 {
		p = 1 - p
	}
	return tr.lerp(tr.From, tr.To, tr.opts.Ease(p))
}

func (tr *Track[T]) finish(lastCycle int) {
	if lastCycle < 0 {
		lastCycle = 0
	}
	tr.value = tr.at(lastCycle, 1)
	tr.done = true
	if tr.onComplete != nil {
		fn := tr.onComplete
		tr.onComplete = nil
		fn()
	}
}
