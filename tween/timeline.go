package tween

import (
	"sort"
	"time"
)

// Stepper is anything a timeline can drive
type Stepper interface {
	Step(dt time.Duration)
	Done() bool
}

type timelineEntry struct {
	at    time.Duration
	item  Stepper
	call  func()
	fired bool
}

// Timeline starts steppers and callbacks at fixed offsets from its own start
type Timeline struct {
	entries []timelineEntry
	elapsed time.Duration
}

// NewTimeline creates an empty timeline
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Add schedules s to begin at offset
func (tl *Timeline) Add(offset time.Duration, s Stepper) *Timeline {
	tl.insert(timelineEntry{at: offset, item: s})
	return tl
}

// Call schedules fn to run once when the timeline reaches offset
func (tl *Timeline) Call(offset time.Duration, fn func()) *Timeline {
	tl.insert(timelineEntry{at: offset, call: fn})
	return tl
}

func (tl *Timeline) insert(e timelineEntry) {
	tl.entries = append(tl.entries, e)
	// Stable so equal offsets keep insertion order
	sort.SliceStable(tl.entries, func(i, j int) bool { return tl.entries[i].at < tl.entries[j].at })
}

// Elapsed returns time since the timeline started
func (tl *Timeline) Elapsed() time.Duration {
	return tl.elapsed
}

// Step advances every started entry; an entry starting mid-step receives only its share of dt
func (tl *Timeline) Step(dt time.Duration) {
	prev := tl.elapsed
	tl.elapsed += dt

	for i, e := range tl.entries {
		if e.at > tl.elapsed {
			break
		}
		if e.call != nil {
			if !e.fired {
				tl.entries[i].fired = true
				e.call()
			}
			continue
		}
		if e.item.Done() {
			continue
		}
		share := dt
		if e.at > prev {
			share = tl.elapsed - e.at
		}
		e.item.Step(share)
	}
}

// Done reports whether every callback fired and every stepper finished
func (tl *Timeline) Done() bool {
	for _, e := range tl.entries {
		if e.call != nil {
			if !e.fired {
				return false
			}
			continue
		}
		if e.at > tl.elapsed || !e.item.Done() {
			return false
		}
	}
	return true
}
