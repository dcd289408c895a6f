package engine

import "time"

// Loop is implemented by anything advanced once per scheduled frame
// Step runs on the scheduler goroutine and must not block
type Loop interface {
	Step(dt time.Duration)
}

// LoopFunc adapts a function to Loop
type LoopFunc func(dt time.Duration)

// Step calls f(dt)
func (f LoopFunc) Step(dt time.Duration) {
	f(dt)
}

// LoopID identifies a registration, zero is never issued
type LoopID uint64

// Scheduler drives registered loops once per frame
// Register, Unregister and Post may be called from any goroutine; loops and
// posted functions always run on the scheduler's own frame goroutine, in order
type Scheduler interface {
	Register(l Loop) LoopID
	Unregister(id LoopID) bool
	Post(fn func())
	Start()
	Stop()
	Frames() uint64
}

type loopEntry struct {
	id   LoopID
	loop Loop
}

// loopSet is the registration list shared by both schedulers, callers hold their mutex
// remove builds a new slice so a snapshot taken for a running frame stays intact
type loopSet struct {
	last    LoopID
	entries []loopEntry
}

func (s *loopSet) add(l Loop) LoopID {
	s.last++
	s.entries = append(s.entries, loopEntry{id: s.last, loop: l})
	return s.last
}

func (s *loopSet) remove(id LoopID) bool {
	for i, e := range s.entries {
		if e.id == id {
			next := make([]loopEntry, 0, len(s.entries)-1)
			next = append(next, s.entries[:i]...)
			s.entries = append(next, s.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (s *loopSet) len() int {
	return len(s.entries)
}

// runFrame applies posted events first so the frame observes the latest input
func runFrame(loops []loopEntry, pending []func(), dt time.Duration) {
	for _, fn := range pending {
		fn()
	}
	for _, e := range loops {
		e.loop.Step(dt)
	}
}
