package engine

import (
	"sync/atomic"
	"time"
)

// TimeProvider abstracts the wall clock so frame timing is testable
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider returns time.Now, which carries a monotonic reading
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates the real time source
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// FakeTime is a TimeProvider that only moves when told to
type FakeTime struct {
	base    time.Time
	elapsed atomic.Int64
}

// NewFakeTime creates a fake clock reading base
func NewFakeTime(base time.Time) *FakeTime {
	return &FakeTime{base: base}
}

func (f *FakeTime) Now() time.Time {
	return f.base.Add(time.Duration(f.elapsed.Load()))
}

// Advance moves the reading forward by d
func (f *FakeTime) Advance(d time.Duration) {
	f.elapsed.Add(int64(d))
}
