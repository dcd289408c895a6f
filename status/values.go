package status

import (
	"math"
	"sync/atomic"
)

// MaxTextLen caps stored text so HUD columns stay aligned
const MaxTextLen = 24

// Float is an atomic float64, zero value reads 0
type Float struct {
	bits atomic.Uint64
}

func (f *Float) Set(val float64) { f.bits.Store(math.Float64bits(val)) }

func (f *Float) Get() float64 { return math.Float64frombits(f.bits.Load()) }

// Add applies delta and returns the new value
func (f *Float) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// Text is an atomic short string, zero value reads ""
type Text struct {
	v atomic.Value
}

// Store keeps at most MaxTextLen bytes of val
func (t *Text) Store(val string) {
	if len(val) > MaxTextLen {
		val = val[:MaxTextLen]
	}
	t.v.Store(val)
}

func (t *Text) Load() string {
	s, _ := t.v.Load().(string)
	return s
}
