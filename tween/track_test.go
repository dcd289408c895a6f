package tween

import (
	"math"
	"testing"
	"time"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEaseEndpoints(t *testing.T) {
	eases := map[string]Ease{
		"linear":    Linear,
		"sineInOut": SineInOut,
		"power2Out": Power2Out,
		"power2In":  Power2In,
	}
	for name, e := range eases {
		t.Run(name, func(t *testing.T) {
			if !near(e(0), 0) || !near(e(1), 1) {
				t.Errorf("%s(0)=%f %s(1)=%f, want 0 and 1", name, e(0), name, e(1))
			}
		})
	}
	if Power2Out(0.5) <= 0.5 {
		t.Error("Power2Out should lead linear at midpoint")
	}
}

func TestTrackReachesEndpoint(t *testing.T) {
	completed := 0
	tr := NewFloat(0, 10, Options{Duration: time.Second}).OnComplete(func() { completed++ })

	if v := tr.Advance(500 * time.Millisecond); !near(v, 5) {
		t.Errorf("midpoint = %f, want 5", v)
	}
	if v := tr.Advance(600 * time.Millisecond); !near(v, 10) {
		t.Errorf("end = %f, want 10", v)
	}
	if !tr.Done() {
		t.Error("track not done after duration")
	}
	tr.Advance(time.Second)
	if completed != 1 {
		t.Errorf("OnComplete fired %d times, want 1", completed)
	}
}

func TestTrackDelay(t *testing.T) {
	tr := NewFloat(1, 2, Options{Duration: time.Second, Delay: time.Second})
	if v := tr.Advance(900 * time.Millisecond); v != 1 {
		t.Errorf("during delay = %f, want 1", v)
	}
	if v := tr.Advance(600 * time.Millisecond); !near(v, 1.5) {
		t.Errorf("after delay = %f, want 1.5", v)
	}
}

func TestTrackYoyoInfinite(t *testing.T) {
	tr := NewFloat(0, 1, Options{Duration: time.Second, Repeat: Infinite, Yoyo: true})

	tests := []struct {
		step time.Duration
		want float64
	}{
		{250 * time.Millisecond, 0.25},
		{time.Second, 0.75}, // 1.25s: second cycle runs backwards
		{time.Second, 0.25}, // 2.25s: forward again
	}
	for _, tt := range tests {
		if v := tr.Advance(tt.step); !near(v, tt.want) {
			t.Errorf("at %v = %f, want %f", tr.Elapsed(), v, tt.want)
		}
	}
	tr.Advance(time.Hour)
	if tr.Done() {
		t.Error("infinite track reported done")
	}
}

func TestTrackYoyoOnceEndsAtStart(t *testing.T) {
	tr := NewFloat(3, 7, Options{Duration: time.Second, Repeat: 1, Yoyo: true})
	tr.Advance(5 * time.Second)
	if !tr.Done() || !near(tr.Value(), 3) {
		t.Errorf("value = %f done = %v, want 3 and done", tr.Value(), tr.Done())
	}
}

func TestTrackZeroDuration(t *testing.T) {
	tr := NewFloat(0, 4, Options{})
	if v := tr.Advance(0); v != 4 || !tr.Done() {
		t.Errorf("zero duration = %f done=%v, want 4 done", v, tr.Done())
	}
}

func TestTrackReset(t *testing.T) {
	tr := NewFloat(0, 1, Options{Duration: time.Second})
	tr.Advance(2 * time.Second)
	tr.Reset()
	if tr.Done() || tr.Value() != 0 {
		t.Errorf("after Reset value=%f done=%v", tr.Value(), tr.Done())
	}
}

func TestGenericTrack(t *testing.T) {
	type pair struct{ a, b float64 }
	lerp := func(x, y pair, t float64) pair {
		return pair{Float(x.a, y.a, t), Float(x.b, y.b, t)}
	}
	tr := New(pair{0, 10}, pair{10, 0}, lerp, Options{Duration: 2 * time.Second, Ease: SineInOut})
	got := tr.Advance(time.Second)
	if !near(got.a, 5) || !near(got.b, 5) {
		t.Errorf("midpoint = %+v, want {5 5}", got)
	}
}
