package vmath

import (
	"math"
	"math/rand"
)

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates a toward b by t, t is not clamped
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Wrap teleports v to the opposite edge when it leaves [0, size]
// Exit below zero re-enters at size, exit above size re-enters at zero
func Wrap(v, size float64) float64 {
	if v < 0 {
		return size
	}
	if v > size {
		return 0
	}
	return v
}

// RandRange returns a uniform value in [lo, hi)
func RandRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// RandSigned returns a uniform value in [-amount, amount)
func RandSigned(rng *rand.Rand, amount float64) float64 {
	return (rng.Float64() - 0.5) * 2 * amount
}

// RandAngle returns a uniform angle in [0, 2π)
func RandAngle(rng *rand.Rand) float64 {
	return rng.Float64() * 2 * math.Pi
}

// Ease moves current toward target by factor, exponential smoothing per tick
func Ease(current, target, factor float64) float64 {
	return current + (target-current)*factor
}
