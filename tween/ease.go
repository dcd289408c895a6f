package tween

import "math"

// Ease maps linear progress in [0, 1] to eased progress
type Ease func(t float64) float64

func Linear(t float64) float64 { return t }

// SineInOut accelerates then decelerates along a half cosine
func SineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Power2Out is a quadratic decelerating curve
func Power2Out(t float64) float64 {
	u := 1 - t
	return 1 - u*u
}

// Power2In is a quadratic accelerating curve
func Power2In(t float64) float64 {
	return t * t
}

// Float interpolates scalars
func Float(a, b, t float64) float64 {
	return a + (b-a)*t
}
