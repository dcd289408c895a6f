package tween

import "github.com/charmbracelet/harmonica"

// Spring chases a moving target with damped harmonic motion
type Spring struct {
	spring harmonica.Spring
	Pos    float64
	Vel    float64
	Target float64
}

// NewSpring creates a spring stepped at fps updates per second
func NewSpring(fps int, frequency, damping float64) *Spring {
	return &Spring{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Update performs one step toward Target and returns the new position
func (s *Spring) Update() float64 {
	s.Pos, s.Vel = s.spring.Update(s.Pos, s.Vel, s.Target)
	return s.Pos
}

// Settled reports whether the spring is within eps of rest at the target
func (s *Spring) Settled(eps float64) bool {
	d := s.Pos - s.Target
	return d < eps && d > -eps && s.Vel < eps && s.Vel > -eps
}
