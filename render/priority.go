package render

// RenderPriority determines layer order. Lower values composite first
type RenderPriority int

const (
	PriorityBackground RenderPriority = iota
	PriorityStars
	PriorityField
	PriorityShowcase
	PriorityWorks
	PriorityTransition
	PriorityHUD
)
