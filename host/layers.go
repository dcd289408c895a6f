package host

import (
	"math"

	"github.com/lixenwraith/crystal-shard/render"
)

// Layer names in the compositor
const (
	LayerStars      = "stars"
	LayerScene      = "scene"
	LayerField      = "field"
	LayerShowcase   = "showcase"
	LayerWorks      = "works"
	LayerTransition = "transition"
	LayerHUD        = "hud"
)

// Layers is a compositor holding one canvas per component, presented to components in logical units
type Layers struct {
	Compositor *render.Compositor
	Containers Containers

	scale float64 // logical units per pixel
}

// NewLayers creates every layer at pixel size; scale is logical units per pixel
// The HUD stays in pixel units so text lands on whole cells
func NewLayers(pixelW, pixelH int, scale float64) *Layers {
	if scale <= 0 {
		scale = 1
	}
	comp := render.NewCompositor(pixelW, pixelH, render.RgbBackground)
	factor := 1 / scale
	wrap := func(name string, pr render.RenderPriority) render.Surface {
		return render.NewScaled(comp.Layer(name, pr), factor)
	}
	return &Layers{
		Compositor: comp,
		scale:      scale,
		Containers: Containers{
			Stars:      wrap(LayerStars, render.PriorityStars),
			Scene:      wrap(LayerScene, render.PriorityBackground),
			Field:      wrap(LayerField, render.PriorityField),
			Showcase:   wrap(LayerShowcase, render.PriorityShowcase),
			Works:      wrap(LayerWorks, render.PriorityWorks),
			Transition: wrap(LayerTransition, render.PriorityTransition),
			HUD:        comp.Layer(LayerHUD, render.PriorityHUD),
		},
	}
}

// Scale returns logical units per pixel
func (l *Layers) Scale() float64 {
	return l.scale
}

// LogicalSize returns the compositor size in logical units
func (l *Layers) LogicalSize() (int, int) {
	w, h := l.Compositor.Size()
	return int(math.Round(float64(w) * l.scale)), int(math.Round(float64(h) * l.scale))
}

// ToLogical converts a pixel position
func (l *Layers) ToLogical(px, py float64) (float64, float64) {
	return px * l.scale, py * l.scale
}

// Resize resizes every layer in pixels
func (l *Layers) Resize(pixelW, pixelH int) {
	l.Compositor.Resize(pixelW, pixelH)
}
