package host

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lixenwraith/crystal-shard/render"
	"github.com/lixenwraith/crystal-shard/status"
)

var (
	hudText = render.RGB{R: 200, G: 200, B: 230}
	hudDim  = render.RGB{R: 120, G: 120, B: 150}
)

// HUD prints live metrics in the top-left corner
type HUD struct {
	surface    render.Surface
	visible    bool
	lineHeight float64

	frames      *atomic.Int64
	frameMs     *status.Float
	particles   *atomic.Int64
	connections *atomic.Int64
	audio       *atomic.Bool
	view        *status.Text
	selected    *status.Text

	lines []string
}

// NewHUD caches the metric pointers it displays; lineHeight is in surface units
func NewHUD(reg *status.Registry, lineHeight float64) *HUD {
	return &HUD{
		visible:     true,
		lineHeight:  max(lineHeight, 1),
		frames:      reg.Ints.Get(status.KeyFrames),
		frameMs:     reg.Floats.Get(status.KeyFrameTimeMs),
		particles:   reg.Ints.Get(status.KeyParticles),
		connections: reg.Ints.Get(status.KeyConnections),
		audio:       reg.Bools.Get(status.KeyAudio),
		view:        reg.Strings.Get(status.KeyView),
		selected:    reg.Strings.Get(status.KeySelected),
	}
}

// Bind sets the surface drawn by Step
func (h *HUD) Bind(s render.Surface) {
	h.surface = s
}

// Toggle shows or hides the overlay
func (h *HUD) Toggle() {
	h.visible = !h.visible
}

// Lines returns the text of the last render
func (h *HUD) Lines() []string {
	return h.lines
}

func (h *HUD) Step(time.Duration) {
	if h.surface != nil {
		h.Render(h.surface)
	}
}

// Render formats the metrics as label lines
func (h *HUD) Render(s render.Surface) {
	s.Clear()
	h.lines = h.lines[:0]
	if !h.visible {
		return
	}

	music := "off"
	if h.audio.Load() {
		music = "on"
	}
	h.lines = append(h.lines,
		fmt.Sprintf("%s  frame %s  %sms", h.view.Load(), humanize.Comma(h.frames.Load()), humanize.FormatFloat("#.##", h.frameMs.Get())),
		fmt.Sprintf("particles %s  links %s  music %s", humanize.Comma(h.particles.Load()), humanize.Comma(h.connections.Load()), music),
	)
	if sel := h.selected.Load(); sel != "" {
		h.lines = append(h.lines, "selected "+sel)
	}

	for i, line := range h.lines {
		c := hudText
		if i > 0 {
			c = hudDim
		}
		s.Label(1, float64(i)*h.lineHeight, line, c)
	}
}
