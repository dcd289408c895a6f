package host

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lixenwraith/crystal-shard/config"
	"github.com/lixenwraith/crystal-shard/engine"
	"github.com/lixenwraith/crystal-shard/render"
	"github.com/lixenwraith/crystal-shard/status"
)

// Headless pixel canvas, the size of an 80x24 terminal
const (
	HeadlessWidth  = 80
	HeadlessHeight = 48
)

// RunHeadless drives the page for cfg.Frames manual ticks with a scripted pointer and writes a metrics report
// The pointer circles the viewport and the transition fires at the first third of the run
func RunHeadless(cfg config.Config, deps Deps, out io.Writer) (*Page, error) {
	sched := engine.NewManualScheduler(cfg.Interval())
	deps.Scheduler = sched
	if deps.Registry == nil {
		deps.Registry = status.NewRegistry()
	}
	layers := NewLayers(HeadlessWidth, HeadlessHeight, cfg.PixelScale)
	lw, lh := layers.LogicalSize()

	var composed *render.RenderBuffer
	page := NewPage(cfg, lw, lh, layers.Containers, deps)
	page.SetLineHeight(render.PixelsPerRow)
	page.AddPresenter(engine.LoopFunc(func(time.Duration) {
		composed = layers.Compositor.Compose()
	}))
	if err := page.Initialize(); err != nil {
		return nil, err
	}
	defer page.Teardown()

	start := time.Now()
	enterAt := cfg.Frames / 3
	for i := 0; i < cfg.Frames; i++ {
		a := float64(i) / 60 * math.Pi
		x := float64(lw)/2 + math.Cos(a)*float64(lw)/3
		y := float64(lh)/2 + math.Sin(a)*float64(lh)/3
		sched.Post(func() { page.PointerMove(x, y) })
		if i == enterAt {
			sched.Post(func() { page.Enter() })
		}
		sched.Advance(1)
	}
	elapsed := time.Since(start)

	lit := 0
	if composed != nil {
		w, h := composed.Size()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if composed.At(x, y).C != render.RgbBackground {
					lit++
				}
			}
		}
	}

	fmt.Fprintf(out, "crystal-shard headless: %s frames in %s (%s lit pixels, view %s)\n",
		humanize.Comma(int64(sched.Frames())), elapsed.Round(time.Millisecond), humanize.Comma(int64(lit)), page.View())
	if err := deps.Registry.Report(out); err != nil {
		return page, fmt.Errorf("write report: %w", err)
	}
	return page, nil
}
