package status

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

// Well-known metric keys written by the frame loop and its components
const (
	KeyFrames      = "loop.frames"
	KeyFrameTimeMs = "loop.frame_ms"
	KeyParticles   = "field.particles"
	KeyConnections = "field.connections"
	KeyPoints      = "points"
	KeyShards      = "shards"
	KeyFaces       = "faces"
	KeyAudio       = "audio.playing"
	KeyVariant     = "scene.variant"
	KeyView        = "page.view"
	KeySelected    = "works.selected"
	KeyTransitions = "page.transitions"
)

// SceneKey scopes a per-scene metric, e.g. SceneKey("showcase", KeyShards) = "scene.showcase.shards"
func SceneKey(scene, metric string) string {
	return "scene." + scene + "." + metric
}

// Registry is the central metrics facade
// Components cache pointers at construction; frame code writes atomics directly
type Registry struct {
	Bools   *Table[atomic.Bool]
	Ints    *Table[atomic.Int64]
	Floats  *Table[Float]
	Strings *Table[Text]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewTable[atomic.Bool](),
		Ints:    NewTable[atomic.Int64](),
		Floats:  NewTable[Float](),
		Strings: NewTable[Text](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Len() + r.Ints.Len() + r.Floats.Len() + r.Strings.Len()
}

// Report writes every metric as "key value" lines in sorted key order per type
func (r *Registry) Report(w io.Writer) error {
	var err error
	write := func(key, val string) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, "%-20s %s\n", key, val)
	}

	r.Ints.Each(func(key string, v *atomic.Int64) {
		write(key, humanize.Comma(v.Load()))
	})
	r.Floats.Each(func(key string, v *Float) {
		write(key, humanize.FormatFloat("#,###.##", v.Get()))
	})
	r.Bools.Each(func(key string, v *atomic.Bool) {
		write(key, fmt.Sprintf("%t", v.Load()))
	})
	r.Strings.Each(func(key string, v *Text) {
		write(key, v.Load())
	})
	return err
}
