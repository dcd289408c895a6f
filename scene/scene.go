package scene

import (
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/crystal-shard/render"
	"github.com/lixenwraith/crystal-shard/status"
)

// Scene owns a camera, lights, an optional point cloud and a shard collection
// All methods are called from the frame goroutine
type Scene struct {
	params        Params
	rng           *rand.Rand
	width, height int

	Camera      *Camera
	Ambient     AmbientLight
	Directional DirectionalLight
	lights      []*PointLight
	cloud       *PointCloud
	shards      []*Shard
	env         *EnvMap

	mouseX, mouseY float64
	surface        render.Surface
	faceBuf        []faceDraw

	// Cached metric pointers, nil when uninstrumented
	statShards *atomic.Int64
	statPoints *atomic.Int64
	statFaces  *atomic.Int64
}

// New builds camera, lights, point cloud and the initial shard set for a width x height viewport
func New(width, height int, params Params, rng *rand.Rand) *Scene {
	s := &Scene{
		params:      params,
		rng:         rng,
		width:       width,
		height:      height,
		Camera:      NewCamera(params.Camera, aspect(width, height)),
		Ambient:     params.Lights.Ambient,
		Directional: params.Lights.Directional,
		lights:      newPointLights(params.Lights),
	}
	if params.Particles.Count > 0 {
		s.cloud = NewPointCloud(rng, params.Particles)
	}
	for i := 0; i < params.Shards.Count; i++ {
		s.shards = append(s.shards, randomShard(rng, params.Shards))
	}
	return s
}

func aspect(w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return float64(w) / float64(h)
}

// Name returns the preset name
func (s *Scene) Name() string {
	return s.params.Name
}

// Instrument publishes shard, point and face counts to reg
func (s *Scene) Instrument(reg *status.Registry) {
	if reg == nil {
		return
	}
	s.statShards = reg.Ints.Get(status.SceneKey(s.params.Name, status.KeyShards))
	s.statPoints = reg.Ints.Get(status.SceneKey(s.params.Name, status.KeyPoints))
	s.statFaces = reg.Ints.Get(status.SceneKey(s.params.Name, status.KeyFaces))
	s.statShards.Store(int64(len(s.shards)))
	if s.cloud != nil {
		s.statPoints.Store(int64(s.cloud.Len()))
	}
}

// Bind sets the surface drawn by Tick
func (s *Scene) Bind(surface render.Surface) {
	s.surface = surface
}

// Size returns the viewport dimensions
func (s *Scene) Size() (int, int) {
	return s.width, s.height
}

// OnResize updates the camera aspect and resizes the bound surface; nothing else changes
func (s *Scene) OnResize(width, height int) {
	s.width, s.height = width, height
	s.Camera.Aspect = aspect(width, height)
	if r, ok := s.surface.(render.Resizer); ok {
		r.Resize(width, height)
	}
}

// OnPointerMove records the pointer offset from the viewport center
func (s *Scene) OnPointerMove(x, y float64) {
	s.mouseX = (x - float64(s.width)/2) * s.params.PointerScale
	s.mouseY = (y - float64(s.height)/2) * s.params.PointerScale
}

// Pointer returns the recorded pointer offset
func (s *Scene) Pointer() (float64, float64) {
	return s.mouseX, s.mouseY
}

// Tick eases the camera, advances time, rotates shards, steps owned tracks and renders
func (s *Scene) Tick(dt time.Duration) {
	targetX := s.mouseX * s.params.CameraFollow
	targetY := s.mouseY * s.params.CameraFollow
	pos := s.Camera.Position
	pos[0] += (targetX - pos[0]) * s.params.Easing
	pos[1] += (-targetY - pos[1]) * s.params.Easing
	s.Camera.Position = pos
	s.Camera.Target = vec(0, 0, 0)

	if s.cloud != nil {
		s.cloud.Time += dt.Seconds() * s.params.TimeScale
	}
	for _, l := range s.lights {
		l.Step(dt)
	}
	for _, sh := range s.shards {
		sh.Step(dt)
	}

	if s.surface != nil {
		s.Render(s.surface)
	}
}

// Step implements engine.Loop
func (s *Scene) Step(dt time.Duration) {
	s.Tick(dt)
}

// Time returns the point cloud time value, zero without a cloud
func (s *Scene) Time() float64 {
	if s.cloud == nil {
		return 0
	}
	return s.cloud.Time
}

// Cloud returns the point cloud, nil when the preset has none
func (s *Scene) Cloud() *PointCloud {
	return s.cloud
}

// Lights returns the orbiting point lights
func (s *Scene) Lights() []*PointLight {
	return s.lights
}

// Shards returns a snapshot of the shard list
func (s *Scene) Shards() []*Shard {
	return append([]*Shard(nil), s.shards...)
}

// AddShard creates one shard without rebuilding the set
func (s *Scene) AddShard(cfg ShardConfig) *Shard {
	sh := newShard(s.rng, s.params.Shards, cfg.Kind, 1)
	sh.Position = cfg.Position
	sh.Rotation = cfg.Rotation
	sh.Scale = cfg.Scale
	if sh.Scale == vec(0, 0, 0) {
		sh.Scale = vec(1, 1, 1)
	}
	if s.params.Shards.Showcase {
		sh.Material = ShowcaseMaterial(cfg.Color)
	} else {
		sh.Material = BackgroundMaterial(s.params.Shards.OpacityMax)
		sh.Material.Color = cfg.Color
	}

	s.shards = append(s.shards, sh)
	s.storeShardCount()
	return sh
}

// RemoveShard drops the shard with id, reporting whether it was present
func (s *Scene) RemoveShard(id uuid.UUID) bool {
	for i, sh := range s.shards {
		if sh.ID == id {
			s.shards = append(s.shards[:i], s.shards[i+1:]...)
			s.storeShardCount()
			return true
		}
	}
	return false
}

// RemoveAllShards drops every shard
func (s *Scene) RemoveAllShards() {
	s.shards = nil
	s.storeShardCount()
}

func (s *Scene) storeShardCount() {
	if s.statShards != nil {
		s.statShards.Store(int64(len(s.shards)))
	}
}

// SetEnvMap installs a reflection cube map, nil removes it
func (s *Scene) SetEnvMap(env *EnvMap) {
	s.env = env
}

// LoadEnvMap reads an environment map from dir; on failure the scene keeps rendering untextured
func (s *Scene) LoadEnvMap(dir string) error {
	env, err := LoadEnvMap(dir)
	if err != nil {
		log.Printf("scene %s: environment map unavailable, rendering untextured: %v", s.params.Name, err)
		return err
	}
	s.env = env
	return nil
}

// HasEnvMap reports whether a reflection map is installed
func (s *Scene) HasEnvMap() bool {
	return s.env != nil
}
