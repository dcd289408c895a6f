package scene

import (
	"math"
	"time"

	"github.com/lixenwraith/crystal-shard/render"
)

// CameraParams configure the perspective camera
type CameraParams struct {
	Fov      float64
	Near     float64
	Far      float64
	Distance float64 // initial distance on +Z
}

// LightParams configure ambient, directional and orbiting point lights
type LightParams struct {
	Ambient     AmbientLight
	Directional DirectionalLight

	PointColors    []render.RGB
	PointIntensity float64
	PointDistance  float64
	OrbitRadius    float64
	OrbitZ         float64
	OrbitSpan      float64 // radians between a light's start and turnaround
	OrbitBase      time.Duration
	OrbitStep      time.Duration // added per light index
}

// PointCloudParams configure the shader-animated point cloud
type PointCloudParams struct {
	Count    int
	Spread   float64 // cube edge centered on the origin
	SizeMin  float64
	SizeMax  float64
	SpeedMin float64
	SpeedMax float64
	Palette  []render.RGB
}

// ShardParams configure the shards built at initialization and by AddShard
type ShardParams struct {
	Count         int
	Kinds         []Kind
	SizeMin       float64
	SizeMax       float64
	OpacityMin    float64
	OpacityMax    float64
	RotationSpeed float64 // per-axis speed is uniform in ±RotationSpeed/2 radians per tick
	Spread        float64 // position cube edge
	ScaleMin      float64
	ScaleMax      float64
	Jitter        float64 // vertex perturbation amplitude
	Drift         float64 // per-axis drift amplitude, zero disables drift tracks
	DriftMin      time.Duration
	DriftMax      time.Duration
	Showcase      bool // tinted iridescent material instead of faint glass
}

// Params fully describe a scene
type Params struct {
	Name      string
	Camera    CameraParams
	Lights    LightParams
	Particles PointCloudParams
	Shards    ShardParams

	PointerScale float64 // pointer offset from center to camera units
	CameraFollow float64 // camera target per unit of pointer offset
	Easing       float64 // per-tick camera smoothing coefficient
	TimeScale    float64 // time uniform advance per second
}

// BackgroundParams is the full-page backdrop: a wide point cloud and faint drifting shards
func BackgroundParams() Params {
	return Params{
		Name:   "background",
		Camera: CameraParams{Fov: 75, Near: 1, Far: 5000, Distance: 1000},
		Lights: LightParams{
			Ambient:     AmbientLight{Color: render.RGB{R: 0x40, G: 0x40, B: 0x40}, Intensity: 0.5},
			Directional: DirectionalLight{Color: render.RGBWhite, Intensity: 0.8, Position: vec(1, 1, 1)},
			PointColors: []render.RGB{
				{R: 0xff, G: 0x00, B: 0xff},
				{R: 0x00, G: 0xff, B: 0xff},
				{R: 0xff, G: 0xff, B: 0x00},
			},
			PointIntensity: 0.5,
			PointDistance:  1000,
			OrbitRadius:    300,
			OrbitZ:         200,
			OrbitSpan:      2 * math.Pi / 3,
			OrbitBase:      20 * time.Second,
			OrbitStep:      5 * time.Second,
		},
		Particles: PointCloudParams{
			Count:    1500,
			Spread:   2000,
			SizeMin:  2,
			SizeMax:  5,
			SpeedMin: 0.05,
			SpeedMax: 0.2,
			Palette: []render.RGB{
				{R: 0xff, G: 0x9f, B: 0xf3},
				{R: 0xa5, G: 0xf1, B: 0xe9},
				{R: 0xe2, G: 0xf6, B: 0xca},
				{R: 0xff, G: 0xcb, B: 0xcb},
			},
		},
		Shards: ShardParams{
			Count:         20,
			Kinds:         []Kind{KindTetrahedron, KindOctahedron, KindIcosahedron},
			SizeMin:       30,
			SizeMax:       80,
			OpacityMin:    0.05,
			OpacityMax:    0.2,
			RotationSpeed: 0.003,
			Spread:        1000,
			ScaleMin:      0.5,
			ScaleMax:      2,
			Jitter:        5,
			Drift:         50,
			DriftMin:      10 * time.Second,
			DriftMax:      30 * time.Second,
		},
		PointerScale: 0.05,
		CameraFollow: 0.5,
		Easing:       0.05,
		TimeScale:    0.5,
	}
}

// ShowcaseParams is the foreground crystal display: no cloud, four strong lights, shards added on demand
func ShowcaseParams() Params {
	return Params{
		Name:   "showcase",
		Camera: CameraParams{Fov: 75, Near: 0.1, Far: 1000, Distance: 5},
		Lights: LightParams{
			Ambient:     AmbientLight{Color: render.RGBWhite, Intensity: 0.5},
			Directional: DirectionalLight{Color: render.RGBWhite, Intensity: 1, Position: vec(1, 1, 1)},
			PointColors: []render.RGB{
				{R: 0xff, G: 0x14, B: 0x93},
				{R: 0x00, G: 0xff, B: 0xff},
				{R: 0xff, G: 0xff, B: 0x00},
				{R: 0xff, G: 0x45, B: 0x00},
			},
			PointIntensity: 2.5,
			PointDistance:  100,
			OrbitRadius:    10,
			OrbitZ:         5,
			OrbitSpan:      math.Pi,
			OrbitBase:      10 * time.Second,
			OrbitStep:      2 * time.Second,
		},
		Shards: ShardParams{
			Kinds: []Kind{
				KindTetrahedron, KindOctahedron, KindDodecahedron, KindIcosahedron, KindCrystal,
			},
			SizeMin:       1,
			SizeMax:       1,
			OpacityMin:    0.9,
			OpacityMax:    0.9,
			RotationSpeed: 0.01,
			ScaleMin:      1,
			ScaleMax:      1,
			Jitter:        0.1,
			Showcase:      true,
		},
		PointerScale: 0,
		CameraFollow: 0,
		Easing:       0.05,
		TimeScale:    0.5,
	}
}
