package scene

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/lixenwraith/crystal-shard/render"
	"github.com/lixenwraith/crystal-shard/tween"
	"github.com/lixenwraith/crystal-shard/vmath"
)

// Shard is one translucent polyhedral mesh instance
type Shard struct {
	ID       uuid.UUID
	Kind     Kind
	Mesh     *Mesh
	Material Material

	Position      mgl64.Vec3
	Rotation      mgl64.Vec3 // Euler XYZ, radians, never wrapped
	Scale         mgl64.Vec3
	RotationSpeed mgl64.Vec3 // radians per tick

	// Drift animates Position; nil for stationary shards
	Drift *tween.Track[mgl64.Vec3]
}

// ShardConfig places a shard added after initialization
type ShardConfig struct {
	Kind     Kind
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
	Color    render.RGB
}

// DefaultShardConfig is a unit white shard of random kind at the origin
func DefaultShardConfig() ShardConfig {
	return ShardConfig{
		Kind:  KindAny,
		Scale: vec(1, 1, 1),
		Color: render.RGBWhite,
	}
}

// Step adds one tick of rotation and advances the drift track
func (s *Shard) Step(dt time.Duration) {
	s.Rotation = s.Rotation.Add(s.RotationSpeed)
	if s.Drift != nil {
		s.Position = s.Drift.Advance(dt)
	}
}

// Model returns the local-to-world matrix: translate, rotate X then Y then Z, scale
func (s *Shard) Model() mgl64.Mat4 {
	rot := mgl64.HomogRotate3DX(s.Rotation.X()).
		Mul4(mgl64.HomogRotate3DY(s.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(s.Rotation.Z()))
	return mgl64.Translate3D(s.Position.X(), s.Position.Y(), s.Position.Z()).
		Mul4(rot).
		Mul4(mgl64.Scale3D(s.Scale.X(), s.Scale.Y(), s.Scale.Z()))
}

// newShard builds a shard of kind with the given radius and perturbed geometry
func newShard(rng *rand.Rand, p ShardParams, kind Kind, radius float64) *Shard {
	if kind == KindAny {
		kind = pickKind(rng, p.Kinds)
	}
	mesh := kind.Build(rng, radius)
	mesh.Perturb(rng, p.Jitter)

	half := p.RotationSpeed / 2
	return &Shard{
		ID:   uuid.New(),
		Kind: kind,
		Mesh: mesh,
		RotationSpeed: mgl64.Vec3{
			vmath.RandSigned(rng, half),
			vmath.RandSigned(rng, half),
			vmath.RandSigned(rng, half),
		},
		Scale: vec(1, 1, 1),
	}
}

// randomShard builds a shard for the initial set: random kind, size, transform and drift
func randomShard(rng *rand.Rand, p ShardParams) *Shard {
	s := newShard(rng, p, KindAny, vmath.RandRange(rng, p.SizeMin, p.SizeMax))

	opacity := vmath.RandRange(rng, p.OpacityMin, p.OpacityMax)
	if p.Showcase {
		s.Material = ShowcaseMaterial(render.RGBWhite)
		s.Material.Opacity = opacity
	} else {
		s.Material = BackgroundMaterial(opacity)
	}

	half := p.Spread / 2
	s.Position = mgl64.Vec3{vmath.RandSigned(rng, half), vmath.RandSigned(rng, half), vmath.RandSigned(rng, half)}
	s.Rotation = mgl64.Vec3{vmath.RandAngle(rng), vmath.RandAngle(rng), vmath.RandAngle(rng)}
	scale := vmath.RandRange(rng, p.ScaleMin, p.ScaleMax)
	s.Scale = vec(scale, scale, scale)

	if p.Drift > 0 {
		to := s.Position.Add(mgl64.Vec3{
			vmath.RandSigned(rng, p.Drift),
			vmath.RandSigned(rng, p.Drift),
			vmath.RandSigned(rng, p.Drift),
		})
		dur := p.DriftMin + time.Duration(rng.Float64()*float64(p.DriftMax-p.DriftMin))
		s.Drift = tween.New(s.Position, to, lerpVec3, tween.Options{
			Duration: dur,
			Ease:     tween.SineInOut,
			Repeat:   tween.Infinite,
			Yoyo:     true,
		})
	}
	return s
}

func pickKind(rng *rand.Rand, kinds []Kind) Kind {
	if len(kinds) == 0 {
		return KindTetrahedron
	}
	return kinds[rng.Intn(len(kinds))]
}

func vec(x, y, z float64) mgl64.Vec3 {
	return mgl64.Vec3{x, y, z}
}
