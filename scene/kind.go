package scene

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind selects a shard's base geometry
type Kind int

const (
	KindTetrahedron Kind = iota
	KindOctahedron
	KindDodecahedron
	KindIcosahedron
	KindCrystal

	// KindAny picks uniformly from the scene's configured kinds
	KindAny Kind = -1
)

var kindNames = map[Kind]string{
	KindTetrahedron:  "tetrahedron",
	KindOctahedron:   "octahedron",
	KindDodecahedron: "dodecahedron",
	KindIcosahedron:  "icosahedron",
	KindCrystal:      "crystal",
	KindAny:          "any",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Build returns the kind's base mesh at radius before perturbation
func (k Kind) Build(rng *rand.Rand, radius float64) *Mesh {
	switch k {
	case KindOctahedron:
		return Octahedron(radius)
	case KindDodecahedron:
		return Dodecahedron(radius)
	case KindIcosahedron:
		return Icosahedron(radius)
	case KindCrystal:
		m := Crystal(rng)
		if radius != 1 {
			m.Transform(mgl64.Scale3D(radius, radius, radius))
			m.ComputeNormals()
		}
		return m
	default:
		return Tetrahedron(radius)
	}
}
