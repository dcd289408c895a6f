package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPolyhedraCounts(t *testing.T) {
	tests := []struct {
		name         string
		mesh         *Mesh
		verts, faces int
	}{
		{"tetrahedron", Tetrahedron(1), 4, 4},
		{"octahedron", Octahedron(1), 6, 8},
		{"dodecahedron", Dodecahedron(1), 20, 36},
		{"icosahedron", Icosahedron(1), 12, 20},
		{"cone", Cone(1, 2, 6), 14, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.mesh.Positions) != tt.verts || len(tt.mesh.Faces) != tt.faces {
				t.Errorf("got %d verts %d faces, want %d and %d",
					len(tt.mesh.Positions), len(tt.mesh.Faces), tt.verts, tt.faces)
			}
		})
	}
}

func TestPolyhedraRadius(t *testing.T) {
	for _, m := range []*Mesh{Tetrahedron(30), Octahedron(30), Dodecahedron(30), Icosahedron(30)} {
		for i, v := range m.Positions {
			if math.Abs(v.Len()-30) > 1e-9 {
				t.Fatalf("vertex %d at distance %f, want 30", i, v.Len())
			}
		}
	}
}

func checkUnitNormals(t *testing.T, m *Mesh) {
	t.Helper()
	if len(m.Normals) != len(m.Positions) {
		t.Fatalf("normals %d for %d positions", len(m.Normals), len(m.Positions))
	}
	for i, n := range m.Normals {
		if math.Abs(n.Len()-1) > 1e-9 {
			t.Fatalf("normal %d length %f", i, n.Len())
		}
	}
}

func checkOutwardFaces(t *testing.T, m *Mesh) {
	t.Helper()
	for _, p := range m.Parts {
		center := m.Center(p)
		for fi := p.FirstFace; fi < p.FirstFace+p.FaceCount; fi++ {
			f := m.Faces[fi]
			centroid := m.Positions[f[0]].Add(m.Positions[f[1]]).Add(m.Positions[f[2]]).Mul(1.0 / 3)
			if m.FaceNormal(f).Dot(centroid.Sub(center)) < 0 {
				t.Fatalf("face %d points inward", fi)
			}
		}
	}
}

func TestPerturbedNormalsUnitAndOutward(t *testing.T) {
	builders := map[string]func() *Mesh{
		"tetrahedron":  func() *Mesh { return Tetrahedron(1) },
		"octahedron":   func() *Mesh { return Octahedron(1) },
		"dodecahedron": func() *Mesh { return Dodecahedron(1) },
		"icosahedron":  func() *Mesh { return Icosahedron(1) },
		"background":   func() *Mesh { return Icosahedron(30) },
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			for seed := int64(0); seed < 25; seed++ {
				rng := rand.New(rand.NewSource(seed))
				m := build()
				amount := 0.1
				if name == "background" {
					amount = 5
				}
				m.Perturb(rng, amount)

				checkUnitNormals(t, m)
				checkOutwardFaces(t, m)
				center := m.Center(m.Parts[0])
				for i, n := range m.Normals {
					if n.Dot(m.Positions[i].Sub(center)) <= 0 {
						t.Fatalf("seed %d: vertex normal %d points inward", seed, i)
					}
				}
			}
		})
	}
}

func TestCrystalShape(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		m := Crystal(rng)
		m.Perturb(rng, 0.1)

		if n := len(m.Parts); n < 2 || n > 4 {
			t.Fatalf("seed %d: %d parts, want 2..4", seed, n)
		}
		checkUnitNormals(t, m)
		checkOutwardFaces(t, m)

		// Apex ring pulled up by at least 0.5 minus jitter
		main := m.Parts[0]
		for i := 0; i < 6; i++ {
			if y := m.Positions[main.FirstVertex+i].Y(); y < 1.35 {
				t.Fatalf("seed %d: apex vertex %d at y=%f, want >= 1.35", seed, i, y)
			}
		}
	}
}

func TestMergeOffsetsIndices(t *testing.T) {
	a := Tetrahedron(1)
	b := Octahedron(1)
	b.Transform(mgl64.Translate3D(5, 0, 0))
	a.Merge(b)

	if len(a.Parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(a.Parts))
	}
	p := a.Parts[1]
	if p.FirstVertex != 4 || p.FirstFace != 4 || p.VertexCount != 6 || p.FaceCount != 8 {
		t.Errorf("second part = %+v", p)
	}
	for _, f := range a.Faces[4:] {
		for _, vi := range f {
			if vi < 4 || vi >= 10 {
				t.Fatalf("merged face index %d outside second part", vi)
			}
		}
	}
	if c := a.Center(p); math.Abs(c.X()-5) > 1e-9 {
		t.Errorf("second part center x = %f, want 5", c.X())
	}
}

func TestPerturbBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	m := Octahedron(1)
	before := append([]mgl64.Vec3(nil), m.Positions...)
	m.Perturb(rng, 0.1)
	for i := range before {
		d := m.Positions[i].Sub(before[i])
		for axis := 0; axis < 3; axis++ {
			if math.Abs(d[axis]) > 0.1 {
				t.Fatalf("vertex %d axis %d moved %f", i, axis, d[axis])
			}
		}
	}
}
