package scene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/crystal-shard/vmath"
)

// Part is a contiguous vertex and face range of a merged mesh
// Normals are oriented outward relative to each part's own center
type Part struct {
	FirstVertex, VertexCount int
	FirstFace, FaceCount     int
}

// Mesh is an indexed triangle mesh
type Mesh struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Faces     [][3]int
	Parts     []Part
}

// newMesh builds a single-part mesh with every vertex scaled by radius
func newMesh(verts []mgl64.Vec3, faces [][3]int, radius float64) *Mesh {
	m := &Mesh{
		Positions: make([]mgl64.Vec3, len(verts)),
		Faces:     append([][3]int(nil), faces...),
	}
	for i, v := range verts {
		m.Positions[i] = v.Normalize().Mul(radius)
	}
	m.Parts = []Part{{VertexCount: len(verts), FaceCount: len(faces)}}
	m.ComputeNormals()
	return m
}

// Tetrahedron returns a regular tetrahedron inscribed in a sphere of radius
func Tetrahedron(radius float64) *Mesh {
	verts := []mgl64.Vec3{{1, 1, 1}, {-1, -1, 1}, {-1, 1, -1}, {1, -1, -1}}
	faces := [][3]int{{2, 1, 0}, {0, 3, 2}, {1, 3, 0}, {2, 3, 1}}
	return newMesh(verts, faces, radius)
}

// Octahedron returns a regular octahedron inscribed in a sphere of radius
func Octahedron(radius float64) *Mesh {
	verts := []mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	faces := [][3]int{
		{0, 2, 4}, {0, 4, 3}, {0, 3, 5}, {0, 5, 2},
		{1, 2, 5}, {1, 5, 3}, {1, 3, 4}, {1, 4, 2},
	}
	return newMesh(verts, faces, radius)
}

// Icosahedron returns a regular icosahedron inscribed in a sphere of radius
func Icosahedron(radius float64) *Mesh {
	t := (1 + math.Sqrt(5)) / 2
	verts := []mgl64.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return newMesh(verts, faces, radius)
}

// Dodecahedron returns a regular dodecahedron, each pentagon split into three triangles
func Dodecahedron(radius float64) *Mesh {
	t := (1 + math.Sqrt(5)) / 2
	r := 1 / t
	verts := []mgl64.Vec3{
		{-1, -1, -1}, {-1, -1, 1}, {-1, 1, -1}, {-1, 1, 1},
		{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1},
		{0, -r, -t}, {0, -r, t}, {0, r, -t}, {0, r, t},
		{-r, -t, 0}, {-r, t, 0}, {r, -t, 0}, {r, t, 0},
		{-t, 0, -r}, {t, 0, -r}, {-t, 0, r}, {t, 0, r},
	}
	faces := [][3]int{
		{3, 11, 7}, {3, 7, 15}, {3, 15, 13},
		{7, 19, 17}, {7, 17, 6}, {7, 6, 15},
		{17, 4, 8}, {17, 8, 10}, {17, 10, 6},
		{8, 0, 16}, {8, 16, 2}, {8, 2, 10},
		{0, 12, 1}, {0, 1, 18}, {0, 18, 16},
		{6, 10, 2}, {6, 2, 13}, {6, 13, 15},
		{2, 16, 18}, {2, 18, 3}, {2, 3, 13},
		{18, 1, 9}, {18, 9, 11}, {18, 11, 3},
		{4, 14, 12}, {4, 12, 0}, {4, 0, 8},
		{11, 9, 5}, {11, 5, 19}, {11, 19, 7},
		{19, 5, 14}, {19, 14, 4}, {19, 4, 17},
		{1, 12, 14}, {1, 14, 5}, {1, 5, 9},
	}
	return newMesh(verts, faces, radius)
}

// Cone returns an apex-up pyramid of the given base radius and height, centered on the origin
// The apex is a ring of coincident vertices, one per segment, so perturbation can split it
func Cone(radiusBottom, height float64, segments int) *Mesh {
	segments = max(segments, 3)
	half := height / 2
	m := &Mesh{}

	// [0, n) apex ring, [n, 2n) base ring, 2n apex center, 2n+1 base center
	for i := 0; i < segments; i++ {
		m.Positions = append(m.Positions, mgl64.Vec3{0, half, 0})
	}
	for i := 0; i < segments; i++ {
		theta := float64(i) / float64(segments) * 2 * math.Pi
		m.Positions = append(m.Positions, mgl64.Vec3{radiusBottom * math.Sin(theta), -half, radiusBottom * math.Cos(theta)})
	}
	apex := 2 * segments
	base := apex + 1
	m.Positions = append(m.Positions, mgl64.Vec3{0, half, 0}, mgl64.Vec3{0, -half, 0})

	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		top0, top1 := i, j
		bot0, bot1 := segments+i, segments+j
		m.Faces = append(m.Faces,
			[3]int{top0, bot0, bot1},
			[3]int{top0, bot1, top1},
			[3]int{apex, top1, top0},
			[3]int{base, bot0, bot1},
		)
	}
	m.Parts = []Part{{VertexCount: len(m.Positions), FaceCount: len(m.Faces)}}
	m.ComputeNormals()
	return m
}

// Crystal builds a jagged prism cluster: a main cone whose apex ring is pulled up and apart,
// with one to three smaller perturbed cones fused at random orientations around it
func Crystal(rng *rand.Rand) *Mesh {
	m := Cone(1, 2, 6)
	for i, v := range m.Positions {
		switch {
		case v.Y() > 0:
			m.Positions[i] = mgl64.Vec3{
				v.X() + vmath.RandSigned(rng, 0.15),
				v.Y() + rng.Float64()*0.5 + 0.5,
				v.Z() + vmath.RandSigned(rng, 0.15),
			}
		case v.Y() < 0:
			m.Positions[i] = mgl64.Vec3{
				v.X() + vmath.RandSigned(rng, 0.1),
				v.Y(),
				v.Z() + vmath.RandSigned(rng, 0.1),
			}
		}
	}

	extra := rng.Intn(3) + 1
	for i := 0; i < extra; i++ {
		small := Cone(0.5, 1, 5)
		small.Perturb(rng, 0.1)

		angle := vmath.RandAngle(rng)
		radius := vmath.RandRange(rng, 0.3, 0.8)
		height := vmath.RandRange(rng, -0.5, 1.0)
		rot := mgl64.Rotate3DX(rng.Float64() * math.Pi).
			Mul3(mgl64.Rotate3DY(rng.Float64() * math.Pi)).
			Mul3(mgl64.Rotate3DZ(rng.Float64() * math.Pi))
		offset := mgl64.Vec3{math.Cos(angle) * radius, height, math.Sin(angle) * radius}

		small.Transform(mgl64.Translate3D(offset.X(), offset.Y(), offset.Z()).Mul4(rot.Mat4()))
		m.Merge(small)
	}

	m.ComputeNormals()
	return m
}

// Perturb displaces every vertex by independent uniform noise in [-amount, amount] per axis
// and recomputes normals
func (m *Mesh) Perturb(rng *rand.Rand, amount float64) {
	if amount <= 0 {
		return
	}
	for i, v := range m.Positions {
		m.Positions[i] = v.Add(mgl64.Vec3{
			vmath.RandSigned(rng, amount),
			vmath.RandSigned(rng, amount),
			vmath.RandSigned(rng, amount),
		})
	}
	m.ComputeNormals()
}

// Transform applies an affine matrix to every position
func (m *Mesh) Transform(mat mgl64.Mat4) {
	for i, v := range m.Positions {
		m.Positions[i] = mgl64.TransformCoordinate(v, mat)
	}
}

// Merge appends other as a new part; other is not modified
func (m *Mesh) Merge(other *Mesh) {
	vOff := len(m.Positions)
	fOff := len(m.Faces)
	m.Positions = append(m.Positions, other.Positions...)
	for _, f := range other.Faces {
		m.Faces = append(m.Faces, [3]int{f[0] + vOff, f[1] + vOff, f[2] + vOff})
	}
	for _, p := range other.Parts {
		p.FirstVertex += vOff
		p.FirstFace += fOff
		m.Parts = append(m.Parts, p)
	}
}

// Center returns the mean vertex position of part p
func (m *Mesh) Center(p Part) mgl64.Vec3 {
	var c mgl64.Vec3
	if p.VertexCount == 0 {
		return c
	}
	for _, v := range m.Positions[p.FirstVertex : p.FirstVertex+p.VertexCount] {
		c = c.Add(v)
	}
	return c.Mul(1 / float64(p.VertexCount))
}

// FaceNormal returns the unnormalized normal of face f; its length is twice the face area
func (m *Mesh) FaceNormal(f [3]int) mgl64.Vec3 {
	a, b, c := m.Positions[f[0]], m.Positions[f[1]], m.Positions[f[2]]
	return b.Sub(a).Cross(c.Sub(a))
}

// ComputeNormals rewinds every face to face away from its part center,
// then writes area-weighted unit vertex normals
func (m *Mesh) ComputeNormals() {
	m.Normals = make([]mgl64.Vec3, len(m.Positions))

	for _, p := range m.Parts {
		center := m.Center(p)
		for fi := p.FirstFace; fi < p.FirstFace+p.FaceCount; fi++ {
			f := m.Faces[fi]
			n := m.FaceNormal(f)
			centroid := m.Positions[f[0]].Add(m.Positions[f[1]]).Add(m.Positions[f[2]]).Mul(1.0 / 3)
			if n.Dot(centroid.Sub(center)) < 0 {
				f[1], f[2] = f[2], f[1]
				m.Faces[fi] = f
				n = n.Mul(-1)
			}
			for _, vi := range f {
				m.Normals[vi] = m.Normals[vi].Add(n)
			}
		}

		for vi := p.FirstVertex; vi < p.FirstVertex+p.VertexCount; vi++ {
			n := m.Normals[vi]
			if n.Len() < 1e-12 {
				n = m.Positions[vi].Sub(center)
			}
			if n.Len() < 1e-12 {
				n = mgl64.Vec3{0, 1, 0}
			}
			m.Normals[vi] = n.Normalize()
		}
	}
}
