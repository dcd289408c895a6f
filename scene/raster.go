package scene

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/crystal-shard/render"
	"github.com/lixenwraith/crystal-shard/vmath"
)

type faceDraw struct {
	a, b, c vmath.Point
	depth   float64
	color   render.RGB
	alpha   float64
}

// Render clears surface and draws the point cloud then every shard face far to near
func (s *Scene) Render(surface render.Surface) {
	surface.Clear()
	w, h := surface.Size()
	if w <= 0 || h <= 0 {
		return
	}
	vp := s.Camera.Viewport(float64(w), float64(h))

	if s.cloud != nil {
		s.drawPoints(surface, vp)
	}
	faces := s.drawShards(surface, vp)

	if s.statFaces != nil {
		s.statFaces.Store(int64(faces))
	}
}

func (s *Scene) drawPoints(surface render.Surface, vp Viewport) {
	pc := s.cloud
	for i := 0; i < pc.Len(); i++ {
		pt, depth, ok := vp.Project(pc.Displaced(i))
		if !ok {
			continue
		}
		r := math.Max(vp.ScreenSize(pc.Sizes[i], depth), 0.5)
		surface.Circle(pt.X, pt.Y, r, pc.Colors[i], 0.8, r)
	}
}

// drawShards returns the number of faces drawn
func (s *Scene) drawShards(surface render.Surface, vp Viewport) int {
	s.faceBuf = s.faceBuf[:0]

	for _, sh := range s.shards {
		model := sh.Model()
		normalMat := model.Mat3().Inv().Transpose()
		mesh := sh.Mesh

		world := make([]mgl64.Vec3, len(mesh.Positions))
		for i, p := range mesh.Positions {
			world[i] = mgl64.TransformCoordinate(p, model)
		}

		for _, f := range mesh.Faces {
			pa, da, okA := vp.Project(world[f[0]])
			pb, db, okB := vp.Project(world[f[1]])
			pc, dc, okC := vp.Project(world[f[2]])
			if !okA || !okB || !okC {
				continue
			}

			centroid := world[f[0]].Add(world[f[1]]).Add(world[f[2]]).Mul(1.0 / 3)
			n := normalMat.Mul3x1(mesh.Normals[f[0]].Add(mesh.Normals[f[1]]).Add(mesh.Normals[f[2]]))
			if n.Len() == 0 {
				continue
			}
			n = n.Normalize()
			view := s.Camera.Position.Sub(centroid)
			if view.Len() == 0 {
				continue
			}
			view = view.Normalize()
			if n.Dot(view) < 0 {
				if !sh.Material.DoubleSide {
					continue
				}
				n = n.Mul(-1)
			}

			col, alpha := s.shade(sh.Material, centroid, n, view)
			s.faceBuf = append(s.faceBuf, faceDraw{
				a: pa, b: pb, c: pc,
				depth: (da + db + dc) / 3,
				color: col,
				alpha: alpha,
			})
		}
	}

	// Painter's algorithm: sort far to near
	sort.Slice(s.faceBuf, func(i, j int) bool {
		return s.faceBuf[i].depth > s.faceBuf[j].depth
	})
	for _, fd := range s.faceBuf {
		surface.Triangle(fd.a, fd.b, fd.c, fd.color, fd.alpha)
	}
	return len(s.faceBuf)
}

func toVec(c render.RGB) mgl64.Vec3 {
	return mgl64.Vec3{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

func mulVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// blinn returns the Blinn-Phong specular term for light direction l and view direction v
func blinn(n, l, v mgl64.Vec3, shininess float64) float64 {
	h := l.Add(v)
	if h.Len() == 0 {
		return 0
	}
	return math.Pow(math.Max(0, n.Dot(h.Normalize())), shininess)
}

// shade lights one face at world position p with unit normal n facing unit view direction v
func (s *Scene) shade(m Material, p, n, v mgl64.Vec3) (render.RGB, float64) {
	shininess := 4 + (1-m.Roughness)*60

	light := toVec(s.Ambient.Color).Mul(s.Ambient.Intensity)
	var specular mgl64.Vec3

	dl := s.Directional.Direction()
	dirCol := toVec(s.Directional.Color).Mul(s.Directional.Intensity)
	light = light.Add(dirCol.Mul(math.Max(0, n.Dot(dl))))
	specular = specular.Add(dirCol.Mul(blinn(n, dl, v, shininess)))

	for _, pl := range s.lights {
		l := pl.Position.Sub(p)
		d := l.Len()
		if d == 0 {
			continue
		}
		l = l.Mul(1 / d)
		c := toVec(pl.Color).Mul(pl.Intensity * pl.Attenuation(d))
		light = light.Add(c.Mul(math.Max(0, n.Dot(l))))
		specular = specular.Add(c.Mul(blinn(n, l, v, shininess)))
	}

	nv := math.Max(0, n.Dot(v))
	fresnel := math.Pow(1-nv, 5)

	out := mulVec(toVec(m.Color), light).Mul(1 - m.Metalness)
	out = out.Add(specular.Mul(m.SpecularIntensity))
	coat := fresnel * m.Clearcoat * 0.5
	out = out.Add(mgl64.Vec3{coat, coat, coat})
	out = out.Add(toVec(m.Emissive).Mul(m.EmissiveIntensity))

	if s.env != nil && m.EnvMapIntensity > 0 {
		r := n.Mul(2 * n.Dot(v)).Sub(v)
		out = out.Add(toVec(s.env.Sample(r)).Mul(m.EnvMapIntensity * (m.Metalness + fresnel) * 0.5))
	}

	col := render.RGBFromFloat(out[0], out[1], out[2])
	if m.Iridescence > 0 && m.IridescenceRange[1] > 0 {
		// Thin film gets thicker toward grazing angles and sweeps the hue
		film := vmath.Lerp(m.IridescenceRange[0], m.IridescenceRange[1], 1-nv) / m.IridescenceRange[1]
		col = render.ShiftHue(col, m.Iridescence*film*120)
	}

	specLum := (specular[0] + specular[1] + specular[2]) / 3
	alpha := vmath.Clamp01(m.Opacity*(1-0.5*m.Transmission) + fresnel*m.Clearcoat*0.3 + specLum*0.3)
	return col, alpha
}
