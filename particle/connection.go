package particle

import "math"

// Connection is a transient line between two particles closer than the threshold
type Connection struct {
	A, B     int
	Distance float64
	Opacity  float64 // 1 at zero distance, approaching 0 at the threshold
}

// Connections returns every unordered pair with distance < maxDistance
// Quadratic in len(ps); fine for the stock hundred particles, a spatial grid is needed past a few thousand
func Connections(ps []Particle, maxDistance float64) []Connection {
	if maxDistance <= 0 {
		return nil
	}
	maxSq := maxDistance * maxDistance
	var out []Connection
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			dx := ps[i].X - ps[j].X
			dy := ps[i].Y - ps[j].Y
			dSq := dx*dx + dy*dy
			if dSq >= maxSq {
				continue
			}
			d := math.Sqrt(dSq)
			out = append(out, Connection{
				A:        i,
				B:        j,
				Distance: d,
				Opacity:  1 - d/maxDistance,
			})
		}
	}
	return out
}
