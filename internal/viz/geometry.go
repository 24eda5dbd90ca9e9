package viz

import (
	"errors"
	"math"

	"github.com/san-kum/gncsim/internal/gnc"
	"github.com/san-kum/gncsim/internal/sim"
)

// Semi-axes of the illustrative ellipse drawn around the final point.
const (
	EllipseSemiX = 2.0
	EllipseSemiY = 1.0

	ellipseSegments = 64
)

var ErrEmptyTrajectory = errors.New("viz: trajectory is empty")

// Ellipse samples an axis-aligned ellipse centred at (cx, cy). The path is
// closed: the last point equals the first.
func Ellipse(cx, cy, a, b float64, n int) (xs, ys []float64) {
	xs = make([]float64, n+1)
	ys = make([]float64, n+1)
	for i := 0; i <= n; i++ {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		xs[i] = cx + a*c
		ys[i] = cy + b*s
	}
	return xs, ys
}

// FinalEllipse is the dashed ellipse drawn around the last point of traj.
func FinalEllipse(traj sim.Trajectory) (xs, ys []float64) {
	n := traj.Len()
	return Ellipse(traj.X[n-1], column(traj.Y2, n)[n-1], EllipseSemiX, EllipseSemiY, ellipseSegments)
}

// column returns col resized to n, zero-filling missing entries.
func column(col []float64, n int) []float64 {
	if len(col) == n {
		return col
	}
	out := make([]float64, n)
	copy(out, col)
	return out
}

// Points3D zips x, y and z into points, zero-filling y or z when they are
// shorter than x.
func Points3D(traj sim.Trajectory) []gnc.Vec3 {
	n := traj.Len()
	ys := column(traj.Y, n)
	zs := column(traj.Z, n)

	pts := make([]gnc.Vec3, n)
	for i := range pts {
		pts[i] = gnc.Vec3{X: traj.X[i], Y: ys[i], Z: zs[i]}
	}
	return pts
}

func extent(pts []gnc.Vec3) float64 {
	m := 1.0
	for _, p := range pts {
		m = math.Max(m, math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z))))
	}
	return m
}
