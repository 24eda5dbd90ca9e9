package viz

import (
	"math"

	"github.com/san-kum/gncsim/internal/gnc"
)

// Camera is an orthographic orbit camera. Azimuth turns about the vertical
// axis and Elevation tilts the view up from the horizontal plane, both in
// radians.
type Camera struct {
	Azimuth   float64
	Elevation float64
}

func NewCamera() Camera {
	return Camera{Azimuth: -60 * math.Pi / 180, Elevation: 30 * math.Pi / 180}
}

func (c *Camera) Orbit(dAz, dEl float64) {
	c.Azimuth += dAz
	c.Elevation = math.Max(-math.Pi/2, math.Min(math.Pi/2, c.Elevation+dEl))
}

// Project returns screen coordinates (u to the right, v up) and the depth
// along the viewing direction, larger meaning closer to the viewer.
func (c Camera) Project(p gnc.Vec3) (u, v, depth float64) {
	sa, ca := math.Sincos(c.Azimuth)
	se, ce := math.Sincos(c.Elevation)

	u = -p.X*sa + p.Y*ca
	v = -p.X*ca*se - p.Y*sa*se + p.Z*ce
	depth = p.X*ca*ce + p.Y*sa*ce + p.Z*se
	return u, v, depth
}

// ProjectAll projects a path into parallel u and v slices.
func (c Camera) ProjectAll(pts []gnc.Vec3) (us, vs []float64) {
	us = make([]float64, len(pts))
	vs = make([]float64, len(pts))
	for i, p := range pts {
		us[i], vs[i], _ = c.Project(p)
	}
	return us, vs
}

// Axes returns the three coordinate axes from the origin out to length,
// in x, y, z order, as two-point paths.
func Axes(length float64) [3][]gnc.Vec3 {
	o := gnc.Vec3{}
	return [3][]gnc.Vec3{
		{o, {X: length}},
		{o, {Y: length}},
		{o, {Z: length}},
	}
}
