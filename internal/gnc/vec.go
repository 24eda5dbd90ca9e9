package gnc

import "math"

// Vec3 is an immutable 3-component vector.
type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3          { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3          { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3     { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) AddScalar(s float64) Vec3 { return Vec3{v.X + s, v.Y + s, v.Z + s} }
func (v Vec3) Norm() float64            { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// IsZero reports whether every component is exactly zero.
func (v Vec3) IsZero() bool { return v == Vec3{} }

// IsValid reports whether no component is NaN or Inf.
func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
