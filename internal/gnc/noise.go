package gnc

import "math/rand"

// Noise is a seedable Gaussian source. It is not safe for concurrent use;
// a run owns exactly one and hands it to each stage that needs randomness.
type Noise struct {
	r *rand.Rand
}

func NewNoise(seed int64) *Noise {
	return &Noise{r: rand.New(rand.NewSource(seed))}
}

// Normal draws one sample from N(mean, std²).
func (n *Noise) Normal(mean, std float64) float64 {
	return mean + std*n.r.NormFloat64()
}

// NormalVec draws an independent sample per axis, in X, Y, Z order.
func (n *Noise) NormalVec(mean, std float64) Vec3 {
	x := n.Normal(mean, std)
	y := n.Normal(mean, std)
	z := n.Normal(mean, std)
	return Vec3{x, y, z}
}
