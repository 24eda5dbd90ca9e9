package metrics

import "github.com/san-kum/gncsim/internal/sim"

// MeanWind averages the wind speed seen over the run.
type MeanWind struct {
	sum     float64
	samples int
}

func NewMeanWind() *MeanWind { return &MeanWind{} }

func (m *MeanWind) Name() string { return "mean_wind" }

func (m *MeanWind) Observe(rec sim.StepRecord) {
	m.sum += rec.Env.Wind.Norm()
	m.samples++
}

func (m *MeanWind) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanWind) Reset() {
	m.sum = 0
	m.samples = 0
}

// MeanGravity averages the sampled gravity over the run.
type MeanGravity struct {
	sum     float64
	samples int
}

func NewMeanGravity() *MeanGravity { return &MeanGravity{} }

func (m *MeanGravity) Name() string { return "mean_gravity" }

func (m *MeanGravity) Observe(rec sim.StepRecord) {
	m.sum += rec.Env.Gravity
	m.samples++
}

func (m *MeanGravity) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanGravity) Reset() {
	m.sum = 0
	m.samples = 0
}
