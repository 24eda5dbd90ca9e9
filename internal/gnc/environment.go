package gnc

const (
	StandardGravity      = 9.81
	GravityAnomalyOffset = 2.0
	WindNoiseStd         = 0.1
	GravityNoiseStd      = 0.01
)

// HighWind is the mean wind vector of the high_wind environment.
var HighWind = Vec3{X: 2.0, Y: 0.5, Z: 0.0}

type EnvironmentalModel struct {
	mode  EnvMode
	noise *Noise
}

func NewEnvironmentalModel(mode EnvMode, noise *Noise) *EnvironmentalModel {
	return &EnvironmentalModel{mode: mode, noise: noise}
}

// Sample draws the wind and gravity for a step. The distribution depends only
// on the mode: step is accepted but does not influence the sample, so every
// step of a run sees the same stationary environment.
func (e *EnvironmentalModel) Sample(step int) EnvironmentSample {
	_ = step

	wind := e.noise.NormalVec(0, WindNoiseStd)
	gravity := e.noise.Normal(StandardGravity, GravityNoiseStd)

	switch e.mode {
	case EnvHighWind:
		wind = wind.Add(HighWind)
	case EnvGravityAnomaly:
		gravity += GravityAnomalyOffset
	}

	return EnvironmentSample{Wind: wind, Gravity: gravity}
}
