package gnc

// DefaultSensorNoise is the standard deviation applied to every sensor field.
const DefaultSensorNoise = 0.1

type SensorSuite struct {
	noise *Noise
	std   float64
}

func NewSensorSuite(noise *Noise, std float64) *SensorSuite {
	return &SensorSuite{noise: noise, std: std}
}

// Read returns a zero baseline perturbed by N(0, std) on every component.
func (s *SensorSuite) Read() SensorReading {
	return SensorReading{
		Position: s.noise.NormalVec(0, s.std),
		Velocity: s.noise.NormalVec(0, s.std),
		Attitude: s.noise.NormalVec(0, s.std),
	}
}
