package gnc

// SensorReading is one raw sample from the sensor suite.
type SensorReading struct {
	Position Vec3
	Velocity Vec3
	Attitude Vec3
}

// NavState is the navigation estimate. It has the same shape as a reading.
type NavState struct {
	Position Vec3
	Velocity Vec3
	Attitude Vec3
}

// GuidanceCommand holds the guidance targets handed to control.
type GuidanceCommand struct {
	DesiredHeading  float64
	DesiredPitch    float64
	DesiredVelocity float64
}

// ActuatorCommand is what control asks the actuators to do.
type ActuatorCommand struct {
	Thrust    float64
	FinAngles [4]float64
}

// EnvironmentSample is the wind and gravity seen during one step.
type EnvironmentSample struct {
	Wind    Vec3
	Gravity float64
}
