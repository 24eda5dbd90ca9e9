package gnc

const (
	SensorFaultMean     = 10.0
	SensorFaultStd      = 5.0
	ActuatorFaultOffset = 999.0
)

// FaultInjector corrupts sensor readings and actuator commands according to a
// mode per channel. A clean channel returns its input untouched and draws no
// randomness.
type FaultInjector struct {
	sensor   FaultMode
	actuator FaultMode
	noise    *Noise
}

func NewFaultInjector(sensor, actuator FaultMode, noise *Noise) *FaultInjector {
	return &FaultInjector{sensor: sensor, actuator: actuator, noise: noise}
}

// InjectSensorFault adds N(10, 5) to every component of every field when the
// sensor channel is corrupt.
func (f *FaultInjector) InjectSensorFault(r SensorReading) SensorReading {
	if f.sensor != FaultCorrupt {
		return r
	}
	return SensorReading{
		Position: r.Position.Add(f.noise.NormalVec(SensorFaultMean, SensorFaultStd)),
		Velocity: r.Velocity.Add(f.noise.NormalVec(SensorFaultMean, SensorFaultStd)),
		Attitude: r.Attitude.Add(f.noise.NormalVec(SensorFaultMean, SensorFaultStd)),
	}
}

// InjectActuatorFault offsets every list-valued field by 999 when the
// actuator channel is corrupt. Scalar fields are left alone.
func (f *FaultInjector) InjectActuatorFault(cmd ActuatorCommand) ActuatorCommand {
	if f.actuator != FaultCorrupt {
		return cmd
	}
	out := cmd
	for i := range out.FinAngles {
		out.FinAngles[i] += ActuatorFaultOffset
	}
	return out
}
