package gnc

type ControlSystem struct{}

func NewControlSystem() *ControlSystem {
	return &ControlSystem{}
}

// ComputeActuators returns zero thrust and four zeroed fin angles regardless
// of its inputs.
func (c *ControlSystem) ComputeActuators(cmd GuidanceCommand, nav NavState) ActuatorCommand {
	return ActuatorCommand{}
}
