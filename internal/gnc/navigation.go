package gnc

type NavigationSystem struct {
	mode NavMode
}

func NewNavigationSystem(mode NavMode) *NavigationSystem {
	return &NavigationSystem{mode: mode}
}

// EstimateState passes the reading through. In degraded mode the position is
// replaced by the zero vector to simulate a lost fix.
func (n *NavigationSystem) EstimateState(r SensorReading) NavState {
	st := NavState{
		Position: r.Position,
		Velocity: r.Velocity,
		Attitude: r.Attitude,
	}
	if n.mode == NavDegraded {
		st.Position = Vec3{}
	}
	return st
}
