package gnc

type GuidanceSystem struct{}

func NewGuidanceSystem() *GuidanceSystem {
	return &GuidanceSystem{}
}

// ComputeGuidance ignores its inputs and returns the zero command.
func (g *GuidanceSystem) ComputeGuidance(nav NavState, target Vec3) GuidanceCommand {
	return GuidanceCommand{}
}
