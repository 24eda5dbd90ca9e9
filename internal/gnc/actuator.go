package gnc

// ActuatorSuite is the boundary to hardware that does not exist. Commands are
// counted and otherwise dropped.
type ActuatorSuite struct {
	commands int
}

func NewActuatorSuite() *ActuatorSuite {
	return &ActuatorSuite{}
}

func (a *ActuatorSuite) Actuate(cmd ActuatorCommand) {
	a.commands++
}

// Commands returns how many commands have reached the boundary since the
// last Reset.
func (a *ActuatorSuite) Commands() int { return a.commands }
func (a *ActuatorSuite) Reset()        { a.commands = 0 }
