package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/gncsim/internal/gnc"
)

var (
	ErrInvalidSteps = errors.New("sim: steps must be positive")
	ErrIncomplete   = errors.New("sim: pipeline component missing")
)

type Sensor interface {
	Read() gnc.SensorReading
}

type Navigator interface {
	EstimateState(r gnc.SensorReading) gnc.NavState
}

type Guide interface {
	ComputeGuidance(nav gnc.NavState, target gnc.Vec3) gnc.GuidanceCommand
}

type Controller interface {
	ComputeActuators(cmd gnc.GuidanceCommand, nav gnc.NavState) gnc.ActuatorCommand
}

type Actuator interface {
	Actuate(cmd gnc.ActuatorCommand)
}

// CountingActuator reports how many commands reached the actuator boundary.
// The simulator resets it with every run.
type CountingActuator interface {
	Actuator
	Commands() int
	Reset()
}

type Environment interface {
	Sample(step int) gnc.EnvironmentSample
}

type FaultInjector interface {
	InjectSensorFault(r gnc.SensorReading) gnc.SensorReading
	InjectActuatorFault(cmd gnc.ActuatorCommand) gnc.ActuatorCommand
}

// Components are the pipeline stages, in the order a step runs them.
type Components struct {
	Environment Environment
	Sensor      Sensor
	Faults      FaultInjector
	Navigator   Navigator
	Guide       Guide
	Controller  Controller
	Actuator    Actuator
}

func (c Components) validate() error {
	switch {
	case c.Environment == nil:
		return fmt.Errorf("%w: environment", ErrIncomplete)
	case c.Sensor == nil:
		return fmt.Errorf("%w: sensor", ErrIncomplete)
	case c.Faults == nil:
		return fmt.Errorf("%w: fault injector", ErrIncomplete)
	case c.Navigator == nil:
		return fmt.Errorf("%w: navigator", ErrIncomplete)
	case c.Guide == nil:
		return fmt.Errorf("%w: guidance", ErrIncomplete)
	case c.Controller == nil:
		return fmt.Errorf("%w: controller", ErrIncomplete)
	case c.Actuator == nil:
		return fmt.Errorf("%w: actuator", ErrIncomplete)
	}
	return nil
}

type Metric interface {
	Name() string
	Observe(rec StepRecord)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(rec StepRecord)
}

// Visualizer renders a finished trajectory.
type Visualizer interface {
	Plot(traj Trajectory) error
	Plot3D(traj Trajectory) error
}

type Config struct {
	Steps       int
	Seed        int64
	SensorNoise float64
	Target      gnc.Vec3
	// StepMean and StepStd parameterise the per-axis random walk increment.
	StepMean float64
	StepStd  float64
}

func DefaultConfig() Config {
	return Config{
		Steps:       20,
		SensorNoise: gnc.DefaultSensorNoise,
		Target:      gnc.Vec3{X: 100},
		StepMean:    1.0,
		StepStd:     0.2,
	}
}

// StepRecord captures every intermediate value of one pipeline step.
type StepRecord struct {
	Step      int
	Env       gnc.EnvironmentSample
	Reading   gnc.SensorReading
	Sensed    gnc.SensorReading
	Nav       gnc.NavState
	Guidance  gnc.GuidanceCommand
	Commanded gnc.ActuatorCommand
	Applied   gnc.ActuatorCommand
	Position  gnc.Vec3
}

func (r StepRecord) SensorCorrupted() bool   { return r.Sensed != r.Reading }
func (r StepRecord) ActuatorCorrupted() bool { return r.Applied != r.Commanded }

// Trajectory holds four parallel, append-only sequences with one entry per
// step. Y2 is the cross-range distance hypot(y, z), used as the ordinate of
// the 2D plot.
type Trajectory struct {
	X  []float64
	Y  []float64
	Y2 []float64
	Z  []float64
}

func NewTrajectory(capacity int) Trajectory {
	return Trajectory{
		X:  make([]float64, 0, capacity),
		Y:  make([]float64, 0, capacity),
		Y2: make([]float64, 0, capacity),
		Z:  make([]float64, 0, capacity),
	}
}

func (t *Trajectory) Append(p gnc.Vec3) {
	t.X = append(t.X, p.X)
	t.Y = append(t.Y, p.Y)
	t.Y2 = append(t.Y2, math.Hypot(p.Y, p.Z))
	t.Z = append(t.Z, p.Z)
}

func (t Trajectory) Len() int { return len(t.X) }

func (t Trajectory) Clone() Trajectory {
	return Trajectory{
		X:  append([]float64(nil), t.X...),
		Y:  append([]float64(nil), t.Y...),
		Y2: append([]float64(nil), t.Y2...),
		Z:  append([]float64(nil), t.Z...),
	}
}

type Result struct {
	Scenario      string
	Seed          int64
	Trajectory    Trajectory
	Records       []StepRecord
	Metrics       map[string]float64
	StepsTaken    int
	FinalPosition gnc.Vec3
	// Actuations is zero when the actuator does not count commands.
	Actuations int
}
