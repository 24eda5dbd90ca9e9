package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/gncsim/internal/gnc"
	"github.com/san-kum/gncsim/internal/scenario"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/san-kum/gncsim/internal/sim"

// Simulator runs the GNC pipeline one step at a time. It owns the running
// position and the trajectory; neither is safe for concurrent use.
type Simulator struct {
	name        string
	comp        Components
	noise       *gnc.Noise
	cfg         Config
	metrics     []Metric
	observers   []Observer
	visualizers []Visualizer
	out         io.Writer
	log         *zap.Logger
	tracer      trace.Tracer

	position gnc.Vec3
	traj     Trajectory
	records  []StepRecord
	step     int
}

type Option func(*Simulator)

func WithMetric(m Metric) Option         { return func(s *Simulator) { s.metrics = append(s.metrics, m) } }
func WithObserver(o Observer) Option     { return func(s *Simulator) { s.observers = append(s.observers, o) } }
func WithVisualizer(v Visualizer) Option { return func(s *Simulator) { s.visualizers = append(s.visualizers, v) } }
func WithProgress(w io.Writer) Option    { return func(s *Simulator) { s.out = w } }
func WithLogger(l *zap.Logger) Option    { return func(s *Simulator) { s.log = l } }
func WithTracer(t trace.Tracer) Option   { return func(s *Simulator) { s.tracer = t } }

// New wires the given components. noise drives the position random walk and
// should be the same Noise the randomised components draw from.
func New(name string, comp Components, noise *gnc.Noise, cfg Config, opts ...Option) (*Simulator, error) {
	if err := comp.validate(); err != nil {
		return nil, err
	}
	if noise == nil {
		return nil, fmt.Errorf("%w: noise", ErrIncomplete)
	}

	s := &Simulator{
		name:   name,
		comp:   comp,
		noise:  noise,
		cfg:    cfg,
		out:    os.Stdout,
		log:    zap.NewNop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.out == nil {
		s.out = io.Discard
	}
	s.Reset()
	return s, nil
}

// NewFromScenario builds the stub pipeline for sc around a single Noise seeded
// from cfg.Seed.
func NewFromScenario(sc scenario.Config, cfg Config, opts ...Option) (*Simulator, error) {
	noise := gnc.NewNoise(cfg.Seed)
	comp := Components{
		Environment: gnc.NewEnvironmentalModel(sc.Env, noise),
		Sensor:      gnc.NewSensorSuite(noise, cfg.SensorNoise),
		Faults:      gnc.NewFaultInjector(sc.SensorFault, sc.ActuatorFault, noise),
		Navigator:   gnc.NewNavigationSystem(sc.Nav),
		Guide:       gnc.NewGuidanceSystem(),
		Controller:  gnc.NewControlSystem(),
		Actuator:    gnc.NewActuatorSuite(),
	}
	return New(sc.Name, comp, noise, cfg, opts...)
}

func (s *Simulator) Name() string           { return s.name }
func (s *Simulator) Position() gnc.Vec3     { return s.position }
func (s *Simulator) StepCount() int         { return s.step }
func (s *Simulator) Trajectory() Trajectory { return s.traj.Clone() }

// Actuations returns the commands delivered to a CountingActuator since the
// last reset, or zero for any other actuator.
func (s *Simulator) Actuations() int {
	if c, ok := s.comp.Actuator.(CountingActuator); ok {
		return c.Commands()
	}
	return 0
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Reset returns the walk to the origin and clears the trajectory and metrics.
// The noise stream is not rewound.
func (s *Simulator) Reset() {
	s.position = gnc.Vec3{}
	s.traj = NewTrajectory(s.cfg.Steps)
	s.records = make([]StepRecord, 0, s.cfg.Steps)
	s.step = 0
	for _, m := range s.metrics {
		m.Reset()
	}
	if c, ok := s.comp.Actuator.(CountingActuator); ok {
		c.Reset()
	}
}

// Step runs one pass of the pipeline and appends the new position to the
// trajectory.
func (s *Simulator) Step(ctx context.Context) StepRecord {
	_, span := s.tracer.Start(ctx, "sim.Step", trace.WithAttributes(attribute.Int("step", s.step)))
	defer span.End()

	c := s.comp
	rec := StepRecord{Step: s.step}

	rec.Env = c.Environment.Sample(s.step)
	rec.Reading = c.Sensor.Read()
	rec.Sensed = c.Faults.InjectSensorFault(rec.Reading)
	rec.Nav = c.Navigator.EstimateState(rec.Sensed)
	rec.Guidance = c.Guide.ComputeGuidance(rec.Nav, s.cfg.Target)
	rec.Commanded = c.Controller.ComputeActuators(rec.Guidance, rec.Nav)
	rec.Applied = c.Faults.InjectActuatorFault(rec.Commanded)
	c.Actuator.Actuate(rec.Applied)

	// The walk is not driven by guidance or control output.
	s.position = s.position.
		Add(s.noise.NormalVec(s.cfg.StepMean, s.cfg.StepStd)).
		Add(rec.Env.Wind)
	rec.Position = s.position
	s.traj.Append(s.position)
	s.records = append(s.records, rec)

	for _, m := range s.metrics {
		m.Observe(rec)
	}
	for _, o := range s.observers {
		o.OnStep(rec)
	}

	span.SetAttributes(
		attribute.Bool("sensor_corrupted", rec.SensorCorrupted()),
		attribute.Bool("actuator_corrupted", rec.ActuatorCorrupted()),
	)
	s.log.Debug("step complete",
		zap.Int("step", rec.Step),
		zap.Float64("x", rec.Position.X),
		zap.Float64("y", rec.Position.Y),
		zap.Float64("z", rec.Position.Z),
		zap.Float64("gravity", rec.Env.Gravity),
	)
	fmt.Fprintf(s.out, "step %d: pos=(%.2f, %.2f, %.2f) wind=(%.2f, %.2f, %.2f)\n",
		rec.Step, rec.Position.X, rec.Position.Y, rec.Position.Z,
		rec.Env.Wind.X, rec.Env.Wind.Y, rec.Env.Wind.Z)

	s.step++
	return rec
}

// Run resets the simulator, executes steps pipeline passes and hands the
// trajectory to every visualizer. If ctx is cancelled between steps the
// partial result is returned with the context error and nothing is plotted.
func (s *Simulator) Run(ctx context.Context, steps int) (*Result, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}

	ctx, span := s.tracer.Start(ctx, "sim.Run", trace.WithAttributes(
		attribute.String("scenario", s.name),
		attribute.Int("steps", steps),
		attribute.Int64("seed", s.cfg.Seed),
	))
	defer span.End()

	s.Reset()
	fmt.Fprintf(s.out, "GNC pipeline simulation (non-functional) - scenario %s, %d steps\n", s.name, steps)
	s.log.Info("run started", zap.String("scenario", s.name), zap.Int("steps", steps), zap.Int64("seed", s.cfg.Seed))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			span.SetStatus(codes.Error, "canceled")
			return s.result(), ctx.Err()
		default:
		}
		s.Step(ctx)
	}

	result := s.result()
	s.log.Info("run complete",
		zap.String("scenario", s.name),
		zap.Int("steps", result.StepsTaken),
		zap.Float64("distance", result.FinalPosition.Norm()),
	)

	var errs []error
	for _, v := range s.visualizers {
		if err := v.Plot(result.Trajectory); err != nil {
			errs = append(errs, fmt.Errorf("plot: %w", err))
		}
		if err := v.Plot3D(result.Trajectory); err != nil {
			errs = append(errs, fmt.Errorf("plot 3d: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "visualization failed")
		return result, err
	}

	return result, nil
}

func (s *Simulator) result() *Result {
	r := &Result{
		Scenario:      s.name,
		Seed:          s.cfg.Seed,
		Trajectory:    s.traj.Clone(),
		Records:       append([]StepRecord(nil), s.records...),
		Metrics:       make(map[string]float64, len(s.metrics)),
		StepsTaken:    s.step,
		FinalPosition: s.position,
		Actuations:    s.Actuations(),
	}
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
	return r
}
