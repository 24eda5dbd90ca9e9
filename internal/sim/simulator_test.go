package sim_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/san-kum/gncsim/internal/gnc"
	"github.com/san-kum/gncsim/internal/scenario"
	"github.com/san-kum/gncsim/internal/sim"
)

type recordingObserver struct {
	records []sim.StepRecord
}

func (r *recordingObserver) OnStep(rec sim.StepRecord) { r.records = append(r.records, rec) }

type countingMetric struct {
	observed int
	resets   int
}

func (c *countingMetric) Name() string               { return "count" }
func (c *countingMetric) Observe(rec sim.StepRecord) { c.observed++ }
func (c *countingMetric) Value() float64             { return float64(c.observed) }

func (c *countingMetric) Reset() {
	c.observed = 0
	c.resets++
}

type fakeVisualizer struct {
	plots, plots3D int
	last           sim.Trajectory
	err            error
}

func (f *fakeVisualizer) Plot(traj sim.Trajectory) error {
	f.plots++
	f.last = traj
	return f.err
}

func (f *fakeVisualizer) Plot3D(traj sim.Trajectory) error {
	f.plots3D++
	return f.err
}

// wildSensor reports positions far from the origin so a passthrough would be
// visible in the navigation output.
type wildSensor struct{ n float64 }

func (w *wildSensor) Read() gnc.SensorReading {
	w.n++
	return gnc.SensorReading{Position: gnc.Vec3{X: 100 * w.n, Y: -w.n, Z: 3}}
}

func newScenarioSim(name string, cfg sim.Config, opts ...sim.Option) *sim.Simulator {
	opts = append([]sim.Option{sim.WithProgress(io.Discard)}, opts...)
	s, err := sim.NewFromScenario(scenario.Select(name), cfg, opts...)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Simulator", func() {
	var (
		ctx context.Context
		cfg sim.Config
	)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = sim.DefaultConfig()
		cfg.Seed = 42
	})

	Describe("Run", func() {
		DescribeTable("produces one trajectory entry per step",
			func(name string, steps int) {
				s := newScenarioSim(name, cfg)
				res, err := s.Run(ctx, steps)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.StepsTaken).To(Equal(steps))
				Expect(res.Trajectory.X).To(HaveLen(steps))
				Expect(res.Trajectory.Y).To(HaveLen(steps))
				Expect(res.Trajectory.Y2).To(HaveLen(steps))
				Expect(res.Trajectory.Z).To(HaveLen(steps))
				Expect(res.Records).To(HaveLen(steps))
			},
			Entry("normal, default length", "normal", 20),
			Entry("single step", "normal", 1),
			Entry("both faults", "both_faults", 7),
			Entry("high wind", "high_wind", 50),
		)

		It("rejects non-positive step counts", func() {
			s := newScenarioSim("normal", cfg)
			_, err := s.Run(ctx, 0)
			Expect(errors.Is(err, sim.ErrInvalidSteps)).To(BeTrue())
			_, err = s.Run(ctx, -3)
			Expect(errors.Is(err, sim.ErrInvalidSteps)).To(BeTrue())
		})

		It("is reproducible for a fixed seed", func() {
			a, err := newScenarioSim("sensor_fault", cfg).Run(ctx, 15)
			Expect(err).NotTo(HaveOccurred())
			b, err := newScenarioSim("sensor_fault", cfg).Run(ctx, 15)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Trajectory).To(Equal(b.Trajectory))

			cfg.Seed = 43
			c, err := newScenarioSim("sensor_fault", cfg).Run(ctx, 15)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Trajectory.X).NotTo(Equal(a.Trajectory.X))
		})

		It("keeps the walk near one unit per axis per step in calm air", func() {
			res, err := newScenarioSim("normal", cfg).Run(ctx, 200)
			Expect(err).NotTo(HaveOccurred())
			perStep := res.FinalPosition.Scale(1.0 / 200)
			Expect(perStep.X).To(BeNumerically("~", 1.0, 0.08))
			Expect(perStep.Y).To(BeNumerically("~", 1.0, 0.08))
			Expect(perStep.Z).To(BeNumerically("~", 1.0, 0.08))
		})

		It("adds the sampled wind to every step", func() {
			res, err := newScenarioSim("high_wind", cfg).Run(ctx, 200)
			Expect(err).NotTo(HaveOccurred())
			perStep := res.FinalPosition.Scale(1.0 / 200)
			Expect(perStep.X).To(BeNumerically("~", 3.0, 0.08))
			Expect(perStep.Y).To(BeNumerically("~", 1.5, 0.08))
			Expect(perStep.Z).To(BeNumerically("~", 1.0, 0.08))
		})

		It("derives the 2D ordinate from the cross-range distance", func() {
			res, err := newScenarioSim("normal", cfg).Run(ctx, 5)
			Expect(err).NotTo(HaveOccurred())
			for i, rec := range res.Records {
				Expect(res.Trajectory.X[i]).To(Equal(rec.Position.X))
				Expect(res.Trajectory.Z[i]).To(Equal(rec.Position.Z))
				Expect(res.Trajectory.Y2[i]).To(BeNumerically("~",
					gnc.Vec3{Y: rec.Position.Y, Z: rec.Position.Z}.Norm(), 1e-12))
			}
		})

		It("stops between steps when the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			obs := &recordingObserver{}
			s := newScenarioSim("normal", cfg, sim.WithObserver(obs))
			vis := &fakeVisualizer{}
			s2 := newScenarioSim("normal", cfg, sim.WithVisualizer(vis))

			cancel()
			res, err := s.Run(cctx, 10)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.StepsTaken).To(BeZero())
			Expect(obs.records).To(BeEmpty())

			_, err = s2.Run(cctx, 10)
			Expect(err).To(MatchError(context.Canceled))
			Expect(vis.plots).To(BeZero())
		})

		It("prints a banner and one progress line per step", func() {
			var buf bytes.Buffer
			s, err := sim.NewFromScenario(scenario.Select("normal"), cfg, sim.WithProgress(&buf))
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Run(ctx, 4)
			Expect(err).NotTo(HaveOccurred())

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			Expect(lines).To(HaveLen(5))
			Expect(lines[0]).To(ContainSubstring("scenario normal"))
			Expect(lines[4]).To(HavePrefix("step 3:"))
		})
	})

	Describe("scenarios end to end", func() {
		It("never reports a position fix during a gps outage", func() {
			obs := &recordingObserver{}
			s := newScenarioSim("gps_outage", cfg, sim.WithObserver(obs))
			_, err := s.Run(ctx, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(obs.records).To(HaveLen(5))
			for _, rec := range obs.records {
				Expect(rec.Reading.Position.IsZero()).To(BeFalse())
				Expect(rec.Nav.Position).To(Equal(gnc.Vec3{}))
			}
		})

		It("zeroes navigation position whatever the sensor reports", func() {
			noise := gnc.NewNoise(1)
			comp := sim.Components{
				Environment: gnc.NewEnvironmentalModel(gnc.EnvNormal, noise),
				Sensor:      &wildSensor{},
				Faults:      gnc.NewFaultInjector(gnc.FaultCorrupt, gnc.FaultClean, noise),
				Navigator:   gnc.NewNavigationSystem(gnc.NavDegraded),
				Guide:       gnc.NewGuidanceSystem(),
				Controller:  gnc.NewControlSystem(),
				Actuator:    gnc.NewActuatorSuite(),
			}
			obs := &recordingObserver{}
			s, err := sim.New("custom", comp, noise, cfg, sim.WithProgress(io.Discard), sim.WithObserver(obs))
			Expect(err).NotTo(HaveOccurred())

			_, err = s.Run(ctx, 5)
			Expect(err).NotTo(HaveOccurred())
			for _, rec := range obs.records {
				Expect(rec.SensorCorrupted()).To(BeTrue())
				Expect(rec.Nav.Position).To(Equal(gnc.Vec3{}))
			}
		})

		It("corrupts fin angles but not thrust under an actuator fault", func() {
			obs := &recordingObserver{}
			_, err := newScenarioSim("actuator_fault", cfg, sim.WithObserver(obs)).Run(ctx, 3)
			Expect(err).NotTo(HaveOccurred())
			for _, rec := range obs.records {
				Expect(rec.ActuatorCorrupted()).To(BeTrue())
				Expect(rec.Applied.Thrust).To(Equal(rec.Commanded.Thrust))
				Expect(rec.Applied.FinAngles).To(Equal([4]float64{999, 999, 999, 999}))
				Expect(rec.SensorCorrupted()).To(BeFalse())
			}
		})

		It("leaves every stage clean in the normal scenario", func() {
			obs := &recordingObserver{}
			_, err := newScenarioSim("normal", cfg, sim.WithObserver(obs)).Run(ctx, 5)
			Expect(err).NotTo(HaveOccurred())
			for _, rec := range obs.records {
				Expect(rec.SensorCorrupted()).To(BeFalse())
				Expect(rec.ActuatorCorrupted()).To(BeFalse())
				Expect(rec.Nav.Position).To(Equal(rec.Reading.Position))
				Expect(rec.Guidance).To(Equal(gnc.GuidanceCommand{}))
			}
		})
	})

	Describe("collaborators", func() {
		It("resets metrics at the start of every run", func() {
			m := &countingMetric{}
			s := newScenarioSim("normal", cfg, sim.WithMetric(m))

			res, err := s.Run(ctx, 6)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Metrics).To(HaveKeyWithValue("count", 6.0))

			res, err = s.Run(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Metrics["count"]).To(Equal(2.0))
			Expect(m.resets).To(BeNumerically(">=", 2))
		})

		It("counts the commands delivered to the actuator for each run", func() {
			s := newScenarioSim("actuator_fault", cfg)

			res, err := s.Run(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Actuations).To(Equal(7))

			res, err = s.Run(ctx, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Actuations).To(Equal(3))
			Expect(s.Actuations()).To(Equal(3))
		})

		It("accepts metrics and observers added after construction", func() {
			m := &countingMetric{}
			o := &recordingObserver{}
			s := newScenarioSim("normal", cfg)
			s.AddMetric(m)
			s.AddObserver(o)

			res, err := s.Run(ctx, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Metrics).To(HaveKeyWithValue("count", 4.0))
			Expect(o.records).To(HaveLen(4))
		})

		It("hands the finished trajectory to each visualizer once", func() {
			a, b := &fakeVisualizer{}, &fakeVisualizer{}
			s := newScenarioSim("normal", cfg, sim.WithVisualizer(a), sim.WithVisualizer(b))

			res, err := s.Run(ctx, 8)
			Expect(err).NotTo(HaveOccurred())
			for _, v := range []*fakeVisualizer{a, b} {
				Expect(v.plots).To(Equal(1))
				Expect(v.plots3D).To(Equal(1))
				Expect(v.last).To(Equal(res.Trajectory))
			}
		})

		It("returns visualizer failures with the result", func() {
			boom := errors.New("boom")
			s := newScenarioSim("normal", cfg, sim.WithVisualizer(&fakeVisualizer{err: boom}))

			res, err := s.Run(ctx, 3)
			Expect(err).To(MatchError(ContainSubstring("boom")))
			Expect(errors.Is(err, boom)).To(BeTrue())
			Expect(res.StepsTaken).To(Equal(3))
		})

		It("opens a span per run and per step", func() {
			sr := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
			s := newScenarioSim("normal", cfg, sim.WithTracer(tp.Tracer("test")))

			_, err := s.Run(ctx, 3)
			Expect(err).NotTo(HaveOccurred())

			names := map[string]int{}
			for _, span := range sr.Ended() {
				names[span.Name()]++
			}
			Expect(names).To(Equal(map[string]int{"sim.Run": 1, "sim.Step": 3}))
		})

		It("refuses an incomplete pipeline", func() {
			_, err := sim.New("broken", sim.Components{}, gnc.NewNoise(1), cfg)
			Expect(errors.Is(err, sim.ErrIncomplete)).To(BeTrue())
		})
	})

	Describe("Step", func() {
		It("advances the trajectory one entry at a time", func() {
			s := newScenarioSim("normal", cfg)
			for i := 0; i < 3; i++ {
				rec := s.Step(ctx)
				Expect(rec.Step).To(Equal(i))
				Expect(s.StepCount()).To(Equal(i + 1))
				Expect(s.Trajectory().Len()).To(Equal(i + 1))
				Expect(s.Position()).To(Equal(rec.Position))
			}
			s.Reset()
			Expect(s.Trajectory().Len()).To(BeZero())
			Expect(s.Position()).To(Equal(gnc.Vec3{}))
		})
	})
})

var _ = Describe("Ensemble", func() {
	build := func(name string) sim.Builder {
		return func(seed int64) (*sim.Simulator, error) {
			cfg := sim.DefaultConfig()
			cfg.Seed = seed
			return sim.NewFromScenario(scenario.Select(name), cfg, sim.WithProgress(io.Discard))
		}
	}

	It("runs one independent simulation per seed", func() {
		results, err := sim.NewEnsemble(build("high_wind"), 4, 100).Run(context.Background(), 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))
		for i, r := range results {
			Expect(r.Seed).To(Equal(int64(100 + i)))
			Expect(r.Trajectory.Len()).To(Equal(10))
		}
		Expect(results[0].Trajectory.X).NotTo(Equal(results[1].Trajectory.X))
	})

	It("matches a sequential run with the same seed", func() {
		results, err := sim.NewEnsemble(build("both_faults"), 3, 7).Run(context.Background(), 12)
		Expect(err).NotTo(HaveOccurred())

		s, err := build("both_faults")(8)
		Expect(err).NotTo(HaveOccurred())
		single, err := s.Run(context.Background(), 12)
		Expect(err).NotTo(HaveOccurred())
		Expect(results[1].Trajectory).To(Equal(single.Trajectory))
	})

	It("rejects an empty ensemble", func() {
		_, err := sim.NewEnsemble(build("normal"), 0, 1).Run(context.Background(), 5)
		Expect(err).To(HaveOccurred())
	})
})
