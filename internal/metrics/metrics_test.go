package metrics

import (
	"context"
	"io"
	"math"
	"testing"

	"github.com/san-kum/gncsim/internal/gnc"
	"github.com/san-kum/gncsim/internal/scenario"
	"github.com/san-kum/gncsim/internal/sim"
)

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()
	if m.Value() != 0 {
		t.Errorf("expected 0 before observations, got %f", m.Value())
	}

	m.Observe(sim.StepRecord{Applied: gnc.ActuatorCommand{Thrust: -2, FinAngles: [4]float64{1, -1, 0, 0}}})
	m.Observe(sim.StepRecord{})

	if got := m.Value(); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("expected effort 2.0, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear effort")
	}
}

func TestFaultSteps(t *testing.T) {
	m := NewFaultSteps()
	clean := sim.StepRecord{}
	sensor := sim.StepRecord{Sensed: gnc.SensorReading{Position: gnc.Vec3{X: 1}}}
	actuator := sim.StepRecord{Applied: gnc.ActuatorCommand{FinAngles: [4]float64{999, 999, 999, 999}}}

	for _, rec := range []sim.StepRecord{clean, sensor, actuator, clean} {
		m.Observe(rec)
	}
	if m.Value() != 2 {
		t.Errorf("expected 2 fault steps, got %f", m.Value())
	}
}

func TestNavOutage(t *testing.T) {
	m := NewNavOutage()
	m.Observe(sim.StepRecord{})
	m.Observe(sim.StepRecord{Nav: gnc.NavState{Position: gnc.Vec3{Z: 0.3}}})

	if m.Value() != 0.5 {
		t.Errorf("expected outage fraction 0.5, got %f", m.Value())
	}
}

func TestDriftAndWind(t *testing.T) {
	d := NewDrift()
	d.Observe(sim.StepRecord{Position: gnc.Vec3{X: 3, Y: 4}})
	if d.Value() != 5 {
		t.Errorf("expected drift 5, got %f", d.Value())
	}

	w := NewMeanWind()
	w.Observe(sim.StepRecord{Env: gnc.EnvironmentSample{Wind: gnc.Vec3{X: 2}}})
	w.Observe(sim.StepRecord{Env: gnc.EnvironmentSample{Wind: gnc.Vec3{Y: 4}}})
	if w.Value() != 3 {
		t.Errorf("expected mean wind 3, got %f", w.Value())
	}
}

func TestDefaultMetricsOverScenarios(t *testing.T) {
	tests := []struct {
		scenario   string
		faultSteps float64
		outage     float64
		effort     float64
	}{
		{"normal", 0, 0, 0},
		{"actuator_fault", 10, 0, 4 * 999},
		{"both_faults", 10, 0, 4 * 999},
		{"gps_outage", 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			cfg := sim.DefaultConfig()
			cfg.Seed = 11

			opts := []sim.Option{sim.WithProgress(io.Discard)}
			for _, m := range Default() {
				opts = append(opts, sim.WithMetric(m))
			}
			s, err := sim.NewFromScenario(scenario.Select(tt.scenario), cfg, opts...)
			if err != nil {
				t.Fatal(err)
			}

			res, err := s.Run(context.Background(), 10)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}

			if got := res.Metrics["fault_steps"]; got != tt.faultSteps {
				t.Errorf("fault_steps: expected %f, got %f", tt.faultSteps, got)
			}
			if got := res.Metrics["nav_outage"]; got != tt.outage {
				t.Errorf("nav_outage: expected %f, got %f", tt.outage, got)
			}
			if got := res.Metrics["control_effort"]; got != tt.effort {
				t.Errorf("control_effort: expected %f, got %f", tt.effort, got)
			}
			if got := res.Metrics["drift"]; got != res.FinalPosition.Norm() {
				t.Errorf("drift: expected %f, got %f", res.FinalPosition.Norm(), got)
			}
		})
	}
}
