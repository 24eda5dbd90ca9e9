// Package observability exposes pipeline runs as Prometheus metrics and
// OpenTelemetry traces.
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/san-kum/gncsim/internal/sim"
)

const (
	ChannelSensor   = "sensor"
	ChannelActuator = "actuator"
)

// Collector records every pipeline step it observes. It implements
// sim.Observer and is safe to share between the runs of an ensemble.
type Collector struct {
	gatherer prometheus.Gatherer
	scenario string

	Steps          *prometheus.CounterVec
	FaultsInjected *prometheus.CounterVec
	NavOutageSteps prometheus.Counter
	WindSpeed      prometheus.Histogram
	Distance       prometheus.Gauge
}

// NewCollector registers the pipeline metrics against reg, falling back to the
// default registerer when reg is nil. Steps are labelled with scenario.
func NewCollector(reg prometheus.Registerer, scenario string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	steps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gncsim_steps_total",
		Help: "Pipeline steps executed.",
	}, []string{"scenario"})
	steps, err := register(reg, steps, "gncsim_steps_total")
	if err != nil {
		return nil, err
	}

	faults := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gncsim_faults_injected_total",
		Help: "Steps in which a fault channel altered pipeline data.",
	}, []string{"channel"})
	faults, err = register(reg, faults, "gncsim_faults_injected_total")
	if err != nil {
		return nil, err
	}

	outage := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gncsim_nav_outage_steps_total",
		Help: "Steps whose navigation estimate reported the origin.",
	})
	outage, err = register(reg, outage, "gncsim_nav_outage_steps_total")
	if err != nil {
		return nil, err
	}

	wind := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gncsim_wind_speed",
		Help:    "Magnitude of the sampled wind vector.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 2.5, 3, 5},
	})
	wind, err = register(reg, wind, "gncsim_wind_speed")
	if err != nil {
		return nil, err
	}

	distance := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gncsim_position_distance",
		Help: "Distance of the most recent position from the origin.",
	})
	distance, err = register(reg, distance, "gncsim_position_distance")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:       gatherer,
		scenario:       scenario,
		Steps:          steps,
		FaultsInjected: faults,
		NavOutageSteps: outage,
		WindSpeed:      wind,
		Distance:       distance,
	}, nil
}

func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

func (c *Collector) OnStep(rec sim.StepRecord) {
	if c == nil {
		return
	}
	c.Steps.WithLabelValues(c.scenario).Inc()
	if rec.SensorCorrupted() {
		c.FaultsInjected.WithLabelValues(ChannelSensor).Inc()
	}
	if rec.ActuatorCorrupted() {
		c.FaultsInjected.WithLabelValues(ChannelActuator).Inc()
	}
	if rec.Nav.Position.IsZero() {
		c.NavOutageSteps.Inc()
	}
	c.WindSpeed.Observe(rec.Env.Wind.Norm())
	c.Distance.Set(rec.Position.Norm())
}

// WriteTextfile dumps everything the collector's gatherer knows in the
// Prometheus text format, for pickup by a node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.Gatherer()); err != nil {
		return fmt.Errorf("observability: write %s: %w", path, err)
	}
	return nil
}

// register returns the already registered collector when one with the same
// descriptor exists, so repeated runs in one process share series.
func register[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("observability: collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return c, nil
}
