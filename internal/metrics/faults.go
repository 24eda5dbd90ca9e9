package metrics

import "github.com/san-kum/gncsim/internal/sim"

// FaultSteps counts steps in which either fault channel altered data.
type FaultSteps struct {
	count int
}

func NewFaultSteps() *FaultSteps { return &FaultSteps{} }

func (f *FaultSteps) Name() string { return "fault_steps" }

func (f *FaultSteps) Observe(rec sim.StepRecord) {
	if rec.SensorCorrupted() || rec.ActuatorCorrupted() {
		f.count++
	}
}

func (f *FaultSteps) Value() float64 { return float64(f.count) }
func (f *FaultSteps) Reset()         { f.count = 0 }

// NavOutage is the fraction of steps whose navigation position was exactly
// the origin.
type NavOutage struct {
	outages int
	samples int
}

func NewNavOutage() *NavOutage { return &NavOutage{} }

func (n *NavOutage) Name() string { return "nav_outage" }

func (n *NavOutage) Observe(rec sim.StepRecord) {
	n.samples++
	if rec.Nav.Position.IsZero() {
		n.outages++
	}
}

func (n *NavOutage) Value() float64 {
	if n.samples == 0 {
		return 0
	}
	return float64(n.outages) / float64(n.samples)
}

func (n *NavOutage) Reset() {
	n.outages = 0
	n.samples = 0
}
