package metrics

import "github.com/san-kum/gncsim/internal/sim"

// Drift is the distance of the latest position from the origin.
type Drift struct {
	distance float64
}

func NewDrift() *Drift { return &Drift{} }

func (d *Drift) Name() string { return "drift" }

func (d *Drift) Observe(rec sim.StepRecord) {
	d.distance = rec.Position.Norm()
}

func (d *Drift) Value() float64 { return d.distance }
func (d *Drift) Reset()         { d.distance = 0 }
