package metrics

import (
	"math"

	"github.com/san-kum/gncsim/internal/sim"
)

// ControlEffort is the mean absolute actuator command delivered per step,
// summed over thrust and all fins, after fault injection.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(rec sim.StepRecord) {
	c.sum += math.Abs(rec.Applied.Thrust)
	for _, fin := range rec.Applied.FinAngles {
		c.sum += math.Abs(fin)
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
