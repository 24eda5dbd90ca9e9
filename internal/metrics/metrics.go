// Package metrics provides run summaries computed from pipeline step records.
package metrics

import "github.com/san-kum/gncsim/internal/sim"

// Default returns a fresh instance of every summary metric.
func Default() []sim.Metric {
	return []sim.Metric{
		NewFaultSteps(),
		NewNavOutage(),
		NewMeanWind(),
		NewMeanGravity(),
		NewDrift(),
		NewControlEffort(),
	}
}
