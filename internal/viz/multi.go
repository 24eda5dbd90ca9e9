package viz

import (
	"errors"

	"github.com/san-kum/gncsim/internal/sim"
)

// Multi sends every trajectory to each of its visualizers in order, carrying
// on past failures.
type Multi []sim.Visualizer

func (m Multi) Plot(traj sim.Trajectory) error {
	var errs []error
	for _, v := range m {
		errs = append(errs, v.Plot(traj))
	}
	return errors.Join(errs...)
}

func (m Multi) Plot3D(traj sim.Trajectory) error {
	var errs []error
	for _, v := range m {
		errs = append(errs, v.Plot3D(traj))
	}
	return errors.Join(errs...)
}
