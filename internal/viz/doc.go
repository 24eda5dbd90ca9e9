// Package viz renders finished trajectories.
//
// Two backends implement [sim.Visualizer]:
//
//   - [ImagePlotter]: gonum/plot PNG or SVG images written to a directory
//   - [TerminalPlotter]: Braille canvas and asciigraph output for a terminal
//
// Both draw the same pictures. Plot shows x against the cross-range distance
// with a fixed dashed ellipse around the final point; the ellipse is a static
// illustration and is not derived from any covariance. Plot3D shows the walk
// in three dimensions through an orbit [Camera], zero-filling any column that
// is shorter than x.
//
// [Multi] fans a trajectory out to several backends.
package viz
