package viz

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gncsim/internal/sim"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	captionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Italic(true)
)

// TerminalPlotter draws trajectories with Braille characters.
type TerminalPlotter struct {
	Out    io.Writer
	Width  int
	Height int
	Camera Camera
}

func NewTerminalPlotter(out io.Writer) *TerminalPlotter {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalPlotter{
		Out:    out,
		Width:  60,
		Height: 16,
		Camera: NewCamera(),
	}
}

// Render2D draws x against the cross-range distance with the dashed ellipse
// around the final point.
func Render2D(c *Canvas, traj sim.Trajectory) {
	n := traj.Len()
	y2 := column(traj.Y2, n)
	ex, ey := FinalEllipse(traj)

	f := FitFrame(c, [2][]float64{traj.X, y2}, [2][]float64{ex, ey})
	c.Polyline(f, traj.X, y2, false)
	c.Polyline(f, ex, ey, true)
}

// Render3D draws the projected path with the coordinate axes behind it.
func Render3D(c *Canvas, traj sim.Trajectory, cam Camera) {
	pts := Points3D(traj)
	axes := Axes(extent(pts))

	series := make([][2][]float64, 0, 4)
	for _, axis := range axes {
		u, v := cam.ProjectAll(axis)
		series = append(series, [2][]float64{u, v})
	}
	u, v := cam.ProjectAll(pts)
	series = append(series, [2][]float64{u, v})

	f := FitFrame(c, series...)
	for _, s := range series[:3] {
		c.Polyline(f, s[0], s[1], false)
	}
	c.Polyline(f, u, v, false)
}

func (t *TerminalPlotter) Plot(traj sim.Trajectory) error {
	if traj.Len() == 0 {
		return ErrEmptyTrajectory
	}

	c := NewCanvas(t.Width, t.Height)
	Render2D(c, traj)
	t.panel("trajectory (x vs cross-range)", c.String(),
		fmt.Sprintf("final (%.2f, %.2f), dashed ellipse is illustrative", traj.X[traj.Len()-1], column(traj.Y2, traj.Len())[traj.Len()-1]))

	if traj.Len() > 1 {
		graph := asciigraph.Plot(column(traj.Y2, traj.Len()),
			asciigraph.Height(8),
			asciigraph.Width(t.Width),
			asciigraph.Caption("cross-range by step"),
		)
		fmt.Fprintln(t.Out, graph)
	}
	return nil
}

func (t *TerminalPlotter) Plot3D(traj sim.Trajectory) error {
	if traj.Len() == 0 {
		return ErrEmptyTrajectory
	}

	c := NewCanvas(t.Width, t.Height)
	Render3D(c, traj, t.Camera)
	t.panel("trajectory 3D", c.String(), "axes drawn from the origin")
	return nil
}

func (t *TerminalPlotter) panel(title, body, caption string) {
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		body,
		captionStyle.Render(caption),
	)
	fmt.Fprintln(t.Out, panelStyle.Render(content))
}
