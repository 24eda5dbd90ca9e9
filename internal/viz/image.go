package viz

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/san-kum/gncsim/internal/sim"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

var ErrUnknownFormat = errors.New("viz: unknown image format")

const (
	base2D = "trajectory_2d"
	base3D = "trajectory_3d"
)

var (
	trajectoryColor = color.RGBA{R: 0x00, G: 0x77, B: 0xbe, A: 0xff}
	ellipseColor    = color.RGBA{R: 0xff, G: 0x47, B: 0x57, A: 0xff}
	axisColor       = color.RGBA{R: 0x88, G: 0x88, B: 0x99, A: 0xff}
)

// ImagePlotter writes trajectory plots as PNG or SVG files into Dir.
type ImagePlotter struct {
	Dir    string
	Format string
	Title  string
	Width  vg.Length
	Height vg.Length
	DPI    int
	Camera Camera
}

func NewImagePlotter(dir, format string) *ImagePlotter {
	if format == "" {
		format = FormatPNG
	}
	return &ImagePlotter{
		Dir:    dir,
		Format: format,
		Title:  "Simulated trajectory (non-functional)",
		Width:  8 * vg.Inch,
		Height: 6 * vg.Inch,
		DPI:    150,
		Camera: NewCamera(),
	}
}

func (p *ImagePlotter) Path2D() string { return filepath.Join(p.Dir, base2D+"."+p.Format) }
func (p *ImagePlotter) Path3D() string { return filepath.Join(p.Dir, base3D+"."+p.Format) }

func (p *ImagePlotter) Plot(traj sim.Trajectory) error {
	n := traj.Len()
	if n == 0 {
		return ErrEmptyTrajectory
	}

	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = "x"
	pl.Y.Label.Text = "cross-range"
	pl.Add(plotter.NewGrid())

	path, err := plotter.NewLine(xys(traj.X, column(traj.Y2, n)))
	if err != nil {
		return err
	}
	path.LineStyle.Width = vg.Points(2)
	path.LineStyle.Color = trajectoryColor

	ex, ey := FinalEllipse(traj)
	ellipse, err := plotter.NewLine(xys(ex, ey))
	if err != nil {
		return err
	}
	ellipse.LineStyle.Color = ellipseColor
	ellipse.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	last, err := plotter.NewScatter(xys(traj.X[n-1:], column(traj.Y2, n)[n-1:]))
	if err != nil {
		return err
	}
	last.GlyphStyle.Color = ellipseColor
	last.GlyphStyle.Shape = draw.CircleGlyph{}

	pl.Add(path, ellipse, last)
	pl.Legend.Add("trajectory", path)
	pl.Legend.Add("uncertainty (illustrative)", ellipse)
	pl.Legend.Top = true

	return p.save(pl, p.Path2D())
}

func (p *ImagePlotter) Plot3D(traj sim.Trajectory) error {
	if traj.Len() == 0 {
		return ErrEmptyTrajectory
	}

	pts := Points3D(traj)

	pl := plot.New()
	pl.Title.Text = p.Title + " - 3D"
	pl.X.Label.Text = "view u"
	pl.Y.Label.Text = "view v"
	pl.HideAxes()

	for i, axis := range Axes(extent(pts)) {
		u, v := p.Camera.ProjectAll(axis)
		line, err := plotter.NewLine(xys(u, v))
		if err != nil {
			return err
		}
		line.LineStyle.Color = axisColor
		line.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		pl.Add(line)

		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    xys(u[1:], v[1:]),
			Labels: []string{string(rune('x' + i))},
		})
		if err != nil {
			return err
		}
		pl.Add(labels)
	}

	u, v := p.Camera.ProjectAll(pts)
	path, err := plotter.NewLine(xys(u, v))
	if err != nil {
		return err
	}
	path.LineStyle.Width = vg.Points(2)
	path.LineStyle.Color = trajectoryColor
	pl.Add(path)
	pl.Legend.Add("trajectory", path)

	return p.save(pl, p.Path3D())
}

func (p *ImagePlotter) save(pl *plot.Plot, filename string) error {
	var c interface {
		vg.CanvasSizer
		io.WriterTo
	}
	switch p.Format {
	case FormatPNG:
		img := vgimg.NewWith(
			vgimg.UseWH(p.Width, p.Height),
			vgimg.UseDPI(p.DPI),
		)
		c = vgimg.PngCanvas{Canvas: img}
	case FormatSVG:
		c = vgsvg.New(p.Width, p.Height)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, p.Format)
	}
	pl.Draw(draw.New(c))

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("create plot directory: %w", err)
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", p.Format, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := c.WriteTo(bw); err != nil {
		return fmt.Errorf("write %s: %w", p.Format, err)
	}
	return bw.Flush()
}

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, min(len(xs), len(ys)))
	for i := range pts {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}
