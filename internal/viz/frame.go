package viz

import "math"

// Frame maps world coordinates onto a canvas in sub-pixels, with y growing
// upwards in the world and downwards on screen.
type Frame struct {
	MinX, MaxX float64
	MinY, MaxY float64
	W, H       int
}

// FitFrame returns a frame covering every point of the given series plus a
// 10% margin on each side.
func FitFrame(c *Canvas, series ...[2][]float64) Frame {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, x := range s[0] {
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		}
		for _, y := range s[1] {
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
	}
	if math.IsInf(minX, 1) {
		minX, maxX = 0, 1
	}
	if math.IsInf(minY, 1) {
		minY, maxY = 0, 1
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	return Frame{
		MinX: minX - rangeX*0.1,
		MaxX: maxX + rangeX*0.1,
		MinY: minY - rangeY*0.1,
		MaxY: maxY + rangeY*0.1,
		W:    c.PixelWidth(),
		H:    c.PixelHeight(),
	}
}

func (f Frame) Map(x, y float64) (int, int) {
	px := (x - f.MinX) / (f.MaxX - f.MinX) * float64(f.W-1)
	py := (y - f.MinY) / (f.MaxY - f.MinY) * float64(f.H-1)
	return int(math.Round(px)), f.H - 1 - int(math.Round(py))
}
