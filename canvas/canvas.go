package canvas

import (
	"image/color"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Canvas draws stroked lines and captions onto a Target.
type Canvas struct {
	Target     Target
	Stroke     Color
	Background Color

	lines int
}

func New(t Target, stroke, background Color) *Canvas {
	return &Canvas{Target: t, Stroke: stroke, Background: background}
}

func (c *Canvas) Size() (w, h int) { return c.Target.Size() }

// Clear paints the background and resets the line counter.
func (c *Canvas) Clear() {
	c.Target.Clear(c.Background)
	c.lines = 0
}

// Lines is the number of DrawLine calls since the last Clear.
func (c *Canvas) Lines() int { return c.lines }

// DrawLine strokes a line between two surface points. The segment is clipped to
// the target before rasterizing, so work is bounded by the target size however
// long the line is. Non-finite coordinates are dropped.
func (c *Canvas) DrawLine(x0, y0, x1, y1 float64) {
	c.lines++
	if !finite(x0) || !finite(y0) || !finite(x1) || !finite(y1) {
		return
	}
	w, h := c.Target.Size()
	if w <= 0 || h <= 0 {
		return
	}
	// Shifted by half a pixel, pixel (i, j) covers [i,i+1)x[j,j+1), so flooring
	// the clipped endpoints matches rounding the originals.
	x0, y0, x1, y1, ok := clipLine(x0+0.5, y0+0.5, x1+0.5, y1+0.5, float64(w), float64(h))
	if !ok {
		return
	}
	drawLine(c.Target, pixel(x0, w), pixel(y0, h), pixel(x1, w), pixel(y1, h), c.Stroke)
}

// clipLine is Liang-Barsky against [0,xmax]x[0,ymax]. The clipped segment has
// the same direction as the input; ok is false when nothing remains.
func clipLine(x0, y0, x1, y1, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	if !finite(dx) || !finite(dy) {
		// Only endpoints near ±MaxFloat64 overflow; one halving brings them in range.
		cx0, cy0, cx1, cy1, ok = clipLine(x0/2, y0/2, x1/2, y1/2, xmax/2, ymax/2)
		return cx0 * 2, cy0 * 2, cx1 * 2, cy1 * 2, ok
	}
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{{-dx, x0}, {dx, xmax - x0}, {-dy, y0}, {dy, ymax - y0}}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// Caption writes text with its baseline at (x, y).
func (c *Canvas) Caption(x, y int, text string, col Color) {
	tinyfont.WriteLine(c.Displayer(), &tinyfont.TomThumb, int16(x), int16(y), text, col.RGBA8())
}

// CaptionWidth is the rendered width of text in pixels.
func CaptionWidth(text string) int {
	_, outbox := tinyfont.LineWidth(&tinyfont.TomThumb, text)
	return int(outbox)
}

// Displayer exposes the target as a drivers.Displayer for tinyfont.
func (c *Canvas) Displayer() drivers.Displayer { return displayer{t: c.Target} }

type displayer struct {
	t Target
}

func (d displayer) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d displayer) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), Color{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (d displayer) Display() error { return nil }

// drawLine is Bresenham over integer pixel coordinates.
func drawLine(t Target, x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// pixel floors a clipped coordinate into [0, n).
func pixel(v float64, n int) int {
	return min(max(int(math.Floor(v)), 0), n-1)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
