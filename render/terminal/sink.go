// Package terminal rasterizes worm geometry into a tcell cell grid.
// World coordinates map to cells through a fixed cell size, taller than wide,
// so worms keep their proportions on a character display.
package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-worms/mesh"
	"github.com/lixenwraith/vi-worms/vmath"
)

// Glyphs used by the rasterizer
const (
	GlyphFill   = '█'
	GlyphCircle = 'o'
)

// Sink draws into a Canvas
type Sink struct {
	canvas       *Canvas
	cellW, cellH float64
	background   tcell.Color
}

// NewSink wraps canvas; cellW and cellH are world units per cell
func NewSink(canvas *Canvas, cellW, cellH float64, background color.RGBA) *Sink {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &Sink{canvas: canvas, cellW: cellW, cellH: cellH, background: Color(background)}
}

// Canvas returns the backing grid
func (s *Sink) Canvas() *Canvas {
	return s.canvas
}

// Size returns the canvas extent in world units
func (s *Sink) Size() (int, int) {
	return int(float64(s.canvas.Width()) * s.cellW), int(float64(s.canvas.Height()) * s.cellH)
}

// ToWorld maps the center of cell (x, y) to world coordinates
func (s *Sink) ToWorld(x, y int) vmath.Vec2 {
	return vmath.V2((float64(x)+0.5)*s.cellW, (float64(y)+0.5)*s.cellH)
}

func (s *Sink) toCell(p vmath.Vec2) (float64, float64) {
	return p.X / s.cellW, p.Y / s.cellH
}

func (s *Sink) style(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(Color(c)).Background(s.background)
}

// DrawLine plots a Bresenham line with a slope glyph
func (s *Sink) DrawLine(a, b vmath.Vec2, c color.RGBA) {
	ax, ay := s.toCell(a)
	bx, by := s.toCell(b)
	x0, y0 := int(math.Floor(ax)), int(math.Floor(ay))
	x1, y1 := int(math.Floor(bx)), int(math.Floor(by))

	cell := Cell{Rune: slopeGlyph(bx-ax, by-ay), Style: s.style(c)}
	plotLine(x0, y0, x1, y1, func(x, y int) {
		s.canvas.SetCell(x, y, cell)
	})
}

// DrawTriangle fills every cell whose center lies inside the triangle
func (s *Sink) DrawTriangle(t mesh.Triangle, c color.RGBA) {
	ax, ay := s.toCell(t.A)
	bx, by := s.toCell(t.B)
	cx, cy := s.toCell(t.C)

	area := edge(ax, ay, bx, by, cx, cy)
	if math.Abs(area) < vmath.Epsilon {
		return
	}

	minX := max(int(math.Floor(min(ax, bx, cx))), 0)
	maxX := min(int(math.Ceil(max(ax, bx, cx))), s.canvas.Width()-1)
	minY := max(int(math.Floor(min(ay, by, cy))), 0)
	maxY := min(int(math.Ceil(max(ay, by, cy))), s.canvas.Height()-1)

	cell := Cell{Rune: GlyphFill, Style: s.style(c)}
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(bx, by, cx, cy, px, py)
			w1 := edge(cx, cy, ax, ay, px, py)
			w2 := edge(ax, ay, bx, by, px, py)
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				s.canvas.SetCell(x, y, cell)
			}
		}
	}
}

// DrawCircleOutline plots the ellipse the world circle becomes on the cell grid
func (s *Sink) DrawCircleOutline(center vmath.Vec2, radius float64, c color.RGBA) {
	cx, cy := s.toCell(center)
	rx, ry := radius/s.cellW, radius/s.cellH

	cell := Cell{Rune: GlyphCircle, Style: s.style(c)}
	steps := max(8, int(math.Ceil(2*math.Pi*max(rx, ry))))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := int(math.Floor(cx + rx*math.Cos(a)))
		y := int(math.Floor(cy + ry*math.Sin(a)))
		s.canvas.SetCell(x, y, cell)
	}
}

// Color converts to a truecolor tcell color
func Color(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// edge is twice the signed area of (a, b, p)
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func slopeGlyph(dx, dy float64) rune {
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case ady*2 <= adx:
		return '-'
	case adx*2 <= ady:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\' // y grows downward
	default:
		return '/'
	}
}

// plotLine walks integer Bresenham from (x0, y0) to (x1, y1) inclusive
func plotLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
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

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
