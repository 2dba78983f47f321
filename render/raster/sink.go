// Package raster draws worms into an in-memory image with fogleman/gg, for
// headless snapshots.
package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/lixenwraith/vi-worms/mesh"
	"github.com/lixenwraith/vi-worms/vmath"
)

// DefaultLineWidth is the stroke width in pixels for outlines and circles
const DefaultLineWidth = 1.5

// Sink wraps a gg drawing context, one world unit per pixel
type Sink struct {
	dc        *gg.Context
	LineWidth float64
}

// New allocates a width×height canvas
func New(width, height int) *Sink {
	return &Sink{dc: gg.NewContext(width, height), LineWidth: DefaultLineWidth}
}

// Size returns the image extent
func (s *Sink) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

// Clear paints the whole image
func (s *Sink) Clear(c color.RGBA) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

func (s *Sink) DrawLine(a, b vmath.Vec2, c color.RGBA) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(s.LineWidth)
	s.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	s.dc.Stroke()
}

func (s *Sink) DrawTriangle(t mesh.Triangle, c color.RGBA) {
	s.dc.SetColor(c)
	s.dc.MoveTo(t.A.X, t.A.Y)
	s.dc.LineTo(t.B.X, t.B.Y)
	s.dc.LineTo(t.C.X, t.C.Y)
	s.dc.ClosePath()
	s.dc.Fill()
}

func (s *Sink) DrawCircleOutline(center vmath.Vec2, radius float64, c color.RGBA) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(s.LineWidth)
	s.dc.DrawCircle(center.X, center.Y, radius)
	s.dc.Stroke()
}

// DrawLabel writes text with its top-left corner at (x, y)
func (s *Sink) DrawLabel(text string, x, y float64, c color.RGBA) {
	s.dc.SetColor(c)
	s.dc.DrawStringAnchored(text, x, y, 0, 1)
}

// Image exposes the rendered frame
func (s *Sink) Image() image.Image {
	return s.dc.Image()
}

// SavePNG writes the frame to path
func (s *Sink) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("raster: save %s: %w", path, err)
	}
	return nil
}
