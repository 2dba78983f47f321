// Package window draws worms onto an ebiten image, one world unit per pixel.
package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/vi-worms/mesh"
	"github.com/lixenwraith/vi-worms/vmath"
)

// DefaultStrokeWidth is the outline width in pixels
const DefaultStrokeWidth = 1.5

// maxBatchVertices keeps indices inside uint16
const maxBatchVertices = 1<<16 - 3

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// Batch accumulates filled triangles for a single DrawTriangles call
type Batch struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// Add appends one solid-color triangle
func (b *Batch) Add(t mesh.Triangle, c color.RGBA) {
	base := uint16(len(b.Vertices))
	r, g, bl, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for _, p := range [3]vmath.Vec2{t.A, t.B, t.C} {
		b.Vertices = append(b.Vertices, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: bl, ColorA: a,
		})
	}
	b.Indices = append(b.Indices, base, base+1, base+2)
}

// Len is the number of batched triangles
func (b *Batch) Len() int { return len(b.Indices) / 3 }

// Full reports whether another triangle would overflow the index type
func (b *Batch) Full() bool { return len(b.Vertices)+3 > maxBatchVertices }

func (b *Batch) Reset() {
	b.Vertices = b.Vertices[:0]
	b.Indices = b.Indices[:0]
}

// Sink renders into the image set by Begin
// Triangles are batched and flushed before any stroke so draw order is kept
type Sink struct {
	dst         *ebiten.Image
	batch       Batch
	StrokeWidth float32
	Antialias   bool
}

func NewSink() *Sink {
	return &Sink{StrokeWidth: DefaultStrokeWidth, Antialias: true}
}

// Begin targets dst for the following draw calls
func (s *Sink) Begin(dst *ebiten.Image) {
	s.dst = dst
	s.batch.Reset()
}

// Size is the target image extent
func (s *Sink) Size() (int, int) {
	if s.dst == nil {
		return 0, 0
	}
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

// Flush submits pending triangles
func (s *Sink) Flush() {
	if s.dst == nil || s.batch.Len() == 0 {
		return
	}
	s.dst.DrawTriangles(s.batch.Vertices, s.batch.Indices, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: s.Antialias})
	s.batch.Reset()
}

func (s *Sink) DrawTriangle(t mesh.Triangle, c color.RGBA) {
	if s.batch.Full() {
		s.Flush()
	}
	s.batch.Add(t, c)
}

func (s *Sink) DrawLine(a, b vmath.Vec2, c color.RGBA) {
	if s.dst == nil {
		return
	}
	s.Flush()
	vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), s.StrokeWidth, c, s.Antialias)
}

func (s *Sink) DrawCircleOutline(center vmath.Vec2, radius float64, c color.RGBA) {
	if s.dst == nil {
		return
	}
	s.Flush()
	vector.StrokeCircle(s.dst, float32(center.X), float32(center.Y), float32(radius), s.StrokeWidth, c, s.Antialias)
}
