// Package render turns worm geometry into draw calls on a Sink.
// Sinks are the drawing back ends: a terminal cell grid, an image, or a window.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lixenwraith/vi-worms/mesh"
	"github.com/lixenwraith/vi-worms/vmath"
	"github.com/lixenwraith/vi-worms/worm"
)

// Sink receives primitive draw calls in world coordinates
type Sink interface {
	DrawLine(a, b vmath.Vec2, c color.RGBA)
	DrawTriangle(t mesh.Triangle, c color.RGBA)
	DrawCircleOutline(center vmath.Vec2, radius float64, c color.RGBA)
}

// Viewport reports the current drawable size in world units
type Viewport interface {
	Size() (width, height int)
}

// Mode selects how a worm body is drawn
type Mode uint8

const (
	ModeOutline Mode = iota
	ModeMesh
	ModeDebug
)

var modeNames = [...]string{
	ModeOutline: "outline",
	ModeMesh:    "mesh",
	ModeDebug:   "debug",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// ParseMode resolves a mode name, case-insensitive
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("render: unknown mode %q (want outline, mesh or debug)", s)
}

// Next cycles outline → mesh → debug → outline
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeNames))
}

// Options control one DrawWorm call
type Options struct {
	Mode Mode
	// Joints overlays the debug circles on top of the body
	Joints bool
}

// DrawWorm renders one worm into the sink
func DrawWorm(s Sink, w *worm.Worm, opts Options) {
	c := w.Color()
	switch opts.Mode {
	case ModeOutline:
		DrawOutline(s, w.GenerateOutline(), c)
	case ModeMesh:
		DrawMesh(s, w.GenerateMesh(), c)
	case ModeDebug:
		DrawJoints(s, w.DebugJoints(), JointColor)
		return
	}
	if opts.Joints {
		DrawJoints(s, w.DebugJoints(), JointColor)
	}
}

// DrawOutline strokes the polygon and closes it from the last point back to the first
func DrawOutline(s Sink, poly []vmath.Vec2, c color.RGBA) {
	if len(poly) < 2 {
		return
	}
	for i := 1; i < len(poly); i++ {
		s.DrawLine(poly[i-1], poly[i], c)
	}
	s.DrawLine(poly[len(poly)-1], poly[0], c)
}

// DrawMesh fills triangles popping from the end, so tail faces are drawn first
func DrawMesh(s Sink, tris []mesh.Triangle, c color.RGBA) {
	for i := len(tris) - 1; i >= 0; i-- {
		s.DrawTriangle(tris[i], c)
	}
}

// DrawJoints strokes one circle per joint
func DrawJoints(s Sink, joints []worm.DebugJoint, c color.RGBA) {
	for _, j := range joints {
		s.DrawCircleOutline(j.Position, j.BodyRadius, c)
	}
}
