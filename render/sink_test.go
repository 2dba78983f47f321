package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-worms/mesh"
	"github.com/lixenwraith/vi-worms/vmath"
	"github.com/lixenwraith/vi-worms/worm"
)

type recorder struct {
	lines   [][2]vmath.Vec2
	tris    []mesh.Triangle
	circles []vmath.Vec2
	colors  []color.RGBA
}

func (r *recorder) DrawLine(a, b vmath.Vec2, c color.RGBA) {
	r.lines = append(r.lines, [2]vmath.Vec2{a, b})
	r.colors = append(r.colors, c)
}

func (r *recorder) DrawTriangle(t mesh.Triangle, c color.RGBA) {
	r.tris = append(r.tris, t)
	r.colors = append(r.colors, c)
}

func (r *recorder) DrawCircleOutline(center vmath.Vec2, _ float64, c color.RGBA) {
	r.circles = append(r.circles, center)
	r.colors = append(r.colors, c)
}

func testWorm(t *testing.T, joints int) *worm.Worm {
	t.Helper()
	w := worm.New(worm.WithColor(Palette[3]))
	for i := 0; i < joints; i++ {
		require.NoError(t, w.Grow(10, 4))
	}
	w.Update(vmath.V2(100, 100))
	return w
}

func TestDrawOutlineClosesLoop(t *testing.T) {
	var r recorder
	poly := []vmath.Vec2{vmath.V2(0, 0), vmath.V2(1, 0), vmath.V2(1, 1)}
	DrawOutline(&r, poly, Palette[0])

	require.Len(t, r.lines, 3)
	assert.Equal(t, [2]vmath.Vec2{poly[2], poly[0]}, r.lines[2])

	var empty recorder
	DrawOutline(&empty, poly[:1], Palette[0])
	assert.Empty(t, empty.lines)
}

func TestDrawMeshPopsFromTail(t *testing.T) {
	var r recorder
	tris := []mesh.Triangle{
		{A: vmath.V2(0, 0)},
		{A: vmath.V2(1, 0)},
		{A: vmath.V2(2, 0)},
	}
	DrawMesh(&r, tris, Palette[0])

	require.Len(t, r.tris, 3)
	assert.Equal(t, tris[2], r.tris[0])
	assert.Equal(t, tris[0], r.tris[2])
}

func TestDrawWormModes(t *testing.T) {
	w := testWorm(t, 5)

	var outline recorder
	DrawWorm(&outline, w, Options{Mode: ModeOutline})
	assert.Len(t, outline.lines, len(w.GenerateOutline()))
	assert.Empty(t, outline.circles)
	assert.Equal(t, Palette[3], outline.colors[0])

	var filled recorder
	DrawWorm(&filled, w, Options{Mode: ModeMesh, Joints: true})
	assert.Len(t, filled.tris, len(w.GenerateMesh()))
	assert.Len(t, filled.circles, 5)
	assert.Equal(t, JointColor, filled.colors[len(filled.colors)-1])

	var debug recorder
	DrawWorm(&debug, w, Options{Mode: ModeDebug, Joints: true})
	assert.Len(t, debug.circles, 5, "debug mode does not double the overlay")
	assert.Empty(t, debug.lines)
	assert.Empty(t, debug.tris)
}

func TestDrawSingleJointWorm(t *testing.T) {
	w := testWorm(t, 1)

	var r recorder
	DrawWorm(&r, w, Options{Mode: ModeOutline, Joints: true})
	assert.Empty(t, r.lines)
	assert.Equal(t, []vmath.Vec2{vmath.V2(100, 100)}, r.circles)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeOutline, ModeMesh, ModeDebug} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParseMode("MESH")
	require.NoError(t, err)
	assert.Equal(t, ModeMesh, got)

	_, err = ParseMode("wireframe")
	assert.Error(t, err)
	assert.Equal(t, "Mode(7)", Mode(7).String())
}

func TestModeNextCycles(t *testing.T) {
	assert.Equal(t, ModeMesh, ModeOutline.Next())
	assert.Equal(t, ModeDebug, ModeMesh.Next())
	assert.Equal(t, ModeOutline, ModeDebug.Next())
}
