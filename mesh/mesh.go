// Package mesh turns a relaxed joint chain into drawable geometry.
//
// A single traversal visits the head cap, every interior joint and the tail cap,
// computing the rail offsets once. What gets produced from those offsets is decided
// by an emitter: the outline emitter collects boundary points for a closed polygon,
// the triangle emitter fills caps, joint wedges and the panels between joints.
//
// Rails are named relative to the head-to-tail direction of travel: "left" is the
// side of ab.Normal() (counter-clockwise), "right" the opposite side. At each
// interior joint the convex side gets a three point bevel and the concave side a
// single pinched point, which keeps the outline free of self-intersections at bends.
package mesh

import (
	"math"

	"github.com/lixenwraith/vi-worms/chain"
	"github.com/lixenwraith/vi-worms/parameter"
	"github.com/lixenwraith/vi-worms/vmath"
)

// Triangle is one filled mesh face
type Triangle struct {
	A, B, C vmath.Vec2
}

// SignedArea is positive when A→B→C turns from +x toward +y
func (t Triangle) SignedArea() float64 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)) / 2
}

// Area returns the unsigned area
func (t Triangle) Area() float64 {
	return math.Abs(t.SignedArea())
}

// wound returns t with non-negative signed area, swapping B and C when needed
func wound(t Triangle) Triangle {
	if t.SignedArea() < 0 {
		t.B, t.C = t.C, t.B
	}
	return t
}

// Generator builds outlines and meshes from joints
type Generator struct {
	// CapSamples is the number of points on each semicircular cap, minimum 2
	CapSamples int
}

// NewGenerator returns a generator with the stock cap resolution
func NewGenerator() Generator {
	return Generator{CapSamples: parameter.CapSamples}
}

// Outline returns the closed silhouette polygon, implicitly closed from last point to first
// Fewer than two joints yield nil
func (g Generator) Outline(joints []chain.Joint) []vmath.Vec2 {
	var o outlineEmitter
	if !g.walk(joints, &o) {
		return nil
	}
	return o.polygon()
}

// Mesh returns the triangulated body in generation order, head first
// Draw in reverse order so tail faces go down first
func (g Generator) Mesh(joints []chain.Joint) []Triangle {
	var m meshEmitter
	if !g.walk(joints, &m) {
		return nil
	}
	return m.tris
}

// corner is the mitered geometry at an interior joint
type corner struct {
	center vmath.Vec2
	// left and right are the bisector offsets center±n
	left, right vmath.Vec2
	// in and out are the incoming and outgoing edge offsets on the convex side
	in, out    vmath.Vec2
	convexLeft bool
}

// entry and exit return the rail points (left, right) facing the previous and next segment
func (c corner) entry() (vmath.Vec2, vmath.Vec2) {
	if c.convexLeft {
		return c.in, c.right
	}
	return c.left, c.in
}

func (c corner) exit() (vmath.Vec2, vmath.Vec2) {
	if c.convexLeft {
		return c.out, c.right
	}
	return c.left, c.out
}

// capRim traces the semicircle at end joint ex whose only neighbor is p
// For the head cap rim[0] lies on the left rail, for the tail cap on the right rail
type capRim struct {
	center vmath.Vec2
	rim    []vmath.Vec2
}

type emitter interface {
	headCap(c capRim)
	joint(c corner)
	tailCap(c capRim)
}

func (g Generator) walk(joints []chain.Joint, e emitter) bool {
	if len(joints) < 2 {
		return false
	}
	n := g.samples()
	last := len(joints) - 1

	e.headCap(extrema(joints[0], joints[1], n))
	for i := 1; i < last; i++ {
		e.joint(miter(joints[i-1], joints[i], joints[i+1]))
	}
	e.tailCap(extrema(joints[last], joints[last-1], n))
	return true
}

func (g Generator) samples() int {
	if g.CapSamples < 2 {
		return 2
	}
	return g.CapSamples
}

func extrema(ex, p chain.Joint, n int) capRim {
	start := ex.Position.Sub(p.Position).Normal().ScaledTo(ex.BodyRadius).Neg()
	da := math.Pi / float64(n-1)

	rim := make([]vmath.Vec2, n)
	for i := range rim {
		rim[i] = ex.Position.Add(start.Rotate(float64(i) * da))
	}
	return capRim{center: ex.Position, rim: rim}
}

func miter(a, b, c chain.Joint) corner {
	r := b.BodyRadius
	ab := b.Position.Sub(a.Position)
	bc := c.Position.Sub(b.Position)
	n := ab.Add(bc).Normal().ScaledTo(r)

	k := corner{
		center:     b.Position,
		left:       b.Position.Add(n),
		right:      b.Position.Sub(n),
		convexLeft: ab.Dot(n) >= 0,
	}

	inOff := ab.Normal().ScaledTo(r)
	outOff := bc.Normal().ScaledTo(r)
	if k.convexLeft {
		k.in, k.out = b.Position.Add(inOff), b.Position.Add(outOff)
	} else {
		k.in, k.out = b.Position.Sub(inOff), b.Position.Sub(outOff)
	}
	return k
}
