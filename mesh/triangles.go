package mesh

import "github.com/lixenwraith/vi-worms/vmath"

// meshEmitter fills the body: a fan per cap, a wedge pair per joint and a
// quad per segment between consecutive rail sections
// Every triangle is emitted with the same winding
type meshEmitter struct {
	tris []Triangle

	// Rail points facing the next segment
	prevLeft, prevRight vmath.Vec2
}

func (m *meshEmitter) headCap(c capRim) {
	m.fan(c)
	m.prevLeft, m.prevRight = c.rim[0], c.rim[len(c.rim)-1]
}

func (m *meshEmitter) joint(c corner) {
	l, r := c.entry()
	m.quad(l, r)

	m.emit(Triangle{c.left, c.right, c.in})
	m.emit(Triangle{c.right, c.left, c.out})
	m.prevLeft, m.prevRight = c.exit()
}

func (m *meshEmitter) tailCap(c capRim) {
	m.quad(c.rim[len(c.rim)-1], c.rim[0])
	m.fan(c)
}

// quad bridges the previous section to (l, r) without crossing the diagonals
func (m *meshEmitter) quad(l, r vmath.Vec2) {
	m.emit(Triangle{m.prevLeft, m.prevRight, r})
	m.emit(Triangle{m.prevLeft, r, l})
}

func (m *meshEmitter) fan(c capRim) {
	for i := 0; i+1 < len(c.rim); i++ {
		m.emit(Triangle{c.center, c.rim[i], c.rim[i+1]})
	}
}

func (m *meshEmitter) emit(t Triangle) {
	m.tris = append(m.tris, wound(t))
}
