package mesh

import (
	"slices"

	"github.com/lixenwraith/vi-worms/vmath"
)

// outlineEmitter gathers the two rails; caps go on the right rail so the
// final walk is: left rail tail→head, head cap, right rail head→tail, tail cap
type outlineEmitter struct {
	left, right []vmath.Vec2
}

func (o *outlineEmitter) headCap(c capRim) {
	o.right = append(o.right, c.rim...)
}

func (o *outlineEmitter) tailCap(c capRim) {
	o.right = append(o.right, c.rim...)
}

func (o *outlineEmitter) joint(c corner) {
	if c.convexLeft {
		o.left = append(o.left, c.in, c.left, c.out)
		o.right = append(o.right, c.right)
		return
	}
	o.left = append(o.left, c.left)
	o.right = append(o.right, c.in, c.right, c.out)
}

func (o *outlineEmitter) polygon() []vmath.Vec2 {
	out := make([]vmath.Vec2, 0, len(o.left)+len(o.right))
	out = append(out, o.left...)
	slices.Reverse(out)
	return append(out, o.right...)
}
