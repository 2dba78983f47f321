// Package chain holds the head-to-tail joint sequence of a worm skeleton and
// the single-pass follow-the-leader relaxation that drags it behind the head.
package chain

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/vi-worms/vmath"
)

var (
	// ErrNegativeRadius rejects a joint whose leash or body radius is below zero
	ErrNegativeRadius = errors.New("chain: negative radius")
	// ErrInvalidRadius rejects NaN or infinite radii
	ErrInvalidRadius = errors.New("chain: radius is not a finite number")
)

// Joint is one bone of the skeleton
type Joint struct {
	Position vmath.Vec2
	// ControlRadius is the leash length: max distance to the joint in front after relaxation
	ControlRadius float64
	// BodyRadius is the rendering half-width at this joint
	BodyRadius float64
}

// Chain is an ordered head-first joint sequence
// Index i-1 is the parent (toward the head) of index i
type Chain struct {
	joints []Joint
}

// New returns an empty chain
func New() *Chain {
	return &Chain{}
}

// Len returns the joint count
func (c *Chain) Len() int {
	return len(c.joints)
}

// Head returns the head position, origin for an empty chain
func (c *Chain) Head() vmath.Vec2 {
	if len(c.joints) == 0 {
		return vmath.Vec2{}
	}
	return c.joints[0].Position
}

// Joint returns the joint at index i (0 = head)
func (c *Chain) Joint(i int) (Joint, bool) {
	if i < 0 || i >= len(c.joints) {
		return Joint{}, false
	}
	return c.joints[i], true
}

// Joints returns a copy of the joints, head first
func (c *Chain) Joints() []Joint {
	out := make([]Joint, len(c.joints))
	copy(out, c.joints)
	return out
}

// View exposes the backing slice for read-only traversal without allocation
// Callers must not retain or modify it
func (c *Chain) View() []Joint {
	return c.joints
}

// Grow prepends a new head at the current head position; the old head becomes its child
// Building tail to head: the last Grow call defines the head
func (c *Chain) Grow(controlRadius, bodyRadius float64) error {
	if err := validateRadius("control", controlRadius); err != nil {
		return err
	}
	if err := validateRadius("body", bodyRadius); err != nil {
		return err
	}

	head := Joint{
		Position:      c.Head(),
		ControlRadius: controlRadius,
		BodyRadius:    bodyRadius,
	}

	c.joints = append(c.joints, Joint{})
	copy(c.joints[1:], c.joints[:len(c.joints)-1])
	c.joints[0] = head
	return nil
}

// Update moves the head to p and relaxes every joint toward its parent, head to tail, one pass
func (c *Chain) Update(p vmath.Vec2) {
	if len(c.joints) == 0 {
		return
	}
	c.joints[0].Position = p
	for i := 1; i < len(c.joints); i++ {
		parent := &c.joints[i-1]
		c.joints[i].Position = Follow(parent.Position, c.joints[i].Position, parent.ControlRadius)
	}
}

// Follow applies the leash rule: child stays put within r of parent, otherwise is pulled onto the circle of radius r
func Follow(parent, child vmath.Vec2, r float64) vmath.Vec2 {
	v := child.Sub(parent)
	n := v.Norm()
	if n <= r || n < vmath.Epsilon {
		return child
	}
	return parent.Add(v.Scale(r / n))
}

func validateRadius(kind string, r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return fmt.Errorf("%s radius %v: %w", kind, r, ErrInvalidRadius)
	}
	if r < 0 {
		return fmt.Errorf("%s radius %v: %w", kind, r, ErrNegativeRadius)
	}
	return nil
}
