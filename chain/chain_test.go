package chain

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/vi-worms/vmath"
)

const eps = 1e-9

func buildChain(t *testing.T, n int, control, body float64) *Chain {
	t.Helper()
	c := New()
	for i := 0; i < n; i++ {
		if err := c.Grow(control, body); err != nil {
			t.Fatalf("Grow failed: %v", err)
		}
	}
	return c
}

func joint(t *testing.T, c *Chain, i int) Joint {
	t.Helper()
	j, ok := c.Joint(i)
	if !ok {
		t.Fatalf("Expected joint %d to exist in chain of %d", i, c.Len())
	}
	return j
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func TestGrowPrependsAtHead(t *testing.T) {
	c := New()
	if err := c.Grow(10, 1); err != nil {
		t.Fatalf("Grow failed: %v", err)
	}
	c.Update(vmath.V2(7, 3))
	if err := c.Grow(20, 2); err != nil {
		t.Fatalf("Grow failed: %v", err)
	}

	if c.Len() != 2 {
		t.Fatalf("Expected 2 joints, got %d", c.Len())
	}
	head, tail := joint(t, c, 0), joint(t, c, 1)

	// Last grow becomes the head, spawned at the previous head position
	if head.ControlRadius != 20 || head.BodyRadius != 2 {
		t.Errorf("Expected head radii (20, 2), got (%v, %v)", head.ControlRadius, head.BodyRadius)
	}
	if head.Position != vmath.V2(7, 3) {
		t.Errorf("Expected head at (7, 3), got %v", head.Position)
	}
	if tail.ControlRadius != 10 {
		t.Errorf("Expected tail control radius 10, got %v", tail.ControlRadius)
	}
}

func TestGrowStartsAtOrigin(t *testing.T) {
	c := buildChain(t, 3, 10, 5)
	for i, j := range c.Joints() {
		if j.Position != (vmath.Vec2{}) {
			t.Errorf("Expected joint %d at origin, got %v", i, j.Position)
		}
	}
}

func TestGrowRejectsInvalidRadius(t *testing.T) {
	tests := []struct {
		name          string
		control, body float64
		want          error
	}{
		{"negative control", -1, 5, ErrNegativeRadius},
		{"negative body", 10, -0.5, ErrNegativeRadius},
		{"nan control", math.NaN(), 5, ErrInvalidRadius},
		{"inf body", 10, math.Inf(1), ErrInvalidRadius},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			err := c.Grow(tt.control, tt.body)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if c.Len() != 0 {
				t.Errorf("Expected rejected joint not to be added, got %d joints", c.Len())
			}
		})
	}

	if err := New().Grow(0, 0); err != nil {
		t.Errorf("Expected zero radii to be valid, got %v", err)
	}
}

func TestUpdateEmptyChainIsNoop(t *testing.T) {
	c := New()
	c.Update(vmath.V2(1, 1))
	if c.Len() != 0 {
		t.Errorf("Expected empty chain, got %d joints", c.Len())
	}
	if c.Head() != (vmath.Vec2{}) {
		t.Errorf("Expected origin head, got %v", c.Head())
	}
}

func TestUpdateStraightPull(t *testing.T) {
	c := buildChain(t, 3, 10, 5)
	c.Update(vmath.V2(100, 0))

	j1, j2 := joint(t, c, 1), joint(t, c, 2)
	if !near(j1.Position.X, 90) || !near(j1.Position.Y, 0) {
		t.Errorf("Expected joint 1 at (90, 0), got %v", j1.Position)
	}
	if !near(j2.Position.X, 80) {
		t.Errorf("Expected joint 2 x=80, got %v", j2.Position.X)
	}
}

func TestFollowNoPullWhenWithinLeash(t *testing.T) {
	parent := vmath.V2(0, 0)
	child := vmath.V2(3, 4)

	if got := Follow(parent, child, 5); got != child {
		t.Errorf("Expected child exactly on the leash unchanged, got %v", got)
	}
	if got := Follow(parent, child, 6); got != child {
		t.Errorf("Expected child inside the leash unchanged, got %v", got)
	}
	if got := Follow(parent, parent, 0); got != parent {
		t.Errorf("Expected coincident joints to stay put, got %v", got)
	}
}

func TestFollowPullsOntoLeash(t *testing.T) {
	got := Follow(vmath.V2(1, 1), vmath.V2(1, 21), 5)
	if !near(got.X, 1) || !near(got.Y, 6) {
		t.Errorf("Expected (1, 6), got %v", got)
	}
}

func TestUpdateDistanceBoundHoldsForAnyHeadPath(t *testing.T) {
	c := New()
	for i := 0; i < 12; i++ {
		if err := c.Grow(float64(3+i%4), 2); err != nil {
			t.Fatalf("Grow failed: %v", err)
		}
	}

	rng := vmath.NewFastRand(11)
	head := vmath.Vec2{}
	for frame := 0; frame < 500; frame++ {
		// Jumps of up to 40 units exceed every leash
		head = head.Add(vmath.V2(rng.Float64()*80-40, rng.Float64()*80-40))
		c.Update(head)

		joints := c.View()
		for i := 1; i < len(joints); i++ {
			d := joints[i-1].Position.Distance(joints[i].Position)
			if d > joints[i-1].ControlRadius+eps {
				t.Fatalf("Frame %d joint %d: expected distance <= %v, got %v",
					frame, i, joints[i-1].ControlRadius, d)
			}
		}
	}
}

func TestUpdateIsSinglePassHeadToTail(t *testing.T) {
	c := buildChain(t, 3, 10, 1)
	c.Update(vmath.V2(5, 0))

	// Everything within leash, nothing but the head moves
	for i := 1; i < 3; i++ {
		if p := joint(t, c, i).Position; p != (vmath.Vec2{}) {
			t.Errorf("Expected joint %d to stay at origin, got %v", i, p)
		}
	}
}

func TestJointsReturnsCopy(t *testing.T) {
	c := buildChain(t, 2, 10, 1)
	js := c.Joints()
	js[0].Position = vmath.V2(99, 99)

	if p := joint(t, c, 0).Position; p != (vmath.Vec2{}) {
		t.Errorf("Expected chain unchanged by copy edits, got head %v", p)
	}
	if _, ok := c.Joint(2); ok {
		t.Error("Expected out of range joint to be missing")
	}
	if _, ok := c.Joint(-1); ok {
		t.Error("Expected negative index to be missing")
	}
}
