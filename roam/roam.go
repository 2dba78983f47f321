// Package roam plans worm head motion: pick a random waypoint near the head,
// clamp it to the viewport, then walk toward it at constant speed.
package roam

import (
	"math"

	"github.com/lixenwraith/vi-worms/parameter"
	"github.com/lixenwraith/vi-worms/vmath"
)

// Source yields uniform samples in [0, 1)
// *vmath.FastRand and *math/rand.Rand both satisfy it
type Source interface {
	Float64() float64
}

// Target is the tagged waypoint state: Valid=false is Idle, Valid=true is Seeking Point
type Target struct {
	Point vmath.Vec2
	Valid bool
}

// Profile holds the roam tuning
type Profile struct {
	Radius        float64 // Max distance of a new target from the head
	Speed         float64 // Max head travel per step
	ArriveEpsilon float64 // Distance under which the target counts as reached
}

// DefaultProfile returns the stock tuning
func DefaultProfile() Profile {
	return Profile{
		Radius:        parameter.RoamRadius,
		Speed:         parameter.RoamSpeed,
		ArriveEpsilon: parameter.RoamArriveEpsilon,
	}
}

// Controller is the per-worm motion planner
type Controller struct {
	profile Profile
	src     Source
	target  Target

	// OnRetarget, if set, observes every freshly picked target
	OnRetarget func(t vmath.Vec2)
}

// NewController creates an Idle controller drawing targets from src
func NewController(profile Profile, src Source) *Controller {
	return &Controller{profile: profile, src: src}
}

// Target returns the current waypoint state
func (c *Controller) Target() Target {
	return c.target
}

// Profile returns the tuning in use
func (c *Controller) Profile() Profile {
	return c.profile
}

// SetTarget overrides the waypoint, e.g. to steer a worm from outside
func (c *Controller) SetTarget(p vmath.Vec2) {
	c.target = Target{Point: p, Valid: true}
}

// Roam returns the next head position; the caller feeds it to chain relaxation
// The viewport is read on every call so resizes apply to the next picked target
func (c *Controller) Roam(head vmath.Vec2, width, height int) vmath.Vec2 {
	c.maybePickNewTarget(head, width, height)

	t := c.target.Point
	v := t.Sub(head)
	dist := v.Norm()
	if dist < c.profile.Speed || dist < vmath.Epsilon {
		return t
	}
	return head.Add(v.Scale(c.profile.Speed / dist))
}

// maybePickNewTarget moves Idle→Seeking, or Seeking→Seeking once the head sits on the target
func (c *Controller) maybePickNewTarget(head vmath.Vec2, width, height int) bool {
	// A zero epsilon would never register arrival after the snap
	arrive := max(c.profile.ArriveEpsilon, vmath.Epsilon)
	if c.target.Valid && c.target.Point.Distance(head) >= arrive {
		return false
	}

	r := c.src.Float64() * c.profile.Radius
	a := c.src.Float64() * 2 * math.Pi
	p := head.Add(vmath.UnitAt(a).Scale(r))
	p = p.Clamp(vmath.Vec2{}, vmath.V2(float64(max(width, 0)), float64(max(height, 0))))

	c.target = Target{Point: p, Valid: true}
	if c.OnRetarget != nil {
		c.OnRetarget(p)
	}
	return true
}
