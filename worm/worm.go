// Package worm aggregates one animated creature: its skeleton, its motion
// planner and its color. Each frame the caller runs Roam, feeds the result to
// Update and then queries geometry for drawing.
package worm

import (
	"image/color"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-worms/chain"
	"github.com/lixenwraith/vi-worms/mesh"
	"github.com/lixenwraith/vi-worms/roam"
	"github.com/lixenwraith/vi-worms/vmath"
)

// DefaultColor is used when no color option is given
var DefaultColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// DebugJoint is the circle drawn per joint in debug mode
type DebugJoint struct {
	Position   vmath.Vec2
	BodyRadius float64
}

// Worm is one independently animated creature
// Not safe for concurrent use; distinct worms may be stepped in parallel
type Worm struct {
	id     uuid.UUID
	color  color.RGBA
	chain  *chain.Chain
	roamer *roam.Controller
	gen    mesh.Generator
	logger *zap.Logger

	retargets int
}

// Option configures a Worm at construction
type Option func(*Worm)

// WithColor sets the body color
func WithColor(c color.RGBA) Option {
	return func(w *Worm) { w.color = c }
}

// WithRoam sets the roam tuning and random source
func WithRoam(p roam.Profile, src roam.Source) Option {
	return func(w *Worm) { w.roamer = roam.NewController(p, src) }
}

// WithCapSamples sets the cap resolution of generated geometry
func WithCapSamples(n int) Option {
	return func(w *Worm) { w.gen.CapSamples = n }
}

// WithLogger attaches a logger, scoped with the worm ID
func WithLogger(l *zap.Logger) Option {
	return func(w *Worm) { w.logger = l }
}

// New creates a worm with an empty chain and an Idle roam controller
func New(opts ...Option) *Worm {
	w := &Worm{
		id:     uuid.New(),
		color:  DefaultColor,
		chain:  chain.New(),
		gen:    mesh.NewGenerator(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.roamer == nil {
		w.roamer = roam.NewController(roam.DefaultProfile(), vmath.NewFastRand(1))
	}
	w.logger = w.logger.With(zap.String("worm_id", w.id.String()))
	w.roamer.OnRetarget = w.onRetarget
	return w
}

func (w *Worm) ID() string          { return w.id.String() }
func (w *Worm) Color() color.RGBA   { return w.color }
func (w *Worm) Len() int            { return w.chain.Len() }
func (w *Worm) Head() vmath.Vec2    { return w.chain.Head() }
func (w *Worm) Target() roam.Target { return w.roamer.Target() }

// Retargets returns how many waypoints this worm has picked so far
func (w *Worm) Retargets() int { return w.retargets }

// Joints returns a copy of the skeleton, head first
func (w *Worm) Joints() []chain.Joint { return w.chain.Joints() }

// Grow adds a new head joint; invalid radii are rejected and leave the worm unchanged
func (w *Worm) Grow(controlRadius, bodyRadius float64) error {
	if err := w.chain.Grow(controlRadius, bodyRadius); err != nil {
		return err
	}
	w.logger.Debug("worm grew",
		zap.Int("joints", w.chain.Len()),
		zap.Float64("control_radius", controlRadius),
		zap.Float64("body_radius", bodyRadius))
	return nil
}

// Roam computes the next head position inside the given viewport without touching the chain
func (w *Worm) Roam(width, height int) vmath.Vec2 {
	return w.roamer.Roam(w.chain.Head(), width, height)
}

// Update relaxes the chain toward a new head position
func (w *Worm) Update(head vmath.Vec2) {
	w.chain.Update(head)
}

// Step runs one roam then relax frame
func (w *Worm) Step(width, height int) {
	w.Update(w.Roam(width, height))
}

// SetTarget steers the roam controller to p
func (w *Worm) SetTarget(p vmath.Vec2) {
	w.roamer.SetTarget(p)
}

// GenerateOutline returns the closed silhouette polygon of the current chain
func (w *Worm) GenerateOutline() []vmath.Vec2 {
	return w.gen.Outline(w.chain.View())
}

// GenerateMesh returns the body triangles of the current chain, head first
func (w *Worm) GenerateMesh() []mesh.Triangle {
	return w.gen.Mesh(w.chain.View())
}

// DebugJoints returns one circle per joint
func (w *Worm) DebugJoints() []DebugJoint {
	js := w.chain.View()
	out := make([]DebugJoint, len(js))
	for i, j := range js {
		out[i] = DebugJoint{Position: j.Position, BodyRadius: j.BodyRadius}
	}
	return out
}

func (w *Worm) onRetarget(t vmath.Vec2) {
	w.retargets++
	if ce := w.logger.Check(zap.DebugLevel, "worm retargeted"); ce != nil {
		ce.Write(zap.Float64("x", t.X), zap.Float64("y", t.Y), zap.Int("count", w.retargets))
	}
}
