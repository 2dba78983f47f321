// Package swarm builds and steps the population of worms shown on screen:
// a set of independent roamers plus an optional pet that follows the pointer.
package swarm

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/vi-worms/parameter"
	"github.com/lixenwraith/vi-worms/roam"
	"github.com/lixenwraith/vi-worms/vmath"
	"github.com/lixenwraith/vi-worms/worm"
)

// ErrInvalidSpec is returned for impossible population settings
var ErrInvalidSpec = errors.New("swarm: invalid spec")

// Spec describes the population
type Spec struct {
	Count                    int
	MinSegments, MaxSegments int
	ControlRadius            float64
	BodyRadiusBase           float64
	BodyRadiusEvery          int // Body radius grows by one every N joints

	Pet                bool
	PetSegments        int
	PetBodyRadiusEvery int

	Seed       uint64
	Roam       roam.Profile
	CapSamples int
	Palette    []color.RGBA
}

// DefaultSpec mirrors the classic thirty worm tank
func DefaultSpec() Spec {
	return Spec{
		Count:              parameter.WormCount,
		MinSegments:        parameter.WormMinSegments,
		MaxSegments:        parameter.WormMaxSegments,
		ControlRadius:      parameter.WormControlRadius,
		BodyRadiusBase:     parameter.WormBodyRadiusBase,
		BodyRadiusEvery:    parameter.WormBodyRadiusEvery,
		Pet:                parameter.PetEnabledByDefault,
		PetSegments:        parameter.PetSegments,
		PetBodyRadiusEvery: parameter.PetBodyRadiusEvery,
		Seed:               1,
		Roam:               roam.DefaultProfile(),
		CapSamples:         parameter.CapSamples,
	}
}

func (s Spec) validate() error {
	switch {
	case s.Count < 0:
		return fmt.Errorf("%w: count %d", ErrInvalidSpec, s.Count)
	case s.MinSegments < 1 || s.MaxSegments < s.MinSegments:
		return fmt.Errorf("%w: segments [%d, %d]", ErrInvalidSpec, s.MinSegments, s.MaxSegments)
	case s.BodyRadiusEvery < 1 || (s.Pet && s.PetBodyRadiusEvery < 1):
		return fmt.Errorf("%w: body radius step must be at least 1 joint", ErrInvalidSpec)
	case s.Pet && s.PetSegments < 1:
		return fmt.Errorf("%w: pet segments %d", ErrInvalidSpec, s.PetSegments)
	}
	return nil
}

// Swarm owns every worm; worms never share chains or roam state
type Swarm struct {
	roamers []*worm.Worm
	pet     *worm.Worm
	logger  *zap.Logger
}

// New grows the population from spec
// Each worm draws from its own random stream split off the seed, so results
// do not depend on stepping order
func New(spec Spec, logger *zap.Logger) (*Swarm, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	master := vmath.NewFastRand(spec.Seed)
	s := &Swarm{logger: logger}

	for i := 0; i < spec.Count; i++ {
		rng := master.Split()
		n := spec.MinSegments + rng.Intn(spec.MaxSegments-spec.MinSegments+1)
		w := worm.New(
			worm.WithColor(pick(spec.Palette, rng)),
			worm.WithRoam(spec.Roam, rng),
			worm.WithCapSamples(spec.CapSamples),
			worm.WithLogger(logger),
		)
		if err := grow(w, n, spec.ControlRadius, spec.BodyRadiusBase, spec.BodyRadiusEvery); err != nil {
			return nil, fmt.Errorf("worm %d: %w", i, err)
		}
		s.roamers = append(s.roamers, w)
	}

	if spec.Pet {
		s.pet = worm.New(
			worm.WithRoam(spec.Roam, master.Split()),
			worm.WithCapSamples(spec.CapSamples),
			worm.WithLogger(logger.Named("pet")),
		)
		if err := grow(s.pet, spec.PetSegments, spec.ControlRadius, spec.BodyRadiusBase, spec.PetBodyRadiusEvery); err != nil {
			return nil, fmt.Errorf("pet: %w", err)
		}
	}

	logger.Info("swarm created",
		zap.Int("roamers", len(s.roamers)),
		zap.Bool("pet", s.pet != nil),
		zap.Uint64("seed", spec.Seed))
	return s, nil
}

func grow(w *worm.Worm, n int, control, base float64, every int) error {
	for i := 0; i < n; i++ {
		if err := w.Grow(control, base+float64(i/every)); err != nil {
			return err
		}
	}
	return nil
}

func pick(palette []color.RGBA, rng *vmath.FastRand) color.RGBA {
	if len(palette) == 0 {
		return color.RGBA{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
			A: 255,
		}
	}
	return palette[rng.Intn(len(palette))]
}

// Roamers returns the autonomous worms
func (s *Swarm) Roamers() []*worm.Worm { return s.roamers }

// Pet returns the pointer-following worm, nil when disabled
func (s *Swarm) Pet() *worm.Worm { return s.pet }

// Worms returns every worm in draw order: roamers, then the pet on top
func (s *Swarm) Worms() []*worm.Worm {
	out := make([]*worm.Worm, 0, len(s.roamers)+1)
	out = append(out, s.roamers...)
	if s.pet != nil {
		out = append(out, s.pet)
	}
	return out
}

// Step advances every roamer one frame inside the viewport and returns the retarget count
func (s *Swarm) Step(width, height int) int {
	retargets := 0
	for _, w := range s.roamers {
		before := w.Retargets()
		w.Step(width, height)
		retargets += w.Retargets() - before
	}
	return retargets
}

// StepParallel is Step fanned out over at most workers goroutines
// Worms are independent so the outcome matches Step
func (s *Swarm) StepParallel(ctx context.Context, width, height, workers int) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	deltas := make([]int, len(s.roamers))
	for i, w := range s.roamers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			before := w.Retargets()
			w.Step(width, height)
			deltas[i] = w.Retargets() - before
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	retargets := 0
	for _, d := range deltas {
		retargets += d
	}
	return retargets, nil
}

// Follow drags the pet head straight to p, skipping roaming
func (s *Swarm) Follow(p vmath.Vec2) {
	if s.pet == nil {
		return
	}
	s.pet.Update(p)
}
