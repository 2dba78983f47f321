package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/vi-worms/audio"
	"github.com/lixenwraith/vi-worms/config"
	"github.com/lixenwraith/vi-worms/render"
	"github.com/lixenwraith/vi-worms/render/window"
	"github.com/lixenwraith/vi-worms/swarm"
	"github.com/lixenwraith/vi-worms/vmath"
)

func newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Animate worms in a resizable window",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := initLogging(appConfig, zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())))
			return runWindow(appConfig, logger)
		},
	}
}

type windowGame struct {
	swarm         *swarm.Swarm
	sink          *window.Sink
	chirper       *audio.Chirper
	opts          render.Options
	width, height int
	logger        *zap.Logger
}

func runWindow(cfg *config.Config, logger *zap.Logger) error {
	sw, err := swarm.New(cfg.SwarmSpec(clockSeed()), logger)
	if err != nil {
		return err
	}

	g := &windowGame{
		swarm:   sw,
		sink:    window.NewSink(),
		chirper: startChirper(cfg, logger),
		opts:    cfg.RenderOptions(),
		width:   cfg.Render.Width,
		height:  cfg.Render.Height,
		logger:  logger,
	}
	if g.chirper != nil {
		defer g.chirper.Cleanup()
	}

	ebiten.SetWindowSize(cfg.Render.Width, cfg.Render.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Render.FPS)
	g.updateTitle()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

func (g *windowGame) updateTitle() {
	ebiten.SetWindowTitle(fmt.Sprintf("worms [%s] m: mode  j: joints  q: quit", g.opts.Mode))
}

func (g *windowGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.opts.Mode = g.opts.Mode.Next()
		g.updateTitle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		g.opts.Joints = !g.opts.Joints
	}

	x, y := ebiten.CursorPosition()
	g.advance(vmath.V2(float64(x), float64(y)))
	return nil
}

// advance runs one frame with the pet on the cursor and roamers bound to the last layout
func (g *windowGame) advance(cursor vmath.Vec2) {
	g.swarm.Follow(cursor)
	if n := g.swarm.Step(g.width, g.height); n > 0 && g.chirper != nil {
		g.chirper.Chirp()
	}
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)
	g.sink.Begin(screen)
	for _, w := range g.swarm.Worms() {
		render.DrawWorm(g.sink, w, g.opts)
	}
	g.sink.Flush()
}

// Layout keeps one world unit per pixel, so a resize changes the roam bounds
func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.logger.Debug("window resized", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
	}
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
