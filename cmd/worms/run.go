package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/vi-worms/audio"
	"github.com/lixenwraith/vi-worms/config"
	"github.com/lixenwraith/vi-worms/render"
	"github.com/lixenwraith/vi-worms/render/terminal"
	"github.com/lixenwraith/vi-worms/swarm"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Animate worms in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The screen owns stdout, logs go to the file core only
			logger := initLogging(appConfig, zapcore.AddSync(io.Discard))
			return runTerminal(cmd.Context(), appConfig, logger)
		},
	}
}

// startChirper returns nil when audio is disabled or unavailable
func startChirper(cfg *config.Config, logger *zap.Logger) *audio.Chirper {
	if !cfg.Audio.Enabled {
		return nil
	}
	c := audio.NewChirper(cfg.Chirp())
	if err := c.Initialize(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
		return nil
	}
	return c
}

type terminalApp struct {
	screen  tcell.Screen
	canvas  *terminal.Canvas
	sink    *terminal.Sink
	swarm   *swarm.Swarm
	chirper *audio.Chirper
	opts    render.Options
	logger  *zap.Logger
	frame   int
}

func runTerminal(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	fini := sync.OnceFunc(screen.Fini)
	defer fini()

	// Crash recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			fini()
			logger.Error("worms crashed", zap.Any("panic", r))
			fmt.Fprintf(os.Stderr, "\n\x1b[31mWORMS CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	background := terminal.Color(render.Background)
	cols, rows := screen.Size()
	canvas := terminal.NewCanvas(cols, rows, tcell.StyleDefault.Background(background))
	sink := terminal.NewSink(canvas, cfg.Render.CellWidth, cfg.Render.CellHeight, render.Background)

	sw, err := swarm.New(cfg.SwarmSpec(clockSeed()), logger)
	if err != nil {
		return err
	}

	app := &terminalApp{
		screen:  screen,
		canvas:  canvas,
		sink:    sink,
		swarm:   sw,
		chirper: startChirper(cfg, logger),
		opts:    cfg.RenderOptions(),
		logger:  logger,
	}
	if app.chirper != nil {
		defer app.chirper.Cleanup()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	events := make(chan tcell.Event, 100)
	g.Go(func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil // screen finalized
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer cancel()
		defer fini()
		return app.loop(ctx, events, cfg.FrameInterval())
	})

	err = g.Wait()
	logger.Info("terminal session ended", zap.Int("frames", app.frame))
	return err
}

func (a *terminalApp) loop(ctx context.Context, events <-chan tcell.Event, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.step()
			a.draw()
		}
	}
}

// handleEvent returns false on quit
func (a *terminalApp) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'm':
				a.opts.Mode = a.opts.Mode.Next()
				a.logger.Debug("draw mode changed", zap.Stringer("mode", a.opts.Mode))
			case 'j':
				a.opts.Joints = !a.opts.Joints
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.swarm.Follow(a.sink.ToWorld(x, y))
	case *tcell.EventResize:
		a.screen.Sync()
		cols, rows := a.screen.Size()
		a.canvas.Resize(cols, rows)
		a.logger.Debug("terminal resized", zap.Int("cols", cols), zap.Int("rows", rows))
	}
	return true
}

func (a *terminalApp) step() {
	w, h := a.sink.Size()
	if n := a.swarm.Step(w, h); n > 0 && a.chirper != nil {
		a.chirper.Chirp()
	}
	a.frame++
}

func (a *terminalApp) draw() {
	a.canvas.Clear()
	for _, w := range a.swarm.Worms() {
		render.DrawWorm(a.sink, w, a.opts)
	}

	status := fmt.Sprintf(" %s | m: mode  j: joints  q: quit ", a.opts.Mode)
	style := tcell.StyleDefault.Foreground(terminal.Color(render.TextColor)).Background(terminal.Color(render.Background))
	a.canvas.DrawText(0, a.canvas.Height()-1, status, style)

	a.canvas.Flush(a.screen)
	a.screen.Show()
}
