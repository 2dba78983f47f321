package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-worms/render"
	"github.com/lixenwraith/vi-worms/render/terminal"
	"github.com/lixenwraith/vi-worms/swarm"
)

func newTestApp(t *testing.T) *terminalApp {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 20)

	cfg := smallConfig(t)
	sw, err := swarm.New(cfg.SwarmSpec(3), zap.NewNop())
	require.NoError(t, err)

	canvas := terminal.NewCanvas(40, 20, tcell.StyleDefault)
	return &terminalApp{
		screen: screen,
		canvas: canvas,
		sink:   terminal.NewSink(canvas, 4, 8, render.Background),
		swarm:  sw,
		opts:   render.Options{Mode: render.ModeMesh},
		logger: zap.NewNop(),
	}
}

func TestTerminalAppKeys(t *testing.T) {
	app := newTestApp(t)

	assert.True(t, app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone)))
	assert.Equal(t, render.ModeDebug, app.opts.Mode)

	assert.True(t, app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone)))
	assert.True(t, app.opts.Joints)

	assert.False(t, app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, app.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, app.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)))
}

func TestTerminalAppMouseDrivesPet(t *testing.T) {
	app := newTestApp(t)

	assert.True(t, app.handleEvent(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone)))
	assert.Equal(t, app.sink.ToWorld(10, 5), app.swarm.Pet().Head())
}

func TestTerminalAppResizeAndFrame(t *testing.T) {
	app := newTestApp(t)

	app.screen.(tcell.SimulationScreen).SetSize(60, 30)
	assert.True(t, app.handleEvent(tcell.NewEventResize(60, 30)))
	assert.Equal(t, 60, app.canvas.Width())
	assert.Equal(t, 30, app.canvas.Height())

	app.step()
	app.draw()
	assert.Equal(t, 1, app.frame)

	cell, ok := app.canvas.GetCell(1, 29)
	require.True(t, ok)
	assert.Equal(t, 'm', cell.Rune, "status line starts with the mode name")
}
