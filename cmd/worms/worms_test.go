package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-worms/config"
	"github.com/lixenwraith/vi-worms/observability"
	"github.com/lixenwraith/vi-worms/swarm"
)

func smallConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Swarm.Count = 3
	cfg.Render.Width, cfg.Render.Height = 120, 80
	cfg.Snapshot = config.SnapshotConfig{Frames: 5, Every: 2, Dir: t.TempDir()}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRenderSnapshots(t *testing.T) {
	cfg := smallConfig(t)
	sw, err := swarm.New(cfg.SwarmSpec(7), zap.NewNop())
	require.NoError(t, err)

	files, err := renderSnapshots(context.Background(), cfg, sw, zap.NewNop())
	require.NoError(t, err)

	dir := cfg.Snapshot.Dir
	assert.Equal(t, []string{
		filepath.Join(dir, "out_00000.png"),
		filepath.Join(dir, "out_00002.png"),
		filepath.Join(dir, "out_00004.png"),
	}, files)
	for _, f := range files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestRenderSnapshotsCanceled(t *testing.T) {
	cfg := smallConfig(t)
	sw, err := swarm.New(cfg.SwarmSpec(7), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files, err := renderSnapshots(ctx, cfg, sw, zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, files)
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeRoot(t, "version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestSnapshotCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	t.Setenv("WORMS_SWARM_COUNT", "2")
	t.Setenv("WORMS_RENDER_WIDTH", "64")
	t.Setenv("WORMS_RENDER_HEIGHT", "48")

	out, err := executeRoot(t, "snapshot", "--frames", "3", "--every", "1", "--out", dir, "--seed", "5", "--mode", "outline")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 3 frames")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, uint64(5), appConfig.Swarm.Seed)
	assert.Equal(t, "outline", appConfig.Render.Mode)
}

func TestRootRejectsInvalidConfig(t *testing.T) {
	_, err := executeRoot(t, "version", "--mode", "wireframe")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = executeRoot(t, "--config", "missing.toml", "version")
	assert.Error(t, err)
}
