package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/vi-worms/config"
	"github.com/lixenwraith/vi-worms/render"
	"github.com/lixenwraith/vi-worms/render/raster"
	"github.com/lixenwraith/vi-worms/swarm"
	"github.com/lixenwraith/vi-worms/vmath"
)

// petOrbitStep is the pet's angular speed per frame when no pointer exists
const petOrbitStep = 0.03

func newSnapshotCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Simulate headless and write PNG frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := initLogging(appConfig, zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())))

			sw, err := swarm.New(appConfig.SwarmSpec(clockSeed()), logger)
			if err != nil {
				return err
			}
			files, err := renderSnapshots(cmd.Context(), appConfig, sw, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", len(files), appConfig.Snapshot.Dir)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int("frames", 120, "frames to simulate")
	flags.Int("every", 10, "write one PNG per this many frames")
	flags.String("out", "frames", "output directory")
	mustBindLocal(v, "snapshot.frames", cmd, "frames")
	mustBindLocal(v, "snapshot.every", cmd, "every")
	mustBindLocal(v, "snapshot.dir", cmd, "out")
	return cmd
}

func mustBindLocal(v *viper.Viper, key string, cmd *cobra.Command, flag string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

// renderSnapshots steps the swarm for the configured frame count and saves
// every Nth frame as out_NNNNN.png; it returns the written paths
func renderSnapshots(ctx context.Context, cfg *config.Config, sw *swarm.Swarm, logger *zap.Logger) ([]string, error) {
	snap := cfg.Snapshot
	if err := os.MkdirAll(snap.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	width, height := cfg.Render.Width, cfg.Render.Height
	sink := raster.New(width, height)
	opts := cfg.RenderOptions()
	center := vmath.V2(float64(width)/2, float64(height)/2)
	orbit := math.Min(float64(width), float64(height)) / 4
	workers := runtime.GOMAXPROCS(0)

	var files []string
	for frame := 0; frame < snap.Frames; frame++ {
		sw.Follow(center.Add(vmath.UnitAt(float64(frame) * petOrbitStep).Scale(orbit)))
		if _, err := sw.StepParallel(ctx, width, height, workers); err != nil {
			return files, err
		}
		if frame%snap.Every != 0 {
			continue
		}

		sink.Clear(render.Background)
		for _, w := range sw.Worms() {
			render.DrawWorm(sink, w, opts)
		}
		sink.DrawLabel(fmt.Sprintf("frame %d  %s", frame, opts.Mode), 8, 8, render.TextColor)

		path := filepath.Join(snap.Dir, fmt.Sprintf("out_%05d.png", frame))
		if err := sink.SavePNG(path); err != nil {
			return files, err
		}
		files = append(files, path)
	}

	logger.Info("snapshots written", zap.Int("frames", snap.Frames), zap.Int("files", len(files)), zap.String("dir", snap.Dir))
	return files, nil
}
