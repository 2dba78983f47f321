package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/vi-worms/config"
	"github.com/lixenwraith/vi-worms/observability"
)

var (
	cfgFile   string
	appConfig *config.Config
)

func newRootCmd() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:           "worms",
		Short:         "Procedural worms that roam the screen",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			appConfig = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default ./worms.toml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-file", "", "write JSON logs to this file, rotated")
	flags.Uint64("seed", 0, "random seed, 0 picks one from the clock")
	flags.String("mode", "mesh", "draw mode: outline, mesh or debug")
	mustBind(v, "logger.level", root, "log-level")
	mustBind(v, "logger.log_file", root, "log-file")
	mustBind(v, "swarm.seed", root, "seed")
	mustBind(v, "render.mode", root, "mode")

	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	root.AddCommand(newRunCmd(), newGUICmd(), newSnapshotCmd(v), newVersionCmd())
	return root
}

func mustBind(v *viper.Viper, key string, cmd *cobra.Command, flag string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

// Execute runs the command tree and exits non-zero on failure
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		observability.GetLogger().Error("command failed", zap.Error(err))
		observability.Sync()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initLogging installs the global logger with console output on w
func initLogging(cfg *config.Config, w zapcore.WriteSyncer) *zap.Logger {
	observability.Initialize(cfg.Logger, w)
	logger := observability.GetLogger()
	logger.Info("starting worms", zap.String("version", Version))
	return logger
}

func clockSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
