// Package config loads worms settings from defaults, an optional TOML file and
// WORMS_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/vi-worms/audio"
	"github.com/lixenwraith/vi-worms/parameter"
	"github.com/lixenwraith/vi-worms/render"
	"github.com/lixenwraith/vi-worms/roam"
	"github.com/lixenwraith/vi-worms/swarm"
)

const (
	EnvPrefix  = "WORMS"
	FileName   = "worms"
	FileFormat = "toml"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid value")

// Config is the root of the settings tree
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Swarm    SwarmConfig    `mapstructure:"swarm"`
	Roam     RoamConfig     `mapstructure:"roam"`
	Render   RenderConfig   `mapstructure:"render"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Audio    AudioConfig    `mapstructure:"audio"`
}

// LoggerConfig drives the zap setup in observability
type LoggerConfig struct {
	Level       string      `mapstructure:"level"`
	Format      string      `mapstructure:"format"`
	AddSource   bool        `mapstructure:"add_source"`
	ServiceName string      `mapstructure:"service_name"`
	LogFile     string      `mapstructure:"log_file"`
	MaxSize     int         `mapstructure:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups"`
	MaxAge      int         `mapstructure:"max_age"`
	Compress    bool        `mapstructure:"compress"`
	Colors      ColorConfig `mapstructure:"colors"`
}

// ColorConfig maps log levels to color names for the console encoder
type ColorConfig struct {
	Debug  string `mapstructure:"debug"`
	Info   string `mapstructure:"info"`
	Warn   string `mapstructure:"warn"`
	Error  string `mapstructure:"error"`
	DPanic string `mapstructure:"dpanic"`
	Panic  string `mapstructure:"panic"`
	Fatal  string `mapstructure:"fatal"`
}

type SwarmConfig struct {
	Count              int     `mapstructure:"count"`
	MinSegments        int     `mapstructure:"min_segments"`
	MaxSegments        int     `mapstructure:"max_segments"`
	ControlRadius      float64 `mapstructure:"control_radius"`
	BodyRadiusBase     float64 `mapstructure:"body_radius_base"`
	BodyRadiusEvery    int     `mapstructure:"body_radius_every"`
	Seed               uint64  `mapstructure:"seed"` // 0 seeds from the clock
	Pet                bool    `mapstructure:"pet"`
	PetSegments        int     `mapstructure:"pet_segments"`
	PetBodyRadiusEvery int     `mapstructure:"pet_body_radius_every"`
}

type RoamConfig struct {
	Radius        float64 `mapstructure:"radius"`
	Speed         float64 `mapstructure:"speed"`
	ArriveEpsilon float64 `mapstructure:"arrive_epsilon"`
}

type RenderConfig struct {
	Mode       string  `mapstructure:"mode"`
	Joints     bool    `mapstructure:"joints"`
	CapSamples int     `mapstructure:"cap_samples"`
	FPS        int     `mapstructure:"fps"`
	Width      int     `mapstructure:"width"`
	Height     int     `mapstructure:"height"`
	CellWidth  float64 `mapstructure:"cell_width"`
	CellHeight float64 `mapstructure:"cell_height"`
}

type SnapshotConfig struct {
	Frames int    `mapstructure:"frames"`
	Every  int    `mapstructure:"every"` // Write one PNG per this many frames
	Dir    string `mapstructure:"dir"`
}

type AudioConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	ToneHz       float64       `mapstructure:"tone_hz"`
	Duration     time.Duration `mapstructure:"duration"`
	MaxPerSecond float64       `mapstructure:"max_per_second"`
	Burst        int           `mapstructure:"burst"`
}

// SetDefaults registers every key, which also makes each one reachable from the environment
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "worms")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	v.SetDefault("swarm.count", parameter.WormCount)
	v.SetDefault("swarm.min_segments", parameter.WormMinSegments)
	v.SetDefault("swarm.max_segments", parameter.WormMaxSegments)
	v.SetDefault("swarm.control_radius", parameter.WormControlRadius)
	v.SetDefault("swarm.body_radius_base", parameter.WormBodyRadiusBase)
	v.SetDefault("swarm.body_radius_every", parameter.WormBodyRadiusEvery)
	v.SetDefault("swarm.seed", 0)
	v.SetDefault("swarm.pet", parameter.PetEnabledByDefault)
	v.SetDefault("swarm.pet_segments", parameter.PetSegments)
	v.SetDefault("swarm.pet_body_radius_every", parameter.PetBodyRadiusEvery)

	v.SetDefault("roam.radius", parameter.RoamRadius)
	v.SetDefault("roam.speed", parameter.RoamSpeed)
	v.SetDefault("roam.arrive_epsilon", parameter.RoamArriveEpsilon)

	v.SetDefault("render.mode", render.ModeMesh.String())
	v.SetDefault("render.joints", false)
	v.SetDefault("render.cap_samples", parameter.CapSamples)
	v.SetDefault("render.fps", int(time.Second/parameter.FrameInterval))
	v.SetDefault("render.width", parameter.ViewportWidth)
	v.SetDefault("render.height", parameter.ViewportHeight)
	v.SetDefault("render.cell_width", parameter.TerminalCellWidth)
	v.SetDefault("render.cell_height", parameter.TerminalCellHeight)

	v.SetDefault("snapshot.frames", 120)
	v.SetDefault("snapshot.every", 10)
	v.SetDefault("snapshot.dir", "frames")

	v.SetDefault("audio.enabled", false)
	v.SetDefault("audio.tone_hz", parameter.ChirpToneHz)
	v.SetDefault("audio.duration", parameter.ChirpDuration)
	v.SetDefault("audio.max_per_second", parameter.ChirpMaxPerSecond)
	v.SetDefault("audio.burst", parameter.ChirpBurst)
}

// NewViper returns an instance with defaults and environment binding in place;
// callers may bind command-line flags onto it before Load
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path, or ./worms.toml when path is empty and the file exists,
// then decodes and validates the merged settings
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType(FileFormat)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewDefaultConfig decodes the defaults alone
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate rejects settings the simulation cannot run with
func (c *Config) Validate() error {
	s := c.Swarm
	switch {
	case s.Count < 0:
		return invalid("swarm.count must be non-negative")
	case s.MinSegments < 1 || s.MaxSegments < s.MinSegments:
		return invalid("swarm segments need 1 <= min_segments <= max_segments")
	case s.ControlRadius < 0 || s.BodyRadiusBase < 0:
		return invalid("swarm radii must be non-negative")
	case s.BodyRadiusEvery < 1 || s.PetBodyRadiusEvery < 1:
		return invalid("swarm body radius steps must be at least 1")
	case s.Pet && s.PetSegments < 1:
		return invalid("swarm.pet_segments must be positive")
	}

	r := c.Roam
	if r.Radius < 0 || r.Speed <= 0 || r.ArriveEpsilon <= 0 {
		return invalid("roam needs radius >= 0, speed > 0, arrive_epsilon > 0")
	}

	if _, err := render.ParseMode(c.Render.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch {
	case c.Render.CapSamples < 2:
		return invalid("render.cap_samples must be at least 2")
	case c.Render.FPS < 1:
		return invalid("render.fps must be positive")
	case c.Render.Width < 1 || c.Render.Height < 1:
		return invalid("render size must be positive")
	case c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0:
		return invalid("render cell size must be positive")
	}

	if c.Snapshot.Frames < 0 || c.Snapshot.Every < 1 {
		return invalid("snapshot needs frames >= 0 and every >= 1")
	}

	if c.Audio.Enabled && (c.Audio.ToneHz <= 0 || c.Audio.Duration <= 0 || c.Audio.MaxPerSecond <= 0) {
		return invalid("audio tone, duration and rate must be positive")
	}
	return nil
}

// FrameInterval is the wall time between frames
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Render.FPS)
}

// SwarmSpec assembles the population spec; seed overrides a zero Swarm.Seed
func (c *Config) SwarmSpec(seed uint64) swarm.Spec {
	if c.Swarm.Seed != 0 {
		seed = c.Swarm.Seed
	}
	return swarm.Spec{
		Count:              c.Swarm.Count,
		MinSegments:        c.Swarm.MinSegments,
		MaxSegments:        c.Swarm.MaxSegments,
		ControlRadius:      c.Swarm.ControlRadius,
		BodyRadiusBase:     c.Swarm.BodyRadiusBase,
		BodyRadiusEvery:    c.Swarm.BodyRadiusEvery,
		Pet:                c.Swarm.Pet,
		PetSegments:        c.Swarm.PetSegments,
		PetBodyRadiusEvery: c.Swarm.PetBodyRadiusEvery,
		Seed:               seed,
		Roam: roam.Profile{
			Radius:        c.Roam.Radius,
			Speed:         c.Roam.Speed,
			ArriveEpsilon: c.Roam.ArriveEpsilon,
		},
		CapSamples: c.Render.CapSamples,
		Palette:    render.Palette,
	}
}

// RenderOptions resolves the draw mode; Validate has already vetted it
func (c *Config) RenderOptions() render.Options {
	mode, err := render.ParseMode(c.Render.Mode)
	if err != nil {
		mode = render.ModeMesh
	}
	return render.Options{Mode: mode, Joints: c.Render.Joints}
}

func (c *Config) Chirp() audio.Config {
	return audio.Config{
		ToneHz:       c.Audio.ToneHz,
		Duration:     c.Audio.Duration,
		MaxPerSecond: c.Audio.MaxPerSecond,
		Burst:        c.Audio.Burst,
	}
}
