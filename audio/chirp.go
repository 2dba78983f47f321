// Package audio plays a short chirp whenever a worm picks a new roam target.
// Playback is optional: every call is a no-op until Initialize succeeds.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/vi-worms/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRateHz)

// Config controls the retarget chirp
type Config struct {
	ToneHz       float64
	Duration     time.Duration
	MaxPerSecond float64
	Burst        int
}

// DefaultConfig returns the parameter defaults
func DefaultConfig() Config {
	return Config{
		ToneHz:       parameter.ChirpToneHz,
		Duration:     parameter.ChirpDuration,
		MaxPerSecond: parameter.ChirpMaxPerSecond,
		Burst:        parameter.ChirpBurst,
	}
}

// output is the audio device; speaker in production
type output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Close()
}

type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}
func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }
func (speakerOutput) Close()                  { speaker.Close() }

// Chirper mixes throttled chirps into a single speaker stream
type Chirper struct {
	mu          sync.Mutex
	cfg         Config
	out         output
	mixer       *beep.Mixer
	limiter     *rate.Limiter
	now         func() time.Time
	initialized bool
}

// NewChirper creates a chirper, not yet attached to the speaker
func NewChirper(cfg Config) *Chirper {
	return newChirper(cfg, speakerOutput{}, time.Now)
}

func newChirper(cfg Config, out output, now func() time.Time) *Chirper {
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	return &Chirper{
		cfg:     cfg,
		out:     out,
		mixer:   &beep.Mixer{},
		limiter: rate.NewLimiter(rate.Limit(cfg.MaxPerSecond), cfg.Burst),
		now:     now,
	}
}

// Initialize opens the speaker and starts the mixer
func (c *Chirper) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := c.out.Init(sampleRate, sampleRate.N(parameter.AudioBufferLatency)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	c.out.Play(c.mixer)
	c.initialized = true
	return nil
}

// Chirp queues one chirp unless the limiter is exhausted, reports whether it played
func (c *Chirper) Chirp() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.cfg.Duration <= 0 {
		return false
	}
	if !c.limiter.AllowN(c.now(), 1) {
		return false
	}

	streamer := beep.Take(sampleRate.N(c.cfg.Duration), NewChirpGenerator(sampleRate, c.cfg.ToneHz, c.cfg.Duration))
	c.out.Lock()
	c.mixer.Add(streamer)
	c.out.Unlock()
	return true
}

// Pending counts chirps still in the mixer
func (c *Chirper) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.out.Lock()
	defer c.out.Unlock()
	return c.mixer.Len()
}

// Cleanup drops queued chirps and closes the speaker
func (c *Chirper) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	c.out.Lock()
	c.mixer.Clear()
	c.out.Unlock()
	c.out.Close()
	c.initialized = false
}

// ChirpGenerator is a sine tone with a short attack and linear release
type ChirpGenerator struct {
	sr     beep.SampleRate
	freq   float64
	pos    int
	length int
}

// NewChirpGenerator creates a chirp of the given tone and length
func NewChirpGenerator(sr beep.SampleRate, freq float64, d time.Duration) *ChirpGenerator {
	return &ChirpGenerator{
		sr:     sr,
		freq:   freq,
		length: max(sr.N(d), 1),
	}
}

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		attack := math.Min(t/0.005, 1.0)
		release := math.Max(1-float64(g.pos)/float64(g.length), 0)
		sample := 0.2 * attack * release * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}
