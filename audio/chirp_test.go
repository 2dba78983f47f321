package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutput struct {
	initErr error
	inits   int
	played  []beep.Streamer
	closes  int
}

func (f *fakeOutput) Init(beep.SampleRate, int) error {
	f.inits++
	return f.initErr
}
func (f *fakeOutput) Play(s ...beep.Streamer) { f.played = append(f.played, s...) }
func (f *fakeOutput) Lock()                   {}
func (f *fakeOutput) Unlock()                 {}
func (f *fakeOutput) Close()                  { f.closes++ }

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func testConfig() Config {
	return Config{ToneHz: 440, Duration: 20 * time.Millisecond, MaxPerSecond: 4, Burst: 1}
}

// TestChirperGracefulDegradation verifies chirps are dropped before initialization
func TestChirperGracefulDegradation(t *testing.T) {
	c := NewChirper(testConfig())
	assert.False(t, c.Chirp())
	assert.Equal(t, 0, c.Pending())
	c.Cleanup()
}

func TestChirperInitializeOnce(t *testing.T) {
	out := &fakeOutput{}
	c := newChirper(testConfig(), out, time.Now)

	require.NoError(t, c.Initialize())
	require.NoError(t, c.Initialize())
	assert.Equal(t, 1, out.inits)
	assert.Len(t, out.played, 1, "mixer attached once")
}

func TestChirperInitializeError(t *testing.T) {
	boom := errors.New("no device")
	c := newChirper(testConfig(), &fakeOutput{initErr: boom}, time.Now)

	err := c.Initialize()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Chirp())
}

func TestChirperThrottles(t *testing.T) {
	clk := &clock{t: time.Unix(1000, 0)}
	out := &fakeOutput{}
	c := newChirper(testConfig(), out, clk.now)
	require.NoError(t, c.Initialize())

	assert.True(t, c.Chirp())
	assert.False(t, c.Chirp(), "burst exhausted within the same instant")
	assert.Equal(t, 1, c.Pending())

	clk.t = clk.t.Add(250 * time.Millisecond)
	assert.True(t, c.Chirp(), "one token refilled after 1/rate")
	assert.Equal(t, 2, c.Pending())

	c.Cleanup()
	c.Cleanup()
	assert.Equal(t, 1, out.closes)
	assert.Equal(t, 0, c.Pending())
	assert.False(t, c.Chirp())
}

func TestChirpGeneratorEnvelope(t *testing.T) {
	g := NewChirpGenerator(beep.SampleRate(1000), 100, 100*time.Millisecond)
	buf := make([][2]float64, 100)

	n, ok := g.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 100, n)
	assert.Zero(t, buf[0][0], "starts silent")

	peak := 0.0
	for _, s := range buf {
		assert.Equal(t, s[0], s[1], "mono")
		assert.LessOrEqual(t, s[0], 0.2)
		peak = max(peak, s[0])
	}
	assert.Greater(t, peak, 0.05)

	n, _ = g.Stream(buf[:10])
	require.Equal(t, 10, n)
	for _, s := range buf[:10] {
		assert.Zero(t, s[0], "released after its length")
	}
	assert.NoError(t, g.Err())
}
