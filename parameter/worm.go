package parameter

import "time"

// Roaming
const (
	RoamRadius        = 200.0 // Max distance of a fresh target from the head
	RoamSpeed         = 1.5   // Max head travel per frame
	RoamArriveEpsilon = 1e-6  // Head closer than this to the target counts as arrived
)

// Chain growth defaults for roaming worms
const (
	WormControlRadius   = 10.0
	WormBodyRadiusBase  = 5.0
	WormBodyRadiusEvery = 3 // Body radius grows by one unit every N joints, thickest at the head
	WormMinSegments     = 4
	WormMaxSegments     = 23
	WormCount           = 30
	PetSegments         = 10
	PetBodyRadiusEvery  = 2
	PetEnabledByDefault = true
)

// Geometry
const (
	CapSamples = 6 // Points per semicircular cap, N-1 fan triangles in mesh mode
)

// Frame pacing and viewport
const (
	FrameInterval  = 16 * time.Millisecond
	ViewportWidth  = 800
	ViewportHeight = 450

	// Terminal cells are roughly twice as tall as wide
	TerminalCellWidth  = 4.0
	TerminalCellHeight = 8.0
)

// Audio cue for retargeting
const (
	ChirpToneHz        = 880.0
	ChirpDuration      = 40 * time.Millisecond
	ChirpMaxPerSecond  = 4.0
	ChirpBurst         = 1
	AudioSampleRateHz  = 48000
	AudioBufferLatency = 100 * time.Millisecond
)
