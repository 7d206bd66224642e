package compositor

import "time"

// Config holds the compositor's layer scheduling parameters.
type Config struct {
	// MaxLayers is the cap on concurrently active layers.
	MaxLayers int

	// LayerDuration is how long a layer lives before its fade-out starts.
	LayerDuration time.Duration

	// SpawnInterval is the minimum time between automatic spawns.
	SpawnInterval time.Duration

	// FadeInDuration ramps a new layer's alpha 0 to 1.
	FadeInDuration time.Duration

	// FadeOutDuration ramps a retiring layer's alpha 1 to 0.
	FadeOutDuration time.Duration
}

// DefaultConfig returns the recommended scheduling configuration.
func DefaultConfig() Config {
	return Config{
		MaxLayers:       3,
		LayerDuration:   15 * time.Second,
		SpawnInterval:   8 * time.Second,
		FadeInDuration:  2 * time.Second,
		FadeOutDuration: 3 * time.Second,
	}
}

// Clamp normalizes out-of-range values to safe ones. A live visual system
// fails open: bad settings are corrected, never rejected.
func (c Config) Clamp() Config {
	d := DefaultConfig()
	if c.MaxLayers < 1 {
		c.MaxLayers = 1
	}
	if c.LayerDuration <= 0 {
		c.LayerDuration = d.LayerDuration
	}
	if c.SpawnInterval <= 0 {
		c.SpawnInterval = d.SpawnInterval
	}
	if c.FadeInDuration <= 0 {
		c.FadeInDuration = d.FadeInDuration
	}
	if c.FadeOutDuration <= 0 {
		c.FadeOutDuration = d.FadeOutDuration
	}
	return c
}
