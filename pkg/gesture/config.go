package gesture

import "time"

// Frame dimensions for motion analysis. Frames are downsampled to this
// fixed resolution before differencing.
const (
	FrameWidth  = 80
	FrameHeight = 60
)

// Config holds all tunable parameters for motion and gesture detection.
type Config struct {
	// Sensitivity controls the per-pixel motion threshold: a pixel counts
	// as moving when its absolute difference exceeds (1-Sensitivity)*100.
	Sensitivity float64

	// ClickThreshold is the smoothed-intensity level a spike must reach
	// to count as a click.
	ClickThreshold float64

	// Smoothing is the previous-value weight for intensity smoothing.
	Smoothing float64

	// StillnessThreshold is the intensity below which the user counts as
	// holding still.
	StillnessThreshold float64

	// SlowMotionThreshold is the upper bound of the slow band that starts
	// and sustains a drag.
	SlowMotionThreshold float64

	// QuickMotionThreshold is the intensity at which any drag state
	// cancels back to none.
	QuickMotionThreshold float64

	// StillnessDuration is how long stillness must be held to arm (or,
	// while dragging, to release).
	StillnessDuration time.Duration

	// ClickCooldown is the refractory period after a click fires.
	ClickCooldown time.Duration

	// FrameSkip processes only every Nth tick for performance; skipped
	// ticks preserve the previous output.
	FrameSkip int
}

// DefaultConfig returns the recommended gesture configuration.
func DefaultConfig() Config {
	return Config{
		Sensitivity:          0.8,
		ClickThreshold:       0.4,
		Smoothing:            0.3,
		StillnessThreshold:   0.08,
		SlowMotionThreshold:  0.25,
		QuickMotionThreshold: 0.6,
		StillnessDuration:    500 * time.Millisecond,
		ClickCooldown:        500 * time.Millisecond,
		FrameSkip:            2,
	}
}

// Clamp normalizes out-of-range values to safe ones.
func (c Config) Clamp() Config {
	d := DefaultConfig()
	if c.Sensitivity < 0 || c.Sensitivity > 1 {
		c.Sensitivity = d.Sensitivity
	}
	if c.ClickThreshold <= 0 {
		c.ClickThreshold = d.ClickThreshold
	}
	if c.Smoothing < 0 || c.Smoothing >= 1 {
		c.Smoothing = d.Smoothing
	}
	if c.StillnessThreshold <= 0 {
		c.StillnessThreshold = d.StillnessThreshold
	}
	if c.SlowMotionThreshold <= c.StillnessThreshold {
		c.SlowMotionThreshold = d.SlowMotionThreshold
	}
	if c.QuickMotionThreshold <= c.SlowMotionThreshold {
		c.QuickMotionThreshold = d.QuickMotionThreshold
	}
	if c.StillnessDuration <= 0 {
		c.StillnessDuration = d.StillnessDuration
	}
	if c.ClickCooldown <= 0 {
		c.ClickCooldown = d.ClickCooldown
	}
	if c.FrameSkip < 1 {
		c.FrameSkip = 1
	}
	return c
}
