package audio

import "time"

// BandCount is the number of output spectrum bands. Consumers rely on this
// being fixed for the lifetime of an engine.
const BandCount = 32

// Sub-band index ranges over the output spectrum.
const (
	bassEnd   = 8  // bands [0, 8)
	midEnd    = 20 // bands [8, 20)
	trebleEnd = BandCount
)

// Config holds all tunable parameters for audio analysis.
type Config struct {
	// Smoothing is the previous-value weight for exponential smoothing of
	// every exported feature (0-1, higher = slower response).
	Smoothing float64

	// BeatThreshold is the ratio of instant energy to rolling average
	// energy above which a beat fires.
	BeatThreshold float64

	// MinBeatInterval is the wall-clock refractory period between beats.
	MinBeatInterval time.Duration

	// HistorySize is the number of instant-energy samples in the rolling
	// average window (43 ≈ 0.7s at 60 ticks/s).
	HistorySize int

	// BPM is the nominal tempo hint carried on every FeatureVector.
	// It is a configured constant, not derived from beat spacing.
	BPM float64

	// SampleRate is the capture sample rate in Hz.
	SampleRate float64

	// FFTSize is the transform size; the raw magnitude array has
	// FFTSize/2 bins.
	FFTSize int
}

// DefaultConfig returns the recommended analysis configuration.
func DefaultConfig() Config {
	return Config{
		Smoothing:       0.7,
		BeatThreshold:   1.3,
		MinBeatInterval: 200 * time.Millisecond,
		HistorySize:     43,
		BPM:             120,
		SampleRate:      44100,
		FFTSize:         2048,
	}
}

// Clamp normalizes out-of-range values to safe ones. Invalid settings are
// corrected rather than rejected so the engine always runs.
func (c Config) Clamp() Config {
	if c.Smoothing < 0 || c.Smoothing >= 1 {
		c.Smoothing = DefaultConfig().Smoothing
	}
	if c.BeatThreshold <= 0 {
		c.BeatThreshold = DefaultConfig().BeatThreshold
	}
	if c.MinBeatInterval <= 0 {
		c.MinBeatInterval = DefaultConfig().MinBeatInterval
	}
	if c.HistorySize < 1 {
		c.HistorySize = DefaultConfig().HistorySize
	}
	if c.BPM <= 0 {
		c.BPM = DefaultConfig().BPM
	}
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultConfig().SampleRate
	}
	if c.FFTSize < 64 {
		c.FFTSize = DefaultConfig().FFTSize
	}
	return c
}
