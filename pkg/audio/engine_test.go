package audio

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

// tickClock returns a clock that advances one tick (16ms) per call.
func tickClock() func() time.Time {
	now := time.Unix(1000, 0)
	return func() time.Time {
		now = now.Add(16 * time.Millisecond)
		return now
	}
}

func newTestEngine(src SpectrumSource) *Engine {
	e := NewEngine(DefaultConfig(), src, rand.New(rand.NewSource(1)))
	e.now = tickClock()
	return e
}

// uniformMags returns a magnitude frame of the raw length for the default
// FFT size, all bins at v.
func uniformMags(v float64) []float64 {
	mags := make([]float64, DefaultConfig().FFTSize/2)
	for i := range mags {
		mags[i] = v
	}
	return mags
}

func TestEngine_SpectrumBoundsUnderSyntheticFallback(t *testing.T) {
	e := newTestEngine(nil)

	for i := 0; i < 300; i++ {
		fv := e.Update()
		for b, v := range fv.Spectrum {
			if v < 0 || v > 1 {
				t.Fatalf("Tick %d band %d out of range: %v", i, b, v)
			}
		}
		for name, v := range map[string]float64{
			"rms": fv.RMS, "bass": fv.Bass, "mid": fv.Mid,
			"treble": fv.Treble, "centroid": fv.Centroid,
		} {
			if v < 0 || v > 1 {
				t.Fatalf("Tick %d %s out of range: %v", i, name, v)
			}
		}
		if !floatEquals(fv.BPM, 120) {
			t.Fatalf("BPM: got %v, want 120", fv.BPM)
		}
	}
}

func TestEngine_SquaredBandWarp(t *testing.T) {
	// With a 1024-bin raw array, band i reads index floor((i/32)^2 * 1024)
	// which is exactly i*i.
	mags := make([]float64, 1024)
	for i := 0; i < BandCount; i++ {
		mags[i*i] = float64(i) / float64(BandCount)
	}

	src := NewStaticSource(mags)
	e := newTestEngine(src)
	e.Enable(context.Background())
	if !e.Ready() {
		t.Fatal("Engine not ready with static source")
	}

	// First update primes the smoothers, so bands pass through unchanged.
	fv := e.Update()
	for i := 0; i < BandCount; i++ {
		want := float64(i) / float64(BandCount)
		if !floatEquals(fv.Spectrum[i], want) {
			t.Errorf("Band %d: got %v, want %v (squared warp broken)", i, fv.Spectrum[i], want)
		}
	}
}

func TestEngine_SilenceIsStable(t *testing.T) {
	src := NewStaticSource(uniformMags(0))
	e := newTestEngine(src)
	e.Enable(context.Background())

	for i := 0; i < 100; i++ {
		fv := e.Update()
		if !floatEquals(fv.RMS, 0) {
			t.Fatalf("Tick %d: silence rms = %v, want 0", i, fv.RMS)
		}
		if !floatEquals(fv.Centroid, 0) {
			t.Fatalf("Tick %d: silence centroid = %v, want 0", i, fv.Centroid)
		}
		if fv.Beat {
			t.Fatalf("Tick %d: silence produced a beat", i)
		}
	}
}

func TestEngine_BeatOnIsolatedSpike(t *testing.T) {
	src := NewStaticSource(uniformMags(0.2))
	e := newTestEngine(src)
	e.Enable(context.Background())

	// Warm the rolling average past the partial-buffer phase.
	for i := 0; i < 50; i++ {
		if fv := e.Update(); fv.Beat {
			t.Fatalf("Steady signal fired a beat at tick %d", i)
		}
	}

	src.Set(uniformMags(0.9))
	if fv := e.Update(); !fv.Beat {
		t.Fatal("Energy spike did not fire a beat")
	}

	// The spike persists but the refractory window suppresses re-fires;
	// ticks advance 16ms each, so the next ~12 ticks stay quiet.
	for i := 0; i < 10; i++ {
		if fv := e.Update(); fv.Beat {
			t.Fatalf("Beat re-fired %d ticks after the first (inside 200ms)", i+1)
		}
	}
}

func TestEngine_BeatIsSingleTickPulse(t *testing.T) {
	src := NewStaticSource(uniformMags(0.2))
	e := newTestEngine(src)
	e.Enable(context.Background())

	for i := 0; i < 50; i++ {
		e.Update()
	}

	src.Set(uniformMags(0.9))
	first := e.Update()
	src.Set(uniformMags(0.2))
	second := e.Update()

	if !first.Beat {
		t.Fatal("Spike tick did not report a beat")
	}
	if second.Beat {
		t.Fatal("Beat stayed sticky past the spike tick")
	}
}

type failingSource struct{}

func (f *failingSource) Start(ctx context.Context) error { return errors.New("no device") }
func (f *failingSource) Magnitudes() []float64           { return nil }
func (f *failingSource) Name() string                    { return "failing" }
func (f *failingSource) Close() error                    { return nil }

func TestEngine_CaptureFailureFallsBackToSynthetic(t *testing.T) {
	e := newTestEngine(&failingSource{})
	e.Enable(context.Background())

	if e.Ready() {
		t.Fatal("Engine reports ready after capture failure")
	}

	// Downstream consumers never special-case "no audio": the vector is
	// still live and bounded.
	fv := e.Update()
	if fv.RMS < 0 || fv.RMS > 1 {
		t.Errorf("Fallback rms out of range: %v", fv.RMS)
	}
}

func TestEngine_EnableIsIdempotent(t *testing.T) {
	src := NewStaticSource(uniformMags(0))
	e := newTestEngine(src)

	e.Enable(context.Background())
	e.Enable(context.Background())
	if !e.Ready() {
		t.Fatal("Engine not ready after double enable")
	}

	e.Disable()
	if e.Ready() {
		t.Fatal("Engine still ready after disable")
	}
}

func TestConfig_ClampRepairsBadValues(t *testing.T) {
	c := Config{
		Smoothing:     -1,
		BeatThreshold: 0,
		HistorySize:   0,
		BPM:           -5,
	}.Clamp()

	d := DefaultConfig()
	if c.Smoothing != d.Smoothing || c.BeatThreshold != d.BeatThreshold ||
		c.HistorySize != d.HistorySize || c.BPM != d.BPM {
		t.Errorf("Clamp did not repair defaults: %+v", c)
	}
	if c.MinBeatInterval != d.MinBeatInterval {
		t.Errorf("MinBeatInterval: got %v, want %v", c.MinBeatInterval, d.MinBeatInterval)
	}
}
