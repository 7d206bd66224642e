// Package audio turns raw frequency-domain capture into a smoothed, bounded
// feature vector and detects rhythmic beats from it.
//
// The engine is tick-driven: the caller invokes Update once per display
// frame and receives a fresh FeatureVector by value. With no capture device
// the engine generates a synthetic signal so downstream consumers never
// special-case "no audio".
package audio

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/kaleidolab/go-kaleido/internal/log"
	"github.com/kaleidolab/go-kaleido/pkg/dsp"
)

// Engine converts magnitude frames into FeatureVectors.
type Engine struct {
	cfg Config
	src SpectrumSource
	rng *rand.Rand
	now func() time.Time

	enabled bool
	ready   bool

	synth *synthesizer
	beat  *beatDetector

	bands    *dsp.VectorSmoother
	rms      dsp.Smoother
	bass     dsp.Smoother
	mid      dsp.Smoother
	treble   dsp.Smoother
	centroid dsp.Smoother

	raw [BandCount]float64
}

// NewEngine creates an analysis engine. src may be nil, in which case the
// engine runs purely synthetic. rng seeds the synthetic generator; inject a
// fixed seed in tests for reproducible output.
func NewEngine(cfg Config, src SpectrumSource, rng *rand.Rand) *Engine {
	cfg = cfg.Clamp()
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		cfg:   cfg,
		src:   src,
		rng:   rng,
		now:   time.Now,
		beat:  newBeatDetector(cfg.BeatThreshold, cfg.MinBeatInterval, cfg.HistorySize),
		bands: dsp.NewVectorSmoother(BandCount, cfg.Smoothing),
	}
	e.synth = newSynthesizer(rng, e.now())
	e.rms = dsp.NewSmoother(cfg.Smoothing)
	e.bass = dsp.NewSmoother(cfg.Smoothing)
	e.mid = dsp.NewSmoother(cfg.Smoothing)
	e.treble = dsp.NewSmoother(cfg.Smoothing)
	e.centroid = dsp.NewSmoother(cfg.Smoothing)
	return e
}

// Enable starts the capture source. It is idempotent; calling it while
// already enabled is a no-op. Failure to open the device is logged once and
// leaves the engine in its synthetic fallback for the rest of the session —
// no error reaches the caller.
func (e *Engine) Enable(ctx context.Context) {
	if e.enabled {
		return
	}
	e.enabled = true

	if e.src == nil {
		log.Warn("audio: no capture source configured, using synthetic signal")
		return
	}

	if err := e.src.Start(ctx); err != nil {
		log.Warn("audio: capture unavailable, falling back to synthetic signal",
			"backend", e.src.Name(), "error", err)
		return
	}

	e.ready = true
	log.Info("audio: capture started", "backend", e.src.Name())
}

// Disable releases the capture device and reverts to synthetic generation.
func (e *Engine) Disable() {
	if !e.enabled {
		return
	}
	e.enabled = false
	e.ready = false

	if e.src != nil {
		if err := e.src.Close(); err != nil {
			log.Warn("audio: close capture source", "error", err)
		}
	}
}

// Ready reports whether real capture is feeding the engine.
func (e *Engine) Ready() bool { return e.ready }

// Update computes the feature vector for this tick. Beat detection reads
// the unsmoothed instant energy; everything exported is smoothed against
// its own previous value and clamped into [0,1].
func (e *Engine) Update() FeatureVector {
	now := e.now()

	if e.ready {
		e.resample(e.src.Magnitudes())
	} else {
		e.synth.bands(now, e.raw[:])
	}

	rawBass := bandMean(e.raw[:], 0, bassEnd)
	rawMid := bandMean(e.raw[:], bassEnd, midEnd)
	rawTreble := bandMean(e.raw[:], midEnd, trebleEnd)

	// Instant energy feeds the beat detector before any smoothing.
	instant := rawBass*2 + rawMid
	beat := e.beat.Push(instant, now)

	var sumSq, weighted, total float64
	for i, v := range e.raw {
		sumSq += v * v
		weighted += v * float64(i)
		total += v
	}
	rawRMS := math.Sqrt(sumSq / BandCount)

	var rawCentroid float64
	if total > 0 {
		rawCentroid = weighted / (total * BandCount)
	}

	var fv FeatureVector
	e.bands.Update(e.raw[:], fv.Spectrum[:])
	for i := range fv.Spectrum {
		fv.Spectrum[i] = dsp.Clamp(fv.Spectrum[i], 0, 1)
	}

	fv.RMS = dsp.Clamp(e.rms.Update(rawRMS), 0, 1)
	fv.Bass = dsp.Clamp(e.bass.Update(rawBass), 0, 1)
	fv.Mid = dsp.Clamp(e.mid.Update(rawMid), 0, 1)
	fv.Treble = dsp.Clamp(e.treble.Update(rawTreble), 0, 1)
	fv.Centroid = dsp.Clamp(e.centroid.Update(rawCentroid), 0, 1)
	fv.Beat = beat
	fv.BPM = e.cfg.BPM
	return fv
}

// resample maps the raw magnitude array into BandCount bands using a
// squared index warp: band i reads raw index floor((i/32)^2 * rawLen).
// The warp concentrates bands toward the low end of the spectrum where
// musical energy is denser; a linear resample would skew octave balance.
func (e *Engine) resample(mags []float64) {
	if len(mags) == 0 {
		for i := range e.raw {
			e.raw[i] = 0
		}
		return
	}
	for i := 0; i < BandCount; i++ {
		frac := float64(i) / BandCount
		idx := int(frac * frac * float64(len(mags)))
		if idx >= len(mags) {
			idx = len(mags) - 1
		}
		e.raw[i] = dsp.Clamp(mags[idx], 0, 1)
	}
}

func bandMean(bands []float64, lo, hi int) float64 {
	var sum float64
	for i := lo; i < hi; i++ {
		sum += bands[i]
	}
	return sum / float64(hi-lo)
}
