package audio

import (
	"context"
	"fmt"
	"math/cmplx"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"

	"github.com/kaleidolab/go-kaleido/pkg/dsp"
)

// SpectrumSource supplies raw frequency-domain magnitude frames to the
// analysis engine. Implementations own their capture thread; Magnitudes
// returns the most recent frame without blocking.
type SpectrumSource interface {
	// Start begins capture. It is called once at enable time; failure
	// here means the engine falls back to synthetic generation.
	Start(ctx context.Context) error

	// Magnitudes returns the latest magnitude frame (length FFTSize/2,
	// values normalized to roughly [0,1]), or nil if none has arrived.
	Magnitudes() []float64

	// Name returns the backend name (e.g. "portaudio", "static").
	Name() string

	// Close stops capture and releases the device.
	Close() error
}

// CaptureSource reads the default input device through portaudio and
// publishes Hann-windowed FFT magnitudes.
type CaptureSource struct {
	sampleRate float64
	fftSize    int
	window     []float64

	mu     sync.Mutex
	stream *portaudio.Stream
	mags   []float64
	closed bool
}

// NewCaptureSource creates a microphone spectrum source.
func NewCaptureSource(sampleRate float64, fftSize int) *CaptureSource {
	return &CaptureSource{
		sampleRate: sampleRate,
		fftSize:    fftSize,
		window:     dsp.HannWindow(fftSize),
	}
}

// Start opens the default input stream. The portaudio callback runs on its
// own thread; each buffer is windowed, transformed, and stored as the
// latest magnitude frame.
func (c *CaptureSource) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrSourceClosed
	}
	if c.stream != nil {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initialize portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, c.sampleRate, c.fftSize, c.process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("start capture stream: %w", err)
	}

	c.stream = stream
	return nil
}

// process is the portaudio input callback.
func (c *CaptureSource) process(in []float32) {
	samples := make([]float64, c.fftSize)
	n := len(in)
	if n > c.fftSize {
		n = c.fftSize
	}
	for i := 0; i < n; i++ {
		samples[i] = float64(in[i]) * c.window[i]
	}

	spectrum := fft.FFTReal(samples)

	mags := make([]float64, c.fftSize/2)
	scale := 2.0 / float64(c.fftSize)
	for i := range mags {
		mags[i] = cmplx.Abs(spectrum[i]) * scale
	}

	c.mu.Lock()
	c.mags = mags
	c.mu.Unlock()
}

// Magnitudes returns a copy of the latest frame, or nil before the first
// buffer arrives.
func (c *CaptureSource) Magnitudes() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mags == nil {
		return nil
	}
	out := make([]float64, len(c.mags))
	copy(out, c.mags)
	return out
}

// Name returns the backend name.
func (c *CaptureSource) Name() string { return "portaudio" }

// Close stops the stream and releases portaudio.
func (c *CaptureSource) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.stream != nil {
		c.stream.Stop()
		c.stream.Close()
		c.stream = nil
		portaudio.Terminate()
	}
	return nil
}
