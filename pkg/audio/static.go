package audio

import (
	"context"
	"sync"
)

// StaticSource is a spectrum source for testing. It returns whatever frame
// was last set, never touching real hardware.
type StaticSource struct {
	mu   sync.Mutex
	mags []float64
}

// NewStaticSource creates a test source, optionally with an initial frame.
func NewStaticSource(mags []float64) *StaticSource {
	return &StaticSource{mags: mags}
}

// Set replaces the current magnitude frame.
func (s *StaticSource) Set(mags []float64) {
	s.mu.Lock()
	s.mags = mags
	s.mu.Unlock()
}

// Start is a no-op.
func (s *StaticSource) Start(ctx context.Context) error { return nil }

// Magnitudes returns the current frame.
func (s *StaticSource) Magnitudes() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mags
}

// Name returns the backend name.
func (s *StaticSource) Name() string { return "static" }

// Close is a no-op.
func (s *StaticSource) Close() error { return nil }
