package gesture

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrNoCamera is returned when no capture device could be opened.
	ErrNoCamera = errors.New("gesture: no camera available")

	// ErrSourceClosed is returned when starting a closed source.
	ErrSourceClosed = errors.New("gesture: source closed")
)

// Frame is one downsampled grayscale frame, FrameWidth x FrameHeight bytes
// in row-major order.
type Frame []byte

// FrameSource supplies downsampled frames to the motion engine.
// Implementations own their capture thread; Grab returns the most recent
// unseen frame without blocking.
type FrameSource interface {
	// Start begins capture. Failure here leaves the engine not-ready for
	// the session.
	Start(ctx context.Context) error

	// Grab returns the latest frame and true if a new frame arrived since
	// the previous Grab.
	Grab() (Frame, bool)

	// Close stops capture and releases the device.
	Close() error
}

// ScriptedSource is a frame source for testing. It replays queued frames
// in order, one per Grab, then reports no new frames.
type ScriptedSource struct {
	mu     sync.Mutex
	frames []Frame
}

// NewScriptedSource creates a test source with the given frame script.
func NewScriptedSource(frames ...Frame) *ScriptedSource {
	return &ScriptedSource{frames: frames}
}

// Push appends frames to the script.
func (s *ScriptedSource) Push(frames ...Frame) {
	s.mu.Lock()
	s.frames = append(s.frames, frames...)
	s.mu.Unlock()
}

// Start is a no-op.
func (s *ScriptedSource) Start(ctx context.Context) error { return nil }

// Grab pops the next scripted frame.
func (s *ScriptedSource) Grab() (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return nil, false
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, true
}

// Close is a no-op.
func (s *ScriptedSource) Close() error { return nil }

// UniformFrame returns a frame filled with one brightness value. Useful for
// constructing motion scripts in tests.
func UniformFrame(v byte) Frame {
	f := make(Frame, FrameWidth*FrameHeight)
	for i := range f {
		f[i] = v
	}
	return f
}
