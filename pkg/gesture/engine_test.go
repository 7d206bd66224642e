package gesture

import (
	"context"
	"errors"
	"math"
	"testing"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

// motionFrame returns a frame with a bright block over the given region,
// zero elsewhere.
func motionFrame(x0, y0, x1, y1 int) Frame {
	f := UniformFrame(0)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			f[y*FrameWidth+x] = 255
		}
	}
	return f
}

func newTestEngine(frames ...Frame) *Engine {
	cfg := DefaultConfig()
	cfg.FrameSkip = 1
	e := NewEngine(cfg, NewScriptedSource(frames...))
	e.Enable(context.Background())
	return e
}

func TestEngine_CentroidMirroredAndNormalized(t *testing.T) {
	// Motion in the top-left 10x10 block of the camera frame.
	e := newTestEngine(UniformFrame(0), motionFrame(0, 0, 10, 10))

	e.Update(0.016) // primes the previous frame
	gs := e.Update(0.016)

	if !gs.HasMotion {
		t.Fatal("Expected motion")
	}

	// Mean moving coordinate is (4.5, 4.5); x is mirrored.
	wantX := 1 - 4.5/float64(FrameWidth-1)
	wantY := 4.5 / float64(FrameHeight-1)
	if !floatEquals(gs.X, wantX) {
		t.Errorf("X: got %v, want %v (mirror broken?)", gs.X, wantX)
	}
	if !floatEquals(gs.Y, wantY) {
		t.Errorf("Y: got %v, want %v", gs.Y, wantY)
	}
	if gs.MotionIntensity <= 0 || gs.MotionIntensity > 1 {
		t.Errorf("Intensity out of range: %v", gs.MotionIntensity)
	}
}

func TestEngine_ZeroMotionKeepsCentroid(t *testing.T) {
	moving := motionFrame(30, 20, 40, 30)
	e := newTestEngine(UniformFrame(0), moving, moving)

	e.Update(0.016)
	withMotion := e.Update(0.016)
	still := e.Update(0.016)

	if still.HasMotion {
		t.Error("Identical frames reported motion")
	}
	// Intensity decays through smoothing but the centroid stays put.
	if !floatEquals(still.X, withMotion.X) || !floatEquals(still.Y, withMotion.Y) {
		t.Errorf("Centroid moved without motion: (%v,%v) -> (%v,%v)",
			withMotion.X, withMotion.Y, still.X, still.Y)
	}
	if still.MotionIntensity >= withMotion.MotionIntensity {
		t.Errorf("Intensity did not decay: %v -> %v",
			withMotion.MotionIntensity, still.MotionIntensity)
	}
}

func TestEngine_FrameSkipPreservesOutput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameSkip = 2
	src := NewScriptedSource(UniformFrame(0), motionFrame(0, 0, 10, 10))
	e := NewEngine(cfg, src)
	e.Enable(context.Background())

	// Odd ticks are skipped entirely: no grab, no state change.
	before := e.State()
	after := e.Update(0.016)
	if after != before {
		t.Error("Skipped tick changed state")
	}
	if _, ok := src.Grab(); !ok {
		t.Error("Skipped tick consumed a frame")
	}
}

type deadSource struct{}

func (d *deadSource) Start(ctx context.Context) error { return errors.New("permission denied") }
func (d *deadSource) Grab() (Frame, bool)             { return nil, false }
func (d *deadSource) Close() error                    { return nil }

func TestEngine_CameraFailureStaysNotReady(t *testing.T) {
	e := NewEngine(DefaultConfig(), &deadSource{})
	e.Enable(context.Background())

	if e.Ready() {
		t.Fatal("Engine ready after camera failure")
	}

	// Not-ready is a valid permanent state: no motion, no drag.
	for i := 0; i < 10; i++ {
		gs := e.Update(0.016)
		if gs.HasMotion {
			t.Fatal("Not-ready engine reported motion")
		}
		if gs.DragMode != DragNone {
			t.Fatalf("Not-ready engine left drag mode: %v", gs.DragMode)
		}
	}
}

func TestEngine_ClickSuppressedWhileDragging(t *testing.T) {
	e := newTestEngine()

	// A firing spike shape in the history.
	for _, v := range []float64{0.1, 0.1, 0.1, 0.6, 0.6, 0.6} {
		e.click.push(v, 0.016)
	}

	e.state.DragMode = DragActive
	if e.ShouldTriggerClick() {
		t.Error("Click fired while dragging")
	}

	e.state.DragMode = DragReady
	if e.ShouldTriggerClick() {
		t.Error("Click fired while drag-armed")
	}

	e.state.DragMode = DragNone
	if !e.ShouldTriggerClick() {
		t.Error("Click did not fire once drag mode cleared")
	}
}

func TestEngine_DisableResetsState(t *testing.T) {
	e := newTestEngine(UniformFrame(0), motionFrame(0, 0, 20, 20))
	e.Update(0.016)
	e.Update(0.016)

	e.Disable()
	if e.Ready() {
		t.Error("Ready after disable")
	}
	gs := e.State()
	if gs.HasMotion || gs.DragMode != DragNone || gs.MotionIntensity != 0 {
		t.Errorf("State not reset after disable: %+v", gs)
	}
}

func TestConfig_ClampRepairsBadValues(t *testing.T) {
	c := Config{FrameSkip: 0, Sensitivity: 2}.Clamp()
	if c.FrameSkip != 1 {
		t.Errorf("FrameSkip: got %d, want 1", c.FrameSkip)
	}
	if c.Sensitivity != DefaultConfig().Sensitivity {
		t.Errorf("Sensitivity: got %v, want default", c.Sensitivity)
	}
	if c.QuickMotionThreshold <= c.SlowMotionThreshold {
		t.Error("Threshold ordering not enforced")
	}
}
