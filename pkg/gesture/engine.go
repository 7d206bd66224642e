// Package gesture turns successive downsampled camera frames into a motion
// centroid, a smoothed intensity value, a click detector, and a drag-capable
// state machine usable as a pointer substitute.
//
// The engine is tick-driven and internally throttled: only every Nth tick
// processes a frame, and skipped ticks preserve the previous output. Camera
// failure leaves the engine permanently not-ready for the session; callers
// must treat that as a valid state, not an error.
package gesture

import (
	"context"
	"time"

	"github.com/kaleidolab/go-kaleido/internal/log"
	"github.com/kaleidolab/go-kaleido/pkg/dsp"
)

// Engine converts frames into gesture State.
type Engine struct {
	cfg Config
	src FrameSource

	enabled bool
	ready   bool

	tick      int
	pendingDT float64

	prev  Frame
	state State

	intensity dsp.Smoother
	click     *clickDetector

	dragTimer float64
}

// NewEngine creates a motion engine. src may be nil; the engine then stays
// not-ready and reports no motion.
func NewEngine(cfg Config, src FrameSource) *Engine {
	cfg = cfg.Clamp()
	return &Engine{
		cfg:       cfg,
		src:       src,
		intensity: dsp.NewSmoother(cfg.Smoothing),
		click:     newClickDetector(cfg.ClickThreshold, cfg.ClickCooldown.Seconds()),
	}
}

// Enable starts the camera. It is idempotent. Failure is logged once and
// leaves the engine not-ready for the session — no error reaches the caller.
func (e *Engine) Enable(ctx context.Context) {
	if e.enabled {
		return
	}
	e.enabled = true

	if e.src == nil {
		log.Warn("gesture: no frame source configured, motion detection off")
		return
	}

	if err := e.src.Start(ctx); err != nil {
		log.Warn("gesture: camera unavailable, motion detection off", "error", err)
		return
	}

	e.ready = true
	log.Info("gesture: camera started")
}

// Disable releases the camera and resets the gesture state.
func (e *Engine) Disable() {
	if !e.enabled {
		return
	}
	e.enabled = false
	e.ready = false

	if e.src != nil {
		if err := e.src.Close(); err != nil {
			log.Warn("gesture: close frame source", "error", err)
		}
	}

	e.prev = nil
	e.state = State{}
	e.intensity.Reset()
	e.click.reset()
	e.dragTimer = 0
}

// Ready reports whether the camera is feeding the engine.
func (e *Engine) Ready() bool { return e.ready }

// State returns the most recent output without advancing anything.
func (e *Engine) State() State { return e.state }

// Update advances the engine by dt seconds and returns the current state.
// Skipped ticks (frame-skip throttle, or no new camera frame) are no-ops
// that return the previous state; their dt still accrues so the drag timers
// run on real elapsed time once a frame is processed.
func (e *Engine) Update(dt float64) State {
	e.pendingDT += dt

	if !e.ready {
		return e.state
	}

	e.tick++
	if e.tick%e.cfg.FrameSkip != 0 {
		return e.state
	}

	frame, ok := e.src.Grab()
	if !ok {
		return e.state
	}

	elapsed := e.pendingDT
	e.pendingDT = 0

	if e.prev == nil {
		e.prev = frame
		return e.state
	}

	raw, moved := e.diff(frame)
	e.prev = frame

	smoothed := dsp.Clamp(e.intensity.Update(raw), 0, 1)
	e.state.MotionIntensity = smoothed
	e.state.HasMotion = moved

	e.click.push(smoothed, elapsed)

	e.state.DragMode, e.dragTimer = stepDrag(e.cfg, e.state.DragMode, e.dragTimer, smoothed, elapsed)
	if e.state.DragMode == DragNone {
		e.state.StillnessProgress = dsp.Clamp(e.dragTimer/e.cfg.StillnessDuration.Seconds(), 0, 1)
	} else {
		e.state.StillnessProgress = 0
	}

	return e.state
}

// diff compares the new frame against the previous one. It returns the raw
// (unsmoothed) intensity and whether any pixel moved. The centroid is
// updated in place: moving pixels pull it, zero motion leaves it where it
// was rather than snapping to a default.
func (e *Engine) diff(frame Frame) (float64, bool) {
	threshold := (1 - e.cfg.Sensitivity) * 100

	var count int
	var sumX, sumY, totalDiff float64

	for y := 0; y < FrameHeight; y++ {
		row := y * FrameWidth
		for x := 0; x < FrameWidth; x++ {
			i := row + x
			d := float64(frame[i]) - float64(e.prev[i])
			if d < 0 {
				d = -d
			}
			if d > threshold {
				count++
				sumX += float64(x)
				sumY += float64(y)
				totalDiff += d
			}
		}
	}

	if count == 0 {
		return 0, false
	}

	// Mirror the x axis so motion behaves like a mirror.
	cx := sumX / float64(count) / float64(FrameWidth-1)
	cy := sumY / float64(count) / float64(FrameHeight-1)
	e.state.X = dsp.Clamp(1-cx, 0, 1)
	e.state.Y = dsp.Clamp(cy, 0, 1)

	raw := totalDiff / (float64(count) * 255 * 0.3)
	if raw > 1 {
		raw = 1
	}
	return raw, true
}

// ShouldTriggerClick reports whether an intensity spike fired this tick.
// Clicks are suppressed entirely while a drag interaction is in progress;
// drag and click are mutually exclusive modes.
func (e *Engine) ShouldTriggerClick() bool {
	if e.state.DragMode != DragNone {
		return false
	}
	return e.click.fire()
}

// EffectiveInterval returns the interval between processed frames at the
// given tick rate, for dashboards that show the effective analysis rate.
func (e *Engine) EffectiveInterval(tickRate float64) time.Duration {
	if tickRate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) * float64(e.cfg.FrameSkip) / tickRate)
}
