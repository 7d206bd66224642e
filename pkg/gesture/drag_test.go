package gesture

import "testing"

func stepN(cfg Config, mode DragMode, timer float64, intensity float64, dt float64, n int) (DragMode, float64) {
	for i := 0; i < n; i++ {
		mode, timer = stepDrag(cfg, mode, timer, intensity, dt)
	}
	return mode, timer
}

func TestDrag_StillnessArms(t *testing.T) {
	cfg := DefaultConfig()

	// Below the stillness threshold for 0.5s arms the machine.
	mode, timer := stepN(cfg, DragNone, 0, 0.02, 0.1, 5)
	if mode != DragReady {
		t.Errorf("After 0.5s stillness: got %v, want %v", mode, DragReady)
	}
	if timer != 0 {
		t.Errorf("Timer after arming: got %v, want 0", timer)
	}
}

func TestDrag_MotionResetsArmingTimer(t *testing.T) {
	cfg := DefaultConfig()

	mode, timer := stepN(cfg, DragNone, 0, 0.02, 0.1, 4) // 0.4s of stillness
	if mode != DragNone {
		t.Fatalf("Premature arm: got %v", mode)
	}

	// One tick of motion wipes the progress.
	mode, timer = stepDrag(cfg, mode, timer, 0.3, 0.1)
	if mode != DragNone || timer != 0 {
		t.Errorf("After motion: got %v timer=%v, want %v timer=0", mode, timer, DragNone)
	}
}

func TestDrag_SlowMotionStartsDrag(t *testing.T) {
	cfg := DefaultConfig()

	mode, _ := stepDrag(cfg, DragReady, 0, 0.15, 0.016)
	if mode != DragActive {
		t.Errorf("Slow motion from ready: got %v, want %v", mode, DragActive)
	}
}

func TestDrag_QuickMotionCancelsFromAnyState(t *testing.T) {
	cfg := DefaultConfig()

	for _, from := range []DragMode{DragReady, DragActive} {
		mode, timer := stepDrag(cfg, from, 0.3, 0.7, 0.016)
		if mode != DragNone {
			t.Errorf("Quick motion from %v: got %v, want %v", from, mode, DragNone)
		}
		if timer != 0 {
			t.Errorf("Quick motion from %v left timer %v", from, timer)
		}
	}
}

func TestDrag_ReadyHoldsBelowSlowBand(t *testing.T) {
	cfg := DefaultConfig()

	// Stillness keeps the armed state, and mid-band motion (between slow
	// and quick) neither drags nor cancels.
	mode, _ := stepN(cfg, DragReady, 0, 0.02, 0.1, 20)
	if mode != DragReady {
		t.Errorf("Stillness while ready: got %v, want %v", mode, DragReady)
	}
	mode, _ = stepDrag(cfg, DragReady, 0, 0.4, 0.016)
	if mode != DragReady {
		t.Errorf("Mid-band motion while ready: got %v, want %v", mode, DragReady)
	}
}

func TestDrag_StillnessReleasesDrag(t *testing.T) {
	cfg := DefaultConfig()

	mode, timer := stepN(cfg, DragActive, 0, 0.02, 0.1, 5)
	if mode != DragNone {
		t.Errorf("After 0.5s stillness while dragging: got %v, want %v", mode, DragNone)
	}
	if timer != 0 {
		t.Errorf("Timer after release: got %v", timer)
	}
}

func TestDrag_SlowMotionSustainsDrag(t *testing.T) {
	cfg := DefaultConfig()

	mode, timer := stepN(cfg, DragActive, 0.4, 0.15, 0.1, 1)
	if mode != DragActive {
		t.Errorf("Slow motion while dragging: got %v, want %v", mode, DragActive)
	}
	// Slow-band motion resets the release timer.
	if timer != 0 {
		t.Errorf("Release timer not reset by slow motion: %v", timer)
	}
}

func TestDragMode_String(t *testing.T) {
	cases := map[DragMode]string{
		DragNone:    "none",
		DragReady:   "ready",
		DragActive:  "dragging",
		DragMode(9): "unknown",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("String(%d): got %q, want %q", mode, got, want)
		}
	}
}
