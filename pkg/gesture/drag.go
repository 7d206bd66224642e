package gesture

// stepDrag advances the drag state machine by one processed tick.
//
// The machine has a single stillness timer whose meaning depends on the
// current state: in DragNone it measures progress toward arming, in
// DragActive it measures progress toward release. Quick motion exits any
// state immediately. Keeping the transition in one pure function avoids the
// timer and the state drifting out of sync.
func stepDrag(cfg Config, mode DragMode, timer float64, intensity float64, dt float64) (DragMode, float64) {
	still := cfg.StillnessDuration.Seconds()

	switch mode {
	case DragNone:
		if intensity < cfg.StillnessThreshold {
			timer += dt
			if timer >= still {
				return DragReady, 0
			}
			return DragNone, timer
		}
		// Any motion resets arming progress.
		return DragNone, 0

	case DragReady:
		if intensity >= cfg.QuickMotionThreshold {
			return DragNone, 0
		}
		if intensity >= cfg.StillnessThreshold && intensity < cfg.SlowMotionThreshold {
			return DragActive, 0
		}
		return DragReady, timer

	case DragActive:
		if intensity >= cfg.QuickMotionThreshold {
			return DragNone, 0
		}
		if intensity < cfg.StillnessThreshold {
			timer += dt
			if timer >= still {
				return DragNone, 0
			}
			return DragActive, timer
		}
		// Motion in the slow band keeps the drag alive.
		return DragActive, 0

	default:
		return DragNone, 0
	}
}
