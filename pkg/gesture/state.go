package gesture

// DragMode is the three-state gesture interpretation used as a pointer
// substitute: hold still to arm, move slowly to drag, move quickly to bail.
type DragMode int

const (
	// DragNone means no drag interaction is in progress.
	DragNone DragMode = iota

	// DragReady means stillness was held long enough; slow motion will
	// begin a drag.
	DragReady

	// DragActive means a drag is in progress.
	DragActive
)

// String returns a human-readable mode name.
func (m DragMode) String() string {
	switch m {
	case DragNone:
		return "none"
	case DragReady:
		return "ready"
	case DragActive:
		return "dragging"
	default:
		return "unknown"
	}
}

// State is the per-tick output of the motion engine. It is a plain value
// type; each tick produces a fresh copy.
type State struct {
	// X, Y is the motion centroid in normalized [0,1] screen space,
	// mirrored horizontally so motion behaves like a mirror.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// MotionIntensity is the smoothed motion level in [0,1].
	MotionIntensity float64 `json:"motion_intensity"`

	// HasMotion is true when this tick's raw intensity crossed the
	// sensitivity threshold before smoothing.
	HasMotion bool `json:"has_motion"`

	// DragMode is the current drag interpretation.
	DragMode DragMode `json:"drag_mode"`

	// StillnessProgress is how far the stillness timer has run toward
	// arming, in [0,1]. Only meaningful while DragMode is DragNone.
	StillnessProgress float64 `json:"stillness_progress"`
}
