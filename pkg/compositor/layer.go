package compositor

import (
	"github.com/google/uuid"

	"github.com/kaleidolab/go-kaleido/pkg/pattern"
)

// ActiveLayer is one concurrently visible pattern instance with its own
// fade lifecycle. The compositor exclusively mutates layer state.
type ActiveLayer struct {
	// ID uniquely identifies this layer instance.
	ID string

	// PatternIndex is the registry index the pattern was built from.
	PatternIndex int

	pattern pattern.Pattern

	// Lifetime is seconds since spawn.
	Lifetime float64

	// FadeInProgress and FadeOutProgress ramp 0 to 1 and never decrease.
	FadeInProgress  float64
	FadeOutProgress float64

	// IsRemoving becomes true once Lifetime reaches the layer duration
	// and never reverts.
	IsRemoving bool
}

func newLayer(idx int, p pattern.Pattern) *ActiveLayer {
	p.Surface().Visible = true
	p.Surface().Alpha = 0
	return &ActiveLayer{
		ID:           uuid.NewString(),
		PatternIndex: idx,
		pattern:      p,
	}
}

// Alpha returns the blend weight for this layer: the fade-in ramp while
// appearing, the inverted fade-out ramp while retiring.
func (l *ActiveLayer) Alpha() float64 {
	if l.IsRemoving {
		a := 1 - l.FadeOutProgress
		if a < 0 {
			return 0
		}
		return a
	}
	return l.FadeInProgress
}

// advance moves the lifecycle timers forward by dt seconds.
func (l *ActiveLayer) advance(dt float64, cfg Config) {
	l.Lifetime += dt

	if l.FadeInProgress < 1 {
		l.FadeInProgress += dt / cfg.FadeInDuration.Seconds()
		if l.FadeInProgress > 1 {
			l.FadeInProgress = 1
		}
	}

	if !l.IsRemoving && l.Lifetime >= cfg.LayerDuration.Seconds() {
		l.IsRemoving = true
	}

	if l.IsRemoving && l.FadeOutProgress < 1 {
		l.FadeOutProgress += dt / cfg.FadeOutDuration.Seconds()
		if l.FadeOutProgress > 1 {
			l.FadeOutProgress = 1
		}
	}

	l.pattern.Surface().Alpha = l.Alpha()
}

// expired reports whether the layer has fully faded out.
func (l *ActiveLayer) expired() bool {
	return l.IsRemoving && l.FadeOutProgress >= 1
}

// retire detaches and tears down the pattern.
func (l *ActiveLayer) retire() {
	l.pattern.Surface().Visible = false
	l.pattern.Destroy()
	l.pattern = nil
}

// LayerInfo is a read-only snapshot of one active layer for dashboards.
type LayerInfo struct {
	ID              string  `json:"id"`
	PatternIndex    int     `json:"pattern_index"`
	PatternName     string  `json:"pattern_name"`
	Lifetime        float64 `json:"lifetime"`
	FadeInProgress  float64 `json:"fade_in_progress"`
	FadeOutProgress float64 `json:"fade_out_progress"`
	IsRemoving      bool    `json:"is_removing"`
	Alpha           float64 `json:"alpha"`
}
