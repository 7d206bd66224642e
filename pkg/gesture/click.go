package gesture

// clickDetector fires on sudden rises in smoothed intensity. It keeps the
// last few samples and compares the mean of the most recent three against
// the three before them.
type clickDetector struct {
	threshold float64
	cooldown  float64 // seconds

	history   []float64
	remaining float64 // cooldown remaining, seconds
}

const (
	clickHistorySize = 10
	clickMinHistory  = 5
	clickWindow      = 3
)

func newClickDetector(threshold, cooldownSeconds float64) *clickDetector {
	return &clickDetector{
		threshold: threshold,
		cooldown:  cooldownSeconds,
		history:   make([]float64, 0, clickHistorySize),
	}
}

// push records one smoothed intensity sample and advances the cooldown.
func (c *clickDetector) push(intensity, dt float64) {
	c.history = append(c.history, intensity)
	if len(c.history) > clickHistorySize {
		c.history = c.history[1:]
	}
	if c.remaining > 0 {
		c.remaining -= dt
	}
}

// fire reports whether a spike is present right now and, if so, starts the
// cooldown. Callers suppress clicks while a drag is in progress.
func (c *clickDetector) fire() bool {
	if c.remaining > 0 || len(c.history) < clickMinHistory {
		return false
	}

	// At the minimum history the "before" window is short one sample;
	// compare against whatever precedes the recent window.
	n := len(c.history)
	lo := n - 2*clickWindow
	if lo < 0 {
		lo = 0
	}
	recent := mean(c.history[n-clickWindow:])
	before := mean(c.history[lo : n-clickWindow])

	if recent-before > c.threshold*0.3 && recent > c.threshold {
		c.remaining = c.cooldown
		return true
	}
	return false
}

func (c *clickDetector) reset() {
	c.history = c.history[:0]
	c.remaining = 0
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
