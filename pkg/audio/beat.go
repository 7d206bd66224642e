package audio

import "time"

// beatDetector fires when the instant low-frequency energy substantially
// exceeds its short-term rolling average. The history is an owned bounded
// FIFO; during warm-up the average is taken over whatever is buffered.
type beatDetector struct {
	threshold   float64
	minInterval time.Duration
	capacity    int

	history  []float64
	lastBeat time.Time
}

func newBeatDetector(threshold float64, minInterval time.Duration, capacity int) *beatDetector {
	return &beatDetector{
		threshold:   threshold,
		minInterval: minInterval,
		capacity:    capacity,
		history:     make([]float64, 0, capacity),
	}
}

// Push records one instant-energy sample and reports whether a beat fired
// on this tick. now is the wall clock used for the refractory period.
func (b *beatDetector) Push(energy float64, now time.Time) bool {
	b.history = append(b.history, energy)
	if len(b.history) > b.capacity {
		b.history = b.history[1:]
	}

	var sum float64
	for _, e := range b.history {
		sum += e
	}
	avg := sum / float64(len(b.history))

	if energy > avg*b.threshold && now.Sub(b.lastBeat) >= b.minInterval {
		b.lastBeat = now
		return true
	}
	return false
}

// Reset clears the history and the refractory timer.
func (b *beatDetector) Reset() {
	b.history = b.history[:0]
	b.lastBeat = time.Time{}
}
