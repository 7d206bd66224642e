package audio

import (
	"math"
	"math/rand"
	"time"
)

// synthesizer produces stand-in band energies when no capture device is
// available. The output is a smooth function of wall-clock time with a
// quasi-periodic bass pulse, so downstream visuals (including the beat
// detector) keep moving. It makes no claim of fidelity.
type synthesizer struct {
	phases []float64
	rates  []float64
	epoch  time.Time
}

func newSynthesizer(rng *rand.Rand, epoch time.Time) *synthesizer {
	s := &synthesizer{
		phases: make([]float64, BandCount),
		rates:  make([]float64, BandCount),
		epoch:  epoch,
	}
	for i := 0; i < BandCount; i++ {
		s.phases[i] = rng.Float64() * 2 * math.Pi
		s.rates[i] = 0.2 + rng.Float64()*1.3
	}
	return s
}

// bands fills out with synthetic band energies for the given instant.
func (s *synthesizer) bands(now time.Time, out []float64) {
	t := now.Sub(s.epoch).Seconds()

	// Sharp pulse roughly twice per second drives the bass bands so the
	// beat detector has something to find.
	pulse := math.Pow(math.Max(0, math.Sin(2*math.Pi*t*1.9)), 12)

	for i := 0; i < BandCount; i++ {
		// Energy biased toward the low end, like real music.
		falloff := 1.0 / (1.0 + float64(i)*0.12)
		v := (0.35 + 0.25*math.Sin(t*s.rates[i]+s.phases[i])) * falloff
		if i < bassEnd {
			v += pulse * 0.5
		}
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		out[i] = v
	}
}
