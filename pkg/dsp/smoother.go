// Package dsp provides small signal-conditioning primitives shared by the
// audio and gesture engines: exponential smoothing, clamping, and the Hann
// window used before FFT analysis.
package dsp

// Smoother applies single-pole exponential smoothing to a scalar.
// Factor is the weight of the PREVIOUS value: out = prev*factor + in*(1-factor).
// A factor of 0 passes input through untouched; 1 freezes the output.
type Smoother struct {
	factor float64
	value  float64
	primed bool
}

// NewSmoother creates a smoother with the given previous-value weight.
// The factor is clamped into [0,1].
func NewSmoother(factor float64) Smoother {
	return Smoother{factor: Clamp(factor, 0, 1)}
}

// Update feeds one sample and returns the smoothed value.
// The first sample primes the smoother and is returned as-is.
func (s *Smoother) Update(in float64) float64 {
	if !s.primed {
		s.value = in
		s.primed = true
		return s.value
	}
	s.value = s.value*s.factor + in*(1-s.factor)
	return s.value
}

// Value returns the current smoothed value without feeding a sample.
func (s *Smoother) Value() float64 {
	return s.value
}

// Reset clears the smoother back to its unprimed state.
func (s *Smoother) Reset() {
	s.value = 0
	s.primed = false
}

// VectorSmoother smooths a fixed-length vector element-wise with one factor.
type VectorSmoother struct {
	smoothers []Smoother
}

// NewVectorSmoother creates a smoother for vectors of length n.
func NewVectorSmoother(n int, factor float64) *VectorSmoother {
	vs := &VectorSmoother{smoothers: make([]Smoother, n)}
	for i := range vs.smoothers {
		vs.smoothers[i] = NewSmoother(factor)
	}
	return vs
}

// Update smooths in into out element-wise. out must be the same length as
// the smoother; in may be shorter, missing elements are treated as 0.
func (vs *VectorSmoother) Update(in, out []float64) {
	for i := range vs.smoothers {
		var v float64
		if i < len(in) {
			v = in[i]
		}
		out[i] = vs.smoothers[i].Update(v)
	}
}

// Clamp limits v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
