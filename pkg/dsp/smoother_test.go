package dsp

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestSmoother_FirstSamplePrimes(t *testing.T) {
	s := NewSmoother(0.7)
	if got := s.Update(0.5); !floatEquals(got, 0.5) {
		t.Errorf("First sample: got %v, want 0.5", got)
	}
}

func TestSmoother_Formula(t *testing.T) {
	s := NewSmoother(0.7)
	s.Update(1.0)

	// out = prev*0.7 + new*0.3
	if got := s.Update(0.0); !floatEquals(got, 0.7) {
		t.Errorf("Second sample: got %v, want 0.7", got)
	}
	if got := s.Update(0.0); !floatEquals(got, 0.49) {
		t.Errorf("Third sample: got %v, want 0.49", got)
	}
}

func TestSmoother_ZeroFactorPassesThrough(t *testing.T) {
	s := NewSmoother(0)
	s.Update(1.0)
	if got := s.Update(0.25); !floatEquals(got, 0.25) {
		t.Errorf("Zero factor: got %v, want 0.25", got)
	}
}

func TestSmoother_StableAtConstantInput(t *testing.T) {
	s := NewSmoother(0.7)
	for i := 0; i < 100; i++ {
		if got := s.Update(0.0); !floatEquals(got, 0.0) {
			t.Fatalf("Constant zero input oscillated to %v at step %d", got, i)
		}
	}
}

func TestSmoother_Reset(t *testing.T) {
	s := NewSmoother(0.7)
	s.Update(1.0)
	s.Reset()
	if got := s.Update(0.2); !floatEquals(got, 0.2) {
		t.Errorf("After reset: got %v, want 0.2", got)
	}
}

func TestVectorSmoother(t *testing.T) {
	vs := NewVectorSmoother(3, 0.5)
	out := make([]float64, 3)

	vs.Update([]float64{1, 2, 3}, out)
	for i, want := range []float64{1, 2, 3} {
		if !floatEquals(out[i], want) {
			t.Errorf("Prime element %d: got %v, want %v", i, out[i], want)
		}
	}

	vs.Update([]float64{0, 0, 0}, out)
	for i, want := range []float64{0.5, 1, 1.5} {
		if !floatEquals(out[i], want) {
			t.Errorf("Smoothed element %d: got %v, want %v", i, out[i], want)
		}
	}
}

func TestVectorSmoother_ShortInputTreatedAsZero(t *testing.T) {
	vs := NewVectorSmoother(2, 0)
	out := make([]float64, 2)
	vs.Update([]float64{1}, out)
	if !floatEquals(out[1], 0) {
		t.Errorf("Missing element: got %v, want 0", out[1])
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-0.5, 0, 1); got != 0 {
		t.Errorf("Clamp below: got %v, want 0", got)
	}
	if got := Clamp(1.5, 0, 1); got != 1 {
		t.Errorf("Clamp above: got %v, want 1", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Errorf("Clamp inside: got %v, want 0.5", got)
	}
}

func TestHannWindow(t *testing.T) {
	w := HannWindow(8)
	if !floatEquals(w[0], 0) || !floatEquals(w[7], 0) {
		t.Errorf("Window edges: got %v and %v, want 0", w[0], w[7])
	}
	for i, v := range w {
		if v < 0 || v > 1 {
			t.Errorf("Window value %d out of range: %v", i, v)
		}
	}
}
