package simulate_test

import (
	"math"
	"testing"

	"github.com/joeydtaylor/respira/pkg/internal/simulate"
)

func TestCyclesShape(t *testing.T) {
	s := simulate.Cycles(1, 100, 100)
	if len(s) != 200 {
		t.Fatalf("expected 200 samples, got %d", len(s))
	}
	for i, v := range s {
		if v == 0 {
			t.Fatalf("sample %d is exactly zero", i)
		}
	}
	if s[49] >= 0 || s[50] <= 0 {
		t.Fatalf("expected rising crossing between 49 and 50, got %v, %v", s[49], s[50])
	}
	if s[99] <= 0 || s[100] >= 0 {
		t.Fatalf("expected falling crossing between 99 and 100, got %v, %v", s[99], s[100])
	}
}

func TestRampAndSine(t *testing.T) {
	r := simulate.Ramp(5, -1, 1)
	want := []float64{-1, -0.5, 0, 0.5, 1}
	for i := range want {
		if math.Abs(r[i]-want[i]) > 1e-12 {
			t.Fatalf("ramp[%d]: expected %v, got %v", i, want[i], r[i])
		}
	}

	s := simulate.Sine(4, 4, 2, 0)
	if math.Abs(s[1]-2) > 1e-12 || math.Abs(s[3]+2) > 1e-12 {
		t.Fatalf("unexpected sine samples: %v", s)
	}
}

func TestInjectWiggleCopies(t *testing.T) {
	base := []float64{1, 2, 3, 4}
	out := simulate.InjectWiggle(base, 1, 0.01)
	if base[1] != 2 {
		t.Fatalf("input mutated")
	}
	if out[1] != -0.01 || out[2] != 0.01 {
		t.Fatalf("unexpected wiggle: %v", out)
	}
	if got := simulate.InjectWiggle(base, 3, 0.01); got[3] != 4 {
		t.Fatalf("expected out-of-range wiggle to be ignored, got %v", got)
	}
}

func TestBreathingDeterministic(t *testing.T) {
	opts := simulate.BreathingOptions{Variability: 0.2, Noise: 0.01, Seed: 7}
	a := simulate.Breathing(30, 100, 15, opts)
	b := simulate.Breathing(30, 100, 15, opts)

	if len(a) != 3000 {
		t.Fatalf("expected 3000 samples, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs between identical seeds", i)
		}
	}
	if len(simulate.Breathing(0, 100, 15, opts)) != 0 {
		t.Fatalf("expected empty signal for zero duration")
	}
}
