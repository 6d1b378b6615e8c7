package rsp_test

import (
	"testing"

	"github.com/joeydtaylor/respira/pkg/internal/simulate"
)

// fiveCycles is five 100-sample breaths; every window maximum or minimum is a two-sample tie.
func fiveCycles() []float64 {
	return simulate.Cycles(1, 100, 100, 100, 100, 100)
}

func assertIndicesNear(t *testing.T, name string, got, want []int, tol int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %d indices %v, got %d %v", name, len(want), want, len(got), got)
	}
	for i := range want {
		d := got[i] - want[i]
		if d < -tol || d > tol {
			t.Fatalf("%s[%d]: expected %d +-%d, got %d (all: %v)", name, i, want[i], tol, got[i], got)
		}
	}
}

func assertIndices(t *testing.T, name string, got, want []int) {
	t.Helper()
	assertIndicesNear(t, name, got, want, 0)
}

func assertLandmarkInvariants(t *testing.T, peaks, troughs []int) {
	t.Helper()
	if len(peaks) != len(troughs) {
		t.Fatalf("expected equal counts, got %d peaks and %d troughs", len(peaks), len(troughs))
	}
	for i := range peaks {
		if troughs[i] >= peaks[i] {
			t.Fatalf("pair %d: trough %d not before peak %d", i, troughs[i], peaks[i])
		}
		if i+1 < len(troughs) && peaks[i] >= troughs[i+1] {
			t.Fatalf("pair %d: peak %d not before next trough %d", i, peaks[i], troughs[i+1])
		}
	}
}
