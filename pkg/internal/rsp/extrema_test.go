package rsp_test

import (
	"errors"
	"testing"

	"github.com/joeydtaylor/respira/pkg/internal/rsp"
	"github.com/joeydtaylor/respira/pkg/internal/simulate"
)

func TestLocateExtremaRisingStart(t *testing.T) {
	extrema, err := rsp.LocateExtrema(fiveCycles())
	if err != nil {
		t.Fatalf("LocateExtrema: %v", err)
	}
	assertIndicesNear(t, "extrema", extrema, []int{74, 124, 174, 224, 274, 324, 374, 424}, 1)
}

func TestLocateExtremaFallingStart(t *testing.T) {
	extrema, err := rsp.LocateExtrema(simulate.Cycles(-1, 100, 100, 100))
	if err != nil {
		t.Fatalf("LocateExtrema: %v", err)
	}
	// Falls at 49 first, so the first window is searched for a minimum.
	assertIndicesNear(t, "extrema", extrema, []int{74, 124, 174, 224}, 1)
}

func TestLocateExtremaWindowIsHalfOpen(t *testing.T) {
	// Crossings at 1 (rising), 4 (falling) and 6 (rising). The samples at 4 and 6 are the most
	// extreme of their windows but each sits on a closing crossing.
	signal := []float64{-1, -0.5, 0.5, 0.7, 0.9, -0.2, -0.3, 0.4}
	extrema, err := rsp.LocateExtrema(signal)
	if err != nil {
		t.Fatalf("LocateExtrema: %v", err)
	}
	assertIndices(t, "extrema", extrema, []int{3, 5})
}

func TestLocateExtremaFirstOccurrence(t *testing.T) {
	signal := []float64{-1, 2, 2, 1, -1, -3, -3, -2, 1}
	extrema, err := rsp.LocateExtrema(signal)
	if err != nil {
		t.Fatalf("LocateExtrema: %v", err)
	}
	assertIndices(t, "extrema", extrema, []int{1, 5})
}

func TestLocateExtremaZeroSamplesDoNotCross(t *testing.T) {
	// -1 -> 0 -> 1 never has a negative sample followed directly by a positive one.
	signal := []float64{-1, 0, 1, 0, -1}
	if _, err := rsp.LocateExtrema(signal); !errors.Is(err, rsp.ErrNoZeroCrossing) {
		t.Fatalf("expected ErrNoZeroCrossing, got %v", err)
	}
}

func TestLocateExtremaPrecondition(t *testing.T) {
	cases := map[string][]float64{
		"empty":        {},
		"single":       {1},
		"ramp":         simulate.Ramp(100, -1, 1),
		"constant":     {0.5, 0.5, 0.5, 0.5},
		"all negative": {-3, -1, -2, -0.5},
		"zeros":        make([]float64, 10),
	}
	for name, signal := range cases {
		t.Run(name, func(t *testing.T) {
			extrema, err := rsp.LocateExtrema(signal)
			if !errors.Is(err, rsp.ErrNoZeroCrossing) {
				t.Fatalf("expected ErrNoZeroCrossing, got %v", err)
			}
			if extrema != nil {
				t.Fatalf("expected no partial result, got %v", extrema)
			}
		})
	}
}

func TestLocateExtremaSingleCrossingPair(t *testing.T) {
	// One rising and one falling crossing produce exactly one extremum.
	signal := []float64{-1, 1, 3, 2, -1}
	extrema, err := rsp.LocateExtrema(signal)
	if err != nil {
		t.Fatalf("LocateExtrema: %v", err)
	}
	assertIndices(t, "extrema", extrema, []int{2})
}
