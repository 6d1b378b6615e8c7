package rsp

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Phase is the direction of the first zero crossing in a signal.
type Phase int

const (
	PhaseRise Phase = iota
	PhaseFall
)

func (p Phase) String() string {
	if p == PhaseRise {
		return "rise"
	}
	return "fall"
}

// searchState selects what the next inter-crossing window is searched for.
type searchState int

const (
	ExpectMax searchState = iota
	ExpectMin
)

func (s searchState) next() searchState {
	if s == ExpectMax {
		return ExpectMin
	}
	return ExpectMax
}

// zeroCrossings returns the sample indices i where the signal changes sign between i and i+1.
// Samples equal to zero are neither positive nor negative, so they never complete a crossing.
func zeroCrossings(signal []float64) (rising, falling []int) {
	for i := 0; i+1 < len(signal); i++ {
		cur, nxt := signal[i], signal[i+1]
		switch {
		case cur < 0 && nxt > 0:
			rising = append(rising, i)
		case cur > 0 && nxt < 0:
			falling = append(falling, i)
		}
	}
	return rising, falling
}

func startingPhase(rising, falling []int) (Phase, error) {
	if len(rising) == 0 || len(falling) == 0 {
		return PhaseRise, ErrNoZeroCrossing
	}
	if rising[0] < falling[0] {
		return PhaseRise, nil
	}
	return PhaseFall, nil
}

// LocateExtrema returns one extremum per pair of consecutive zero crossings: the maximum between a
// rising and the following falling crossing, the minimum between a falling and the following rising
// crossing. Each window is the half-open range [crossing, next crossing).
func LocateExtrema(signal []float64) ([]int, error) {
	rising, falling := zeroCrossings(signal)
	phase, err := startingPhase(rising, falling)
	if err != nil {
		return nil, err
	}

	all := make([]int, 0, len(rising)+len(falling))
	all = append(all, rising...)
	all = append(all, falling...)
	sort.Ints(all)

	state := ExpectMax
	if phase == PhaseFall {
		state = ExpectMin
	}

	extrema := make([]int, 0, len(all))
	for i := 0; i+1 < len(all); i++ {
		beg, end := all[i], all[i+1]
		window := signal[beg:end]
		var offset int
		if state == ExpectMax {
			offset = floats.MaxIdx(window)
		} else {
			offset = floats.MinIdx(window)
		}
		extrema = append(extrema, beg+offset)
		state = state.next()
	}
	return extrema, nil
}
