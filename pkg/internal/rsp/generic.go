package rsp

import (
	"math"
	"sort"
)

// FindPeaksGeneric returns the local maxima of x that are at least distance samples apart and have a
// prominence of at least prominence. Flat peaks resolve to their middle sample (rounded down).
//
// Distance suppression runs before the prominence test and keeps the higher of two close peaks.
// A distance below 1 disables suppression; a negative prominence disables the prominence test.
func FindPeaksGeneric(x []float64, distance, prominence float64) []int {
	peaks := localMaxima(x)
	if len(peaks) == 0 {
		return peaks
	}
	if distance >= 1 {
		peaks = selectByDistance(x, peaks, distance)
	}
	if prominence < 0 {
		return peaks
	}

	kept := make([]int, 0, len(peaks))
	for _, p := range peaks {
		if peakProminence(x, p) >= prominence {
			kept = append(kept, p)
		}
	}
	return kept
}

// FindTroughsGeneric applies FindPeaksGeneric to the negated signal.
func FindTroughsGeneric(x []float64, distance, prominence float64) []int {
	neg := make([]float64, len(x))
	for i, v := range x {
		neg[i] = -v
	}
	return FindPeaksGeneric(neg, distance, prominence)
}

func localMaxima(x []float64) []int {
	peaks := make([]int, 0)
	last := len(x) - 1
	i := 1
	for i < last {
		if x[i-1] < x[i] {
			ahead := i + 1
			for ahead < last && x[ahead] == x[i] {
				ahead++
			}
			if x[ahead] < x[i] {
				left, right := i, ahead-1
				peaks = append(peaks, (left+right)/2)
				i = ahead
			}
		}
		i++
	}
	return peaks
}

func selectByDistance(x []float64, peaks []int, distance float64) []int {
	minGap := int(math.Ceil(distance))
	n := len(peaks)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return x[peaks[order[a]]] < x[peaks[order[b]]]
	})

	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}
	for i := n - 1; i >= 0; i-- {
		j := order[i]
		if !keep[j] {
			continue
		}
		for k := j - 1; k >= 0 && peaks[j]-peaks[k] < minGap; k-- {
			keep[k] = false
		}
		for k := j + 1; k < n && peaks[k]-peaks[j] < minGap; k++ {
			keep[k] = false
		}
	}

	out := make([]int, 0, n)
	for i, p := range peaks {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

// peakProminence is the height of x[p] above the higher of its two bases. Each base is the lowest
// sample between p and the nearest strictly higher sample (or the signal edge) on that side.
func peakProminence(x []float64, p int) float64 {
	height := x[p]

	leftMin := height
	for i := p; i >= 0 && x[i] <= height; i-- {
		if x[i] < leftMin {
			leftMin = x[i]
		}
	}
	rightMin := height
	for i := p; i < len(x) && x[i] <= height; i++ {
		if x[i] < rightMin {
			rightMin = x[i]
		}
	}
	return height - math.Max(leftMin, rightMin)
}
