package rsp

import (
	"math"
	"sort"
)

// RemoveOutliers drops extrema whose amplitude gap to the next extremum does not exceed
// amplitudeMin times the median gap, then removes extrema that break the peak/trough alternation.
// It returns the surviving extrema together with their signal amplitudes.
//
// The gap of e[k] is measured to e[k+1]; the last extremum has no gap of its own and never survives
// the amplitude test.
func RemoveOutliers(signal []float64, extrema []int, amplitudeMin float64) ([]int, []float64) {
	kept := filterAmplitude(signal, extrema, amplitudeMin)
	amplitudes := amplitudesAt(signal, kept)
	return repairAlternation(kept, amplitudes)
}

func filterAmplitude(signal []float64, extrema []int, amplitudeMin float64) []int {
	if len(extrema) < 2 {
		return []int{}
	}

	gaps := make([]float64, len(extrema)-1)
	for k := range gaps {
		gaps[k] = math.Abs(signal[extrema[k+1]] - signal[extrema[k]])
	}
	threshold := median(gaps) * amplitudeMin

	kept := make([]int, 0, len(gaps))
	for k, gap := range gaps {
		if gap > threshold {
			kept = append(kept, extrema[k])
		}
	}
	return kept
}

// repairAlternation removes e[k+1] wherever the slopes into and out of it share a sign. Removals are
// decided on the input in a single pass.
func repairAlternation(extrema []int, amplitudes []float64) ([]int, []float64) {
	n := len(extrema)
	if n < 3 {
		return extrema, amplitudes
	}

	signs := make([]float64, n-1)
	for k := range signs {
		signs[k] = sign(amplitudes[k+1] - amplitudes[k])
	}

	remove := make([]bool, n)
	for k := 0; k+1 < len(signs); k++ {
		if signs[k]+signs[k+1] != 0 {
			remove[k+1] = true
		}
	}

	outE := make([]int, 0, n)
	outA := make([]float64, 0, n)
	for i := range extrema {
		if remove[i] {
			continue
		}
		outE = append(outE, extrema[i])
		outA = append(outA, amplitudes[i])
	}
	return outE, outA
}

func amplitudesAt(signal []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = signal[j]
	}
	return out
}

// median averages the two middle values for even lengths and is NaN for empty input.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
