package rsp

// DefaultMinBreathPeriod is the shortest accepted peak-to-peak interval in seconds (35 breaths/min).
const DefaultMinBreathPeriod = 1.7

// FilterRate removes peaks[k] and troughs[k] for every k whose following peak comes sooner than
// minPeriod seconds. Intervals are evaluated on the unfiltered peaks.
func FilterRate(peaks, troughs []int, samplingRate int, minPeriod float64) ([]int, []int, int) {
	if len(peaks) < 2 || samplingRate <= 0 {
		return peaks, troughs, 0
	}

	drop := make(map[int]struct{})
	for k := 0; k+1 < len(peaks); k++ {
		interval := float64(peaks[k+1]-peaks[k]) / float64(samplingRate)
		if interval < minPeriod {
			drop[k] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return peaks, troughs, 0
	}

	return deleteAt(peaks, drop), deleteAt(troughs, drop), len(drop)
}

func deleteAt(values []int, drop map[int]struct{}) []int {
	out := make([]int, 0, len(values))
	for i, v := range values {
		if _, ok := drop[i]; ok {
			continue
		}
		out = append(out, v)
	}
	return out
}
