package rsp

// Sanitize trims the extrema so the sequence starts with a trough and ends with a peak, then splits
// it into peaks (odd positions) and troughs (even positions, excluding the last element).
//
// Both trims are decided on the amplitudes as passed in. Two extrema that form a peak followed by a
// trough therefore yield no landmarks at all.
func Sanitize(extrema []int, amplitudes []float64) (peaks, troughs []int, err error) {
	if len(extrema) < 2 || len(amplitudes) < 2 {
		return nil, nil, ErrTooFewExtrema
	}

	n := len(amplitudes)
	dropFirst := amplitudes[0] > amplitudes[1]
	dropLast := amplitudes[n-1] < amplitudes[n-2]

	trimmed := extrema
	if dropFirst {
		trimmed = trimmed[1:]
	}
	if dropLast && len(trimmed) > 0 {
		trimmed = trimmed[:len(trimmed)-1]
	}

	peaks = make([]int, 0, len(trimmed)/2)
	troughs = make([]int, 0, len(trimmed)/2)
	for i := 1; i < len(trimmed); i += 2 {
		peaks = append(peaks, trimmed[i])
	}
	for i := 0; i < len(trimmed)-1; i += 2 {
		troughs = append(troughs, trimmed[i])
	}
	return peaks, troughs, nil
}
