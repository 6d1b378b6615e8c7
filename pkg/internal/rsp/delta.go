package rsp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DetectPeaksTroughs finds alternating maxima and minima. A running maximum is confirmed once the
// signal falls more than delta below it and no larger value occurs within the next lookahead
// samples; minima are confirmed symmetrically. Scanning stops lookahead samples before the end of x.
//
// The first confirmed landmark is discarded because its running extreme is seeded from the signal
// start rather than from a preceding landmark.
func DetectPeaksTroughs(x []float64, delta float64, lookahead int) (peaks, troughs []int) {
	peaks, troughs = []int{}, []int{}
	if lookahead < 1 || len(x) <= lookahead {
		return peaks, troughs
	}

	var (
		mx, mn       = math.Inf(-1), math.Inf(1)
		mxPos, mnPos int
		firstIsPeak  bool
		found        bool
	)
	length := len(x)

	for index := 0; index < length-lookahead; index++ {
		y := x[index]
		if y > mx {
			mx, mxPos = y, index
		}
		if y < mn {
			mn, mnPos = y, index
		}

		if y < mx-delta && !math.IsInf(mx, 1) {
			if floats.Max(x[index:index+lookahead]) < mx {
				peaks = append(peaks, mxPos)
				if !found {
					found, firstIsPeak = true, true
				}
				mx, mn = math.Inf(1), math.Inf(1)
				if index+lookahead >= length {
					break
				}
				continue
			}
		}

		if y > mn+delta && !math.IsInf(mn, -1) {
			if floats.Min(x[index:index+lookahead]) > mn {
				troughs = append(troughs, mnPos)
				if !found {
					found, firstIsPeak = true, false
				}
				mn, mx = math.Inf(-1), math.Inf(-1)
				if index+lookahead >= length {
					break
				}
			}
		}
	}

	if found {
		if firstIsPeak {
			peaks = peaks[1:]
		} else {
			troughs = troughs[1:]
		}
	}
	return peaks, troughs
}
