package builder

import "github.com/joeydtaylor/respira/pkg/internal/simulate"

type BreathingOptions = simulate.BreathingOptions

// SimulateBreathing synthesizes duration seconds of respiration at rate breaths per minute.
func SimulateBreathing(duration float64, samplingRate int, rate float64, opts BreathingOptions) []float64 {
	return simulate.Breathing(duration, samplingRate, rate, opts)
}

// SimulateSine returns n samples of a sine with the given period in samples.
func SimulateSine(n int, period, amplitude, phase float64) []float64 {
	return simulate.Sine(n, period, amplitude, phase)
}

// SimulateCycles concatenates full sine cycles of the given lengths.
func SimulateCycles(amplitude float64, periods ...int) []float64 {
	return simulate.Cycles(amplitude, periods...)
}
