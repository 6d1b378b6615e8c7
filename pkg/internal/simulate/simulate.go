// Package simulate produces deterministic synthetic respiration signals.
package simulate

import (
	"math"
	"math/rand/v2"
)

// Sine returns n samples of amplitude*sin(2*pi*t/period + phase).
func Sine(n int, period, amplitude, phase float64) []float64 {
	out := make([]float64, n)
	for t := range out {
		out[t] = amplitude * math.Sin(2*math.Pi*float64(t)/period+phase)
	}
	return out
}

// Cycles concatenates full breathing cycles with the given lengths in samples. Each cycle starts at
// the end of an exhalation: the signal falls to its trough, rises through zero to its peak and
// returns towards zero. Samples sit at half-sample offsets so none lands exactly on zero.
func Cycles(amplitude float64, periods ...int) []float64 {
	total := 0
	for _, p := range periods {
		total += p
	}
	out := make([]float64, 0, total)
	for _, p := range periods {
		for t := 0; t < p; t++ {
			out = append(out, -amplitude*math.Sin(2*math.Pi*(float64(t)+0.5)/float64(p)))
		}
	}
	return out
}

// Ramp returns n samples moving linearly from start to end.
func Ramp(n int, start, end float64) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// InjectWiggle returns a copy of signal with a tiny sign flip at index at: signal[at] becomes
// -magnitude and signal[at+1] becomes +magnitude. Out-of-range indices leave the copy unchanged.
func InjectWiggle(signal []float64, at int, magnitude float64) []float64 {
	out := append([]float64(nil), signal...)
	if at < 0 || at+1 >= len(out) {
		return out
	}
	out[at] = -magnitude
	out[at+1] = magnitude
	return out
}

// BreathingOptions shapes a Breathing signal.
type BreathingOptions struct {
	Amplitude   float64 // Peak amplitude; 1 when zero.
	Variability float64 // Relative jitter of each cycle length, e.g. 0.1 for +-10%.
	Noise       float64 // Standard deviation of additive gaussian noise.
	Seed        uint64
}

// Breathing simulates duration seconds of respiration at rate breaths per minute, sampled at
// samplingRate Hz. Output is deterministic for a given seed.
func Breathing(duration float64, samplingRate int, rate float64, opts BreathingOptions) []float64 {
	if duration <= 0 || samplingRate <= 0 || rate <= 0 {
		return []float64{}
	}
	amplitude := opts.Amplitude
	if amplitude == 0 {
		amplitude = 1
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	total := int(duration * float64(samplingRate))
	base := 60 / rate * float64(samplingRate)

	periods := make([]int, 0, int(duration*rate/60)+1)
	for sum := 0; sum < total; {
		p := int(math.Round(base * (1 + opts.Variability*(2*rng.Float64()-1))))
		if p < 4 {
			p = 4
		}
		periods = append(periods, p)
		sum += p
	}

	out := Cycles(amplitude, periods...)[:total]
	if opts.Noise > 0 {
		for i := range out {
			out[i] += rng.NormFloat64() * opts.Noise
		}
	}
	return out
}
