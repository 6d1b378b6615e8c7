package rsp

import "github.com/joeydtaylor/respira/pkg/internal/types"

// WithMethod selects the detection strategy by name; the name is validated on use.
func WithMethod(name string) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.SetMethod(types.Method(name))
	}
}

// WithAmplitudeMin sets the relative outlier threshold.
func WithAmplitudeMin(v float64) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.SetAmplitudeMin(v)
	}
}

// WithSamplingRate sets the signal sampling rate in Hz.
func WithSamplingRate(hz int) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.SetSamplingRate(hz)
	}
}

// WithMinBreathPeriod sets the shortest accepted peak interval in seconds.
func WithMinBreathPeriod(seconds float64) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.SetMinBreathPeriod(seconds)
	}
}

// WithPeakDistance sets the minimal peak distance in seconds.
func WithPeakDistance(seconds float64) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.SetPeakDistance(seconds)
	}
}

// WithPeakProminence sets the minimal peak prominence.
func WithPeakProminence(v float64) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.SetPeakProminence(v)
	}
}

// WithDelta sets the excursion that confirms an extremum.
func WithDelta(v float64) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.SetDelta(v)
	}
}

// WithLookahead sets how many samples are scanned past a candidate extremum.
func WithLookahead(samples int) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.SetLookahead(samples)
	}
}

// WithConfig replaces every tunable at once.
func WithConfig(cfg types.DetectorConfig) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.SetMethod(cfg.Method)
		d.SetAmplitudeMin(cfg.AmplitudeMin)
		d.SetSamplingRate(cfg.SamplingRate)
		d.SetMinBreathPeriod(cfg.MinBreathPeriod)
		d.SetPeakDistance(cfg.PeakDistance)
		d.SetPeakProminence(cfg.PeakProminence)
		d.SetDelta(cfg.Delta)
		d.SetLookahead(cfg.Lookahead)
	}
}

// WithLogger attaches loggers.
func WithLogger(l ...types.Logger) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.ConnectLogger(l...)
	}
}

// WithSensor attaches sensors.
func WithSensor(s ...types.Sensor) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.ConnectSensor(s...)
	}
}

// WithComponentMetadata overrides the generated name and id.
func WithComponentMetadata(name string, id string) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.SetComponentMetadata(name, id)
	}
}
