package builder

import (
	"context"

	"github.com/joeydtaylor/respira/pkg/internal/rsp"
	"github.com/joeydtaylor/respira/pkg/internal/types"
)

type (
	Landmarks      = types.Landmarks
	Method         = types.Method
	DetectorConfig = types.DetectorConfig
	Detector       = types.Detector
	Signal         = types.Signal
	ConfigError    = rsp.ConfigError
)

const (
	MethodKhodadad2018 = types.MethodKhodadad2018
	MethodBiosppy      = types.MethodBiosppy
	MethodScipy        = types.MethodScipy
	MethodNoto2018     = types.MethodNoto2018
)

var (
	ErrNoZeroCrossing   = rsp.ErrNoZeroCrossing
	ErrTooFewExtrema    = rsp.ErrTooFewExtrema
	ErrUnknownMethod    = rsp.ErrUnknownMethod
	ErrInvalidParameter = rsp.ErrInvalidParameter
)

// NewDetector creates a landmark detector; defaults run khodadad2018 with amplitude_min 0.3.
func NewDetector(options ...types.Option[types.Detector]) types.Detector {
	return rsp.NewDetector(options...)
}

// FindPeaks runs a one-off detector over signal.
func FindPeaks(ctx context.Context, signal []float64, options ...types.Option[types.Detector]) (Landmarks, error) {
	return rsp.NewDetector(options...).FindPeaks(ctx, signal)
}

// DefaultDetectorConfig returns the configuration of a detector built without options.
func DefaultDetectorConfig() DetectorConfig {
	return rsp.DefaultConfig()
}

// ValidateDetectorConfig reports the first invalid setting and the resolved method.
func ValidateDetectorConfig(cfg DetectorConfig) (Method, error) {
	return rsp.ValidateConfig(cfg)
}

// Methods lists the canonical method names.
func Methods() []Method {
	return rsp.Methods()
}

// ParseMethod resolves a case-insensitive method name or alias.
func ParseMethod(name string) (Method, error) {
	return rsp.ParseMethod(name)
}

// LocateExtrema returns the alternating extrema between zero crossings.
func LocateExtrema(signal []float64) ([]int, error) {
	return rsp.LocateExtrema(signal)
}

// RemoveOutliers drops low-amplitude extrema and repairs alternation.
func RemoveOutliers(signal []float64, extrema []int, amplitudeMin float64) ([]int, []float64) {
	return rsp.RemoveOutliers(signal, extrema, amplitudeMin)
}

// SanitizeExtrema trims extrema to trough-first, peak-last pairs.
func SanitizeExtrema(extrema []int, amplitudes []float64) (peaks, troughs []int, err error) {
	return rsp.Sanitize(extrema, amplitudes)
}

// FilterRate drops pairs whose peak interval is shorter than minPeriod seconds.
func FilterRate(peaks, troughs []int, samplingRate int, minPeriod float64) ([]int, []int, int) {
	return rsp.FilterRate(peaks, troughs, samplingRate, minPeriod)
}

func DetectorWithMethod(name string) types.Option[types.Detector] {
	return rsp.WithMethod(name)
}

func DetectorWithAmplitudeMin(v float64) types.Option[types.Detector] {
	return rsp.WithAmplitudeMin(v)
}

func DetectorWithSamplingRate(hz int) types.Option[types.Detector] {
	return rsp.WithSamplingRate(hz)
}

func DetectorWithMinBreathPeriod(seconds float64) types.Option[types.Detector] {
	return rsp.WithMinBreathPeriod(seconds)
}

func DetectorWithPeakDistance(seconds float64) types.Option[types.Detector] {
	return rsp.WithPeakDistance(seconds)
}

func DetectorWithPeakProminence(v float64) types.Option[types.Detector] {
	return rsp.WithPeakProminence(v)
}

func DetectorWithDelta(v float64) types.Option[types.Detector] {
	return rsp.WithDelta(v)
}

func DetectorWithLookahead(samples int) types.Option[types.Detector] {
	return rsp.WithLookahead(samples)
}

func DetectorWithConfig(cfg DetectorConfig) types.Option[types.Detector] {
	return rsp.WithConfig(cfg)
}

func DetectorWithLogger(l ...types.Logger) types.Option[types.Detector] {
	return rsp.WithLogger(l...)
}

func DetectorWithSensor(s ...types.Sensor) types.Option[types.Detector] {
	return rsp.WithSensor(s...)
}

func DetectorWithComponentMetadata(name string, id string) types.Option[types.Detector] {
	return rsp.WithComponentMetadata(name, id)
}
