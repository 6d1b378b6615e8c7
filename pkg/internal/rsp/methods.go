package rsp

import (
	"fmt"
	"strings"

	"github.com/joeydtaylor/respira/pkg/internal/types"
)

// trace carries intermediate counts out of a strategy for telemetry.
type trace struct {
	extrema   int
	rateDrops int
}

type strategyFunc func(signal []float64, cfg types.DetectorConfig, tr *trace) (types.Landmarks, error)

var strategies = map[types.Method]strategyFunc{
	types.MethodKhodadad2018: findKhodadad,
	types.MethodBiosppy:      findBiosppy,
	types.MethodScipy:        findScipy,
	types.MethodNoto2018:     findNoto,
}

// methodOrder fixes the order used when listing valid choices.
var methodOrder = []types.Method{
	types.MethodKhodadad2018,
	types.MethodBiosppy,
	types.MethodScipy,
	types.MethodNoto2018,
}

var methodAliases = map[string]types.Method{
	"khodadad": types.MethodKhodadad2018,
	"noto":     types.MethodNoto2018,
}

// Methods returns the canonical method names.
func Methods() []types.Method {
	return append([]types.Method(nil), methodOrder...)
}

// ParseMethod resolves a case-insensitive method name or alias to its canonical form.
func ParseMethod(name string) (types.Method, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if m, ok := methodAliases[key]; ok {
		return m, nil
	}
	if _, ok := strategies[types.Method(key)]; ok {
		return types.Method(key), nil
	}
	return "", &ConfigError{
		Param:  "method",
		Reason: fmt.Sprintf("%q is not one of %s", name, validChoices()),
		Err:    ErrUnknownMethod,
	}
}

func validChoices() string {
	names := make([]string, 0, len(methodOrder)+len(methodAliases))
	for _, m := range methodOrder {
		names = append(names, "'"+string(m)+"'")
	}
	names = append(names, "'khodadad'", "'noto'")
	return strings.Join(names, ", ")
}

func findKhodadad(signal []float64, cfg types.DetectorConfig, tr *trace) (types.Landmarks, error) {
	return extremaPipeline(signal, cfg.AmplitudeMin, tr)
}

func findBiosppy(signal []float64, cfg types.DetectorConfig, tr *trace) (types.Landmarks, error) {
	l, err := extremaPipeline(signal, 0, tr)
	if err != nil {
		return l, err
	}
	peaks, troughs, dropped := FilterRate(l.Peaks, l.Troughs, cfg.SamplingRate, cfg.MinBreathPeriod)
	tr.rateDrops = dropped
	return types.Landmarks{Peaks: peaks, Troughs: troughs}, nil
}

func findScipy(signal []float64, cfg types.DetectorConfig, tr *trace) (types.Landmarks, error) {
	distance := float64(cfg.SamplingRate) * cfg.PeakDistance
	peaks := FindPeaksGeneric(signal, distance, cfg.PeakProminence)
	troughs := FindTroughsGeneric(signal, distance, cfg.PeakProminence)

	extrema := mergeSorted(peaks, troughs)
	tr.extrema = len(extrema)
	return sanitizeExtrema(signal, extrema, 0)
}

func findNoto(signal []float64, cfg types.DetectorConfig, tr *trace) (types.Landmarks, error) {
	peaks, troughs := DetectPeaksTroughs(signal, cfg.Delta, cfg.Lookahead)
	tr.extrema = len(peaks) + len(troughs)
	return types.Landmarks{Peaks: peaks, Troughs: troughs}, nil
}

func extremaPipeline(signal []float64, amplitudeMin float64, tr *trace) (types.Landmarks, error) {
	extrema, err := LocateExtrema(signal)
	if err != nil {
		return types.Landmarks{}, err
	}
	tr.extrema = len(extrema)
	return sanitizeExtrema(signal, extrema, amplitudeMin)
}

func sanitizeExtrema(signal []float64, extrema []int, amplitudeMin float64) (types.Landmarks, error) {
	kept, amplitudes := RemoveOutliers(signal, extrema, amplitudeMin)
	peaks, troughs, err := Sanitize(kept, amplitudes)
	if err != nil {
		return types.Landmarks{}, fmt.Errorf("%d of %d extrema survived outlier removal: %w", len(kept), len(extrema), err)
	}
	return types.Landmarks{Peaks: peaks, Troughs: troughs}, nil
}

// mergeSorted merges two ascending index lists.
func mergeSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
