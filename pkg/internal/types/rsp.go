package types

import "context"

// Method names a landmark detection strategy. Names are matched case-insensitively.
type Method string

const (
	MethodKhodadad2018 Method = "khodadad2018"
	MethodBiosppy      Method = "biosppy"
	MethodScipy        Method = "scipy"
	MethodNoto2018     Method = "noto2018"
)

// Landmarks holds the detected exhalation onsets (peaks) and inhalation onsets (troughs) as sample
// indices into the analysed signal.
type Landmarks struct {
	Peaks   []int `json:"RSP_Peaks"`
	Troughs []int `json:"RSP_Troughs"`
}

// Len returns the number of peak/trough pairs.
func (l Landmarks) Len() int {
	return min(len(l.Peaks), len(l.Troughs))
}

// DetectorConfig carries every tunable of a Detector. Fields a strategy does not use are ignored.
type DetectorConfig struct {
	Method          Method  // Strategy to run.
	AmplitudeMin    float64 // Outlier threshold relative to the median neighbour amplitude gap (khodadad2018).
	SamplingRate    int     // Hz; converts sample distances to seconds (biosppy, scipy).
	MinBreathPeriod float64 // Seconds; peak intervals below this are dropped (biosppy).
	PeakDistance    float64 // Seconds between peaks (scipy).
	PeakProminence  float64 // Minimal peak prominence (scipy).
	Delta           float64 // Minimal excursion confirming an extremum (noto2018).
	Lookahead       int     // Samples scanned past a candidate extremum (noto2018).
}

// Detector finds respiration landmarks in a cleaned signal.
type Detector interface {
	FindPeaks(ctx context.Context, signal []float64) (Landmarks, error)
	Validate() error
	GetConfig() DetectorConfig
	SetMethod(Method)
	SetAmplitudeMin(float64)
	SetSamplingRate(int)
	SetMinBreathPeriod(float64)
	SetPeakDistance(float64)
	SetPeakProminence(float64)
	SetDelta(float64)
	SetLookahead(int)
	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	Freeze()
}
