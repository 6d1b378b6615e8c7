package kafkaclient

// SignalMessage is one recording submitted for landmark detection. Zero or empty fields fall back
// to the worker's detector defaults.
type SignalMessage struct {
	ID           string    `json:"id"`
	SamplingRate int       `json:"sampling_rate,omitempty"`
	Method       string    `json:"method,omitempty"`
	AmplitudeMin *float64  `json:"amplitude_min,omitempty"`
	Samples      []float64 `json:"samples"`
}

// LandmarksMessage answers a SignalMessage.
type LandmarksMessage struct {
	ID      string `json:"id"`
	Method  string `json:"method"`
	Peaks   []int  `json:"RSP_Peaks"`
	Troughs []int  `json:"RSP_Troughs"`
}

// FailureMessage is published to the dead letter topic when a message cannot be answered.
type FailureMessage struct {
	ID        string `json:"id,omitempty"`
	Method    string `json:"method,omitempty"`
	Error     string `json:"error"`
	Topic     string `json:"topic"`
	Partition int    `json:"partition"`
	Offset    int64  `json:"offset"`
}
