package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/joeydtaylor/respira/pkg/internal/types"
)

// maxFrameSamples bounds the sample count accepted from a frame header.
const maxFrameSamples = 1 << 26

// SignalEncoder writes a signal as a little-endian frame:
// id int32, sampling rate float64, n int32, n float64 samples.
type SignalEncoder struct{}

// SignalDecoder reads frames written by SignalEncoder.
type SignalDecoder struct{}

func NewSignalEncoder() *SignalEncoder { return &SignalEncoder{} }
func NewSignalDecoder() *SignalDecoder { return &SignalDecoder{} }

func (e *SignalEncoder) Encode(w io.Writer, s types.Signal) error {
	if err := binary.Write(w, binary.LittleEndian, int32(s.ID)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, float64(s.SamplingRate)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int32(len(s.Samples))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, s.Samples)
}

func (d *SignalDecoder) Decode(r io.Reader) (types.Signal, error) {
	var s types.Signal

	var id int32
	if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
		return s, err
	}
	s.ID = int(id)

	var rate float64
	if err := binary.Read(r, binary.LittleEndian, &rate); err != nil {
		return s, err
	}
	if math.IsNaN(rate) || rate < 0 || rate > math.MaxInt32 {
		return s, fmt.Errorf("codec: invalid sampling rate %v in signal frame", rate)
	}
	s.SamplingRate = int(math.Round(rate))

	n, err := readLength(r)
	if err != nil {
		return s, err
	}
	s.Samples = make([]float64, n)
	if err := binary.Read(r, binary.LittleEndian, s.Samples); err != nil {
		return s, err
	}
	return s, nil
}

// LandmarksEncoder writes landmarks as n int32, n int64 peaks, n int64 troughs.
type LandmarksEncoder struct{}

// LandmarksDecoder reads frames written by LandmarksEncoder.
type LandmarksDecoder struct{}

func NewLandmarksEncoder() *LandmarksEncoder { return &LandmarksEncoder{} }
func NewLandmarksDecoder() *LandmarksDecoder { return &LandmarksDecoder{} }

func (e *LandmarksEncoder) Encode(w io.Writer, l types.Landmarks) error {
	if len(l.Peaks) != len(l.Troughs) {
		return fmt.Errorf("codec: %d peaks and %d troughs cannot share a frame", len(l.Peaks), len(l.Troughs))
	}
	if err := binary.Write(w, binary.LittleEndian, int32(len(l.Peaks))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, toInt64(l.Peaks)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, toInt64(l.Troughs))
}

func (d *LandmarksDecoder) Decode(r io.Reader) (types.Landmarks, error) {
	var l types.Landmarks

	n, err := readLength(r)
	if err != nil {
		return l, err
	}
	peaks := make([]int64, n)
	if err := binary.Read(r, binary.LittleEndian, peaks); err != nil {
		return l, err
	}
	troughs := make([]int64, n)
	if err := binary.Read(r, binary.LittleEndian, troughs); err != nil {
		return l, err
	}
	l.Peaks = fromInt64(peaks)
	l.Troughs = fromInt64(troughs)
	return l, nil
}

func readLength(r io.Reader) (int, error) {
	var n int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return 0, err
	}
	if n < 0 || n > maxFrameSamples {
		return 0, fmt.Errorf("codec: invalid frame length %d", n)
	}
	return int(n), nil
}

func toInt64(v []int) []int64 {
	out := make([]int64, len(v))
	for i, x := range v {
		out[i] = int64(x)
	}
	return out
}

func fromInt64(v []int64) []int {
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}
