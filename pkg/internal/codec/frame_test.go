package codec_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/joeydtaylor/respira/pkg/internal/codec"
	"github.com/joeydtaylor/respira/pkg/internal/types"
)

func TestSignalFrame(t *testing.T) {
	in := types.Signal{ID: 42, SamplingRate: 250, Samples: []float64{-0.5, 0, 0.25, 1e-9}}

	var buf bytes.Buffer
	if err := codec.NewSignalEncoder().Encode(&buf, in); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if buf.Len() != 4+8+4+8*len(in.Samples) {
		t.Fatalf("unexpected frame size %d", buf.Len())
	}

	out, err := codec.NewSignalDecoder().Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != 42 || out.SamplingRate != 250 || len(out.Samples) != 4 || out.Samples[3] != 1e-9 {
		t.Fatalf("unexpected signal: %+v", out)
	}
}

func TestSignalFrameRejectsBadLength(t *testing.T) {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, int32(1))
	_ = binary.Write(&buf, binary.LittleEndian, float64(100))
	_ = binary.Write(&buf, binary.LittleEndian, int32(-3))

	if _, err := codec.NewSignalDecoder().Decode(&buf); err == nil {
		t.Fatalf("expected error for negative length")
	}
}

func TestSignalFrameTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := codec.NewSignalEncoder().Encode(&buf, types.Signal{SamplingRate: 100, Samples: []float64{1, 2, 3}}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-4])
	if _, err := codec.NewSignalDecoder().Decode(truncated); err == nil {
		t.Fatalf("expected error for truncated frame")
	}
}

func TestLandmarksFrame(t *testing.T) {
	in := types.Landmarks{Peaks: []int{174, 274}, Troughs: []int{124, 224}}

	var buf bytes.Buffer
	if err := codec.NewLandmarksEncoder().Encode(&buf, in); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := codec.NewLandmarksDecoder().Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Peaks) != 2 || out.Peaks[1] != 274 || out.Troughs[0] != 124 {
		t.Fatalf("unexpected landmarks: %+v", out)
	}
}

func TestLandmarksFrameRejectsUnequalLengths(t *testing.T) {
	var buf bytes.Buffer
	err := codec.NewLandmarksEncoder().Encode(&buf, types.Landmarks{Peaks: []int{1}, Troughs: nil})
	if err == nil {
		t.Fatalf("expected error for unequal lengths")
	}
}
