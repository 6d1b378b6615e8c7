package builder

import (
	"github.com/joeydtaylor/respira/pkg/internal/codec"
	"github.com/joeydtaylor/respira/pkg/internal/types"
)

type CompressionAlgorithm = types.CompressionAlgorithm

const (
	CompressNone    = types.CompressNone
	CompressDeflate = types.CompressDeflate
	CompressSnappy  = types.CompressSnappy
	CompressZstd    = types.CompressZstd
	CompressBrotli  = types.CompressBrotli
	CompressLZ4     = types.CompressLZ4
)

// NewJSONEncoder creates a new JSONEncoder.
func NewJSONEncoder[T any]() *codec.JSONEncoder[T] {
	return &codec.JSONEncoder[T]{}
}

// NewJSONDecoder creates a new JSONDecoder.
func NewJSONDecoder[T any]() *codec.JSONDecoder[T] {
	return &codec.JSONDecoder[T]{}
}

// NewLineEncoder creates a new LineEncoder.
func NewLineEncoder[T any]() *codec.LineEncoder[T] {
	return &codec.LineEncoder[T]{}
}

func NewSignalEncoder() *codec.SignalEncoder       { return codec.NewSignalEncoder() }
func NewSignalDecoder() *codec.SignalDecoder       { return codec.NewSignalDecoder() }
func NewLandmarksEncoder() *codec.LandmarksEncoder { return codec.NewLandmarksEncoder() }
func NewLandmarksDecoder() *codec.LandmarksDecoder { return codec.NewLandmarksDecoder() }

// ParseCompression resolves a case-insensitive algorithm name.
func ParseCompression(name string) (CompressionAlgorithm, error) {
	return codec.ParseCompression(name)
}
