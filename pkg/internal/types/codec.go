package types

import "io"

// Decoder deserializes one object from r.
type Decoder[T any] interface {
	Decode(io.Reader) (T, error)
}

// Encoder serializes one object to w.
type Encoder[T any] interface {
	Encode(io.Writer, T) error
}

// JSONDecoder decodes one or many JSON objects.
type JSONDecoder[T any] interface {
	Decode(io.Reader) (T, error)
	DecodeSlice(r io.Reader) ([]T, error)
}

// JSONEncoder encodes one or many JSON objects.
type JSONEncoder[T any] interface {
	Encode(io.Writer, T) error
	EncodeSlice(w io.Writer, elems []T) error
}

// Signal is a single-channel respiration recording.
type Signal struct {
	ID           int
	SamplingRate int
	Samples      []float64
}

// CompressionAlgorithm selects the compression applied to encoded frames.
type CompressionAlgorithm int

const (
	CompressNone CompressionAlgorithm = iota
	CompressDeflate
	CompressSnappy
	CompressZstd
	CompressBrotli
	CompressLZ4
)
