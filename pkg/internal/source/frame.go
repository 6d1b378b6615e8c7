package source

import (
	"bytes"
	"fmt"
	"io"

	"github.com/joeydtaylor/respira/pkg/internal/codec"
	"github.com/joeydtaylor/respira/pkg/internal/types"
)

// ReadFrame reads a whole, possibly compressed, binary signal frame.
func ReadFrame(r io.Reader, algo types.CompressionAlgorithm) (types.Signal, error) {
	raw, err := codec.NewBinaryDecoder().Decode(r)
	if err != nil {
		return types.Signal{}, fmt.Errorf("source: read frame: %w", err)
	}
	data, err := codec.Decompress(raw, algo)
	if err != nil {
		return types.Signal{}, fmt.Errorf("source: decompress frame: %w", err)
	}
	sig, err := codec.NewSignalDecoder().Decode(bytes.NewReader(data))
	if err != nil {
		return types.Signal{}, fmt.Errorf("source: decode frame: %w", err)
	}
	return sig, nil
}

// WriteFrame writes sig as a binary frame compressed with algo.
func WriteFrame(w io.Writer, sig types.Signal, algo types.CompressionAlgorithm) error {
	var buf bytes.Buffer
	if err := codec.NewSignalEncoder().Encode(&buf, sig); err != nil {
		return fmt.Errorf("source: encode frame: %w", err)
	}
	data, err := codec.Compress(buf.Bytes(), algo)
	if err != nil {
		return fmt.Errorf("source: compress frame: %w", err)
	}
	_, err = w.Write(data)
	return err
}
