package codec

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/joeydtaylor/respira/pkg/internal/types"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

var compressionNames = map[string]types.CompressionAlgorithm{
	"":        types.CompressNone,
	"none":    types.CompressNone,
	"deflate": types.CompressDeflate,
	"gzip":    types.CompressDeflate,
	"snappy":  types.CompressSnappy,
	"zstd":    types.CompressZstd,
	"brotli":  types.CompressBrotli,
	"lz4":     types.CompressLZ4,
}

// extensionCompression maps file suffixes to the algorithm that wrote them.
var extensionCompression = map[string]types.CompressionAlgorithm{
	".gz":  types.CompressDeflate,
	".sz":  types.CompressSnappy,
	".zst": types.CompressZstd,
	".br":  types.CompressBrotli,
	".lz4": types.CompressLZ4,
}

// ParseCompression resolves a case-insensitive algorithm name.
func ParseCompression(name string) (types.CompressionAlgorithm, error) {
	algo, ok := compressionNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return types.CompressNone, fmt.Errorf("codec: unknown compression %q (want none, deflate, snappy, zstd, brotli or lz4)", name)
	}
	return algo, nil
}

// CompressionForExtension reports the algorithm implied by a file suffix such as ".zst".
func CompressionForExtension(ext string) (types.CompressionAlgorithm, bool) {
	algo, ok := extensionCompression[strings.ToLower(ext)]
	return algo, ok
}

// Compress encodes data with algorithm. CompressNone returns data unchanged.
func Compress(data []byte, algorithm types.CompressionAlgorithm) ([]byte, error) {
	var b bytes.Buffer
	var w io.WriteCloser

	switch algorithm {
	case types.CompressDeflate:
		w = gzip.NewWriter(&b)
	case types.CompressSnappy:
		w = snappy.NewBufferedWriter(&b)
	case types.CompressZstd:
		var err error
		w, err = zstd.NewWriter(&b)
		if err != nil {
			return nil, err
		}
	case types.CompressBrotli:
		w = brotli.NewWriterLevel(&b, brotli.BestCompression)
	case types.CompressLZ4:
		w = lz4.NewWriter(&b)
	default:
		return data, nil
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte, algorithm types.CompressionAlgorithm) ([]byte, error) {
	var b bytes.Buffer
	var r io.Reader

	switch algorithm {
	case types.CompressDeflate:
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	case types.CompressSnappy:
		r = snappy.NewReader(bytes.NewReader(data))
	case types.CompressZstd:
		dec, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
	case types.CompressBrotli:
		r = brotli.NewReader(bytes.NewReader(data))
	case types.CompressLZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	default:
		return data, nil
	}

	if _, err := io.Copy(&b, r); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
