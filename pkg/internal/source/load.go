package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeydtaylor/respira/pkg/internal/codec"
	"github.com/joeydtaylor/respira/pkg/internal/types"
)

// LoadOptions controls how Load resolves and decodes an input.
type LoadOptions struct {
	// SamplingRate is used for text and parquet inputs, which carry no rate of their own.
	SamplingRate int
	// Fetcher serves s3:// inputs.
	Fetcher ObjectFetcher
	// Stdin is read when the input is "-".
	Stdin io.Reader
}

// Load reads a signal from a local path, "-" or an s3:// uri.
// A trailing .gz, .sz, .zst, .br or .lz4 suffix is decompressed first; the remaining
// extension picks the format: .parquet, .rsp or .bin frames, anything else is text.
func Load(ctx context.Context, uri string, opts LoadOptions) (types.Signal, error) {
	data, err := readAll(ctx, uri, opts)
	if err != nil {
		return types.Signal{}, err
	}

	name := uri
	if algo, ok := codec.CompressionForExtension(filepath.Ext(name)); ok {
		data, err = codec.Decompress(data, algo)
		if err != nil {
			return types.Signal{}, fmt.Errorf("source: decompress %s: %w", uri, err)
		}
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".rsp", ".bin":
		sig, err := codec.NewSignalDecoder().Decode(bytes.NewReader(data))
		if err != nil {
			return types.Signal{}, fmt.Errorf("source: decode frame %s: %w", uri, err)
		}
		if sig.SamplingRate == 0 {
			sig.SamplingRate = opts.SamplingRate
		}
		return sig, nil
	case ".parquet":
		_, samples, err := ReadParquet(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return types.Signal{}, err
		}
		return types.Signal{SamplingRate: opts.SamplingRate, Samples: samples}, nil
	default:
		samples, err := ReadText(bytes.NewReader(data))
		if err != nil {
			return types.Signal{}, err
		}
		return types.Signal{SamplingRate: opts.SamplingRate, Samples: samples}, nil
	}
}

func readAll(ctx context.Context, uri string, opts LoadOptions) ([]byte, error) {
	switch {
	case uri == "":
		return nil, errors.New("source: empty input")
	case uri == "-":
		if opts.Stdin == nil {
			return nil, errors.New("source: stdin requested but not provided")
		}
		return io.ReadAll(opts.Stdin)
	case strings.HasPrefix(uri, "s3://"):
		if opts.Fetcher == nil {
			return nil, fmt.Errorf("source: %s needs an s3 fetcher", uri)
		}
		bucket, key, err := ParseS3URI(uri)
		if err != nil {
			return nil, err
		}
		return opts.Fetcher.Fetch(ctx, bucket, key)
	default:
		data, err := os.ReadFile(uri)
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		return data, nil
	}
}
