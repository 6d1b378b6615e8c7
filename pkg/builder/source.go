package builder

import (
	"context"
	"io"

	"github.com/joeydtaylor/respira/pkg/internal/source"
)

type (
	LoadOptions   = source.LoadOptions
	ObjectFetcher = source.ObjectFetcher
)

// ChannelNames lists the accepted signal columns in order of preference.
var ChannelNames = source.ChannelNames

// LoadSignal reads a recording from a path, "-" or an s3:// uri.
func LoadSignal(ctx context.Context, uri string, opts LoadOptions) (Signal, error) {
	return source.Load(ctx, uri, opts)
}

// ReadTextSignal parses one sample per line or a CSV table with a respiration column.
func ReadTextSignal(r io.Reader) ([]float64, error) {
	return source.ReadText(r)
}

// ReadParquetSignal returns the respiration column of a parquet file and its name.
func ReadParquetSignal(ra io.ReaderAt, size int64) (string, []float64, error) {
	return source.ReadParquet(ra, size)
}

// WriteLandmarksParquet writes landmarks as (pair, kind, index) rows.
func WriteLandmarksParquet(w io.Writer, l Landmarks) error {
	return source.WriteLandmarksParquet(w, l)
}

// ReadLandmarksParquet reads rows written by WriteLandmarksParquet.
func ReadLandmarksParquet(ra io.ReaderAt) (Landmarks, error) {
	return source.ReadLandmarksParquet(ra)
}

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(uri string) (string, string, error) {
	return source.ParseS3URI(uri)
}
