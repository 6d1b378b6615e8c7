package source

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/joeydtaylor/respira/pkg/internal/types"
	parquet "github.com/parquet-go/parquet-go"
)

// LandmarkRow is one landmark in a landmarks parquet file.
type LandmarkRow struct {
	Pair  int32  `parquet:"pair"`
	Kind  string `parquet:"kind"`
	Index int64  `parquet:"index"`
}

const (
	KindTrough = "trough"
	KindPeak   = "peak"
)

// ReadParquet returns the preferred respiration column of a parquet file and its name.
func ReadParquet(ra io.ReaderAt, size int64) (string, []float64, error) {
	f, err := parquet.OpenFile(ra, size)
	if err != nil {
		return "", nil, fmt.Errorf("source: open parquet: %w", err)
	}

	schema := f.Schema()
	for _, name := range ChannelNames {
		leaf, ok := schema.Lookup(name)
		if !ok {
			continue
		}
		samples, err := readFloatColumn(f, leaf.ColumnIndex)
		if err != nil {
			return "", nil, fmt.Errorf("source: column %s: %w", name, err)
		}
		if len(samples) == 0 {
			return name, nil, ErrEmptySignal
		}
		return name, samples, nil
	}

	names := make([]string, 0)
	for _, path := range schema.Columns() {
		names = append(names, strings.Join(path, "."))
	}
	sort.Strings(names)
	return "", nil, fmt.Errorf("%w (columns: %s)", ErrNoChannel, strings.Join(names, ", "))
}

func readFloatColumn(f *parquet.File, column int) ([]float64, error) {
	out := make([]float64, 0, f.NumRows())
	buf := make([]parquet.Value, 1024)

	for _, rg := range f.RowGroups() {
		pages := rg.ColumnChunks()[column].Pages()
		for {
			page, err := pages.ReadPage()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				_ = pages.Close()
				return nil, err
			}

			values := page.Values()
			for {
				n, err := values.ReadValues(buf)
				for _, v := range buf[:n] {
					x, convErr := valueToFloat(v)
					if convErr != nil {
						_ = pages.Close()
						return nil, convErr
					}
					out = append(out, x)
				}
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					_ = pages.Close()
					return nil, err
				}
			}
		}
		if err := pages.Close(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func valueToFloat(v parquet.Value) (float64, error) {
	if v.IsNull() {
		return math.NaN(), nil
	}
	switch v.Kind() {
	case parquet.Double:
		return v.Double(), nil
	case parquet.Float:
		return float64(v.Float()), nil
	case parquet.Int32:
		return float64(v.Int32()), nil
	case parquet.Int64:
		return float64(v.Int64()), nil
	default:
		return 0, fmt.Errorf("unsupported parquet kind %s", v.Kind())
	}
}

// WriteLandmarksParquet writes landmarks as rows ordered by sample index.
func WriteLandmarksParquet(w io.Writer, l types.Landmarks) error {
	rows := make([]LandmarkRow, 0, len(l.Peaks)+len(l.Troughs))
	for i := 0; i < len(l.Peaks) || i < len(l.Troughs); i++ {
		if i < len(l.Troughs) {
			rows = append(rows, LandmarkRow{Pair: int32(i), Kind: KindTrough, Index: int64(l.Troughs[i])})
		}
		if i < len(l.Peaks) {
			rows = append(rows, LandmarkRow{Pair: int32(i), Kind: KindPeak, Index: int64(l.Peaks[i])})
		}
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Index < rows[b].Index })

	pw := parquet.NewGenericWriter[LandmarkRow](w)
	if _, err := pw.Write(rows); err != nil {
		_ = pw.Close()
		return fmt.Errorf("source: write landmarks: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("source: close landmarks writer: %w", err)
	}
	return nil
}

// ReadLandmarksParquet reads a file written by WriteLandmarksParquet.
func ReadLandmarksParquet(ra io.ReaderAt) (types.Landmarks, error) {
	gr := parquet.NewGenericReader[LandmarkRow](ra)
	defer gr.Close()

	l := types.Landmarks{Peaks: []int{}, Troughs: []int{}}
	batch := make([]LandmarkRow, 256)
	for {
		n, err := gr.Read(batch)
		for _, row := range batch[:n] {
			switch row.Kind {
			case KindPeak:
				l.Peaks = append(l.Peaks, int(row.Index))
			case KindTrough:
				l.Troughs = append(l.Troughs, int(row.Index))
			default:
				return l, fmt.Errorf("source: unknown landmark kind %q", row.Kind)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return l, err
		}
	}
	return l, nil
}
