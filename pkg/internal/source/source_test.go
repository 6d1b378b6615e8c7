package source_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/joeydtaylor/respira/pkg/internal/codec"
	"github.com/joeydtaylor/respira/pkg/internal/source"
	"github.com/joeydtaylor/respira/pkg/internal/types"
	parquet "github.com/parquet-go/parquet-go"
)

func assertSamples(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d samples %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReadTextSingleColumn(t *testing.T) {
	got, err := source.ReadText(strings.NewReader("0.1\n0.2\n# comment\n\n-0.3\n"))
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	assertSamples(t, got, []float64{0.1, 0.2, -0.3})
}

func TestReadTextHeaderPrefersClean(t *testing.T) {
	in := ",RSP_Raw,RSP_Clean\n0,1.0,2.0\n1,1.5,2.5\n"
	got, err := source.ReadText(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	assertSamples(t, got, []float64{2.0, 2.5})
}

func TestReadTextMissingValuesBecomeNaN(t *testing.T) {
	got, err := source.ReadText(strings.NewReader("RSP\n1\nnan\n\"\"\n"))
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if len(got) != 3 || got[0] != 1 || !math.IsNaN(got[1]) || !math.IsNaN(got[2]) {
		t.Fatalf("got %v, want [1 NaN NaN]", got)
	}
}

func TestReadTextErrors(t *testing.T) {
	if _, err := source.ReadText(strings.NewReader("a,b\n1,2\n")); !errors.Is(err, source.ErrNoChannel) {
		t.Fatalf("expected ErrNoChannel, got %v", err)
	}
	if _, err := source.ReadText(strings.NewReader("")); !errors.Is(err, source.ErrEmptySignal) {
		t.Fatalf("expected ErrEmptySignal, got %v", err)
	}
	if _, err := source.ReadText(strings.NewReader("1,2\n3,4\n")); err == nil {
		t.Fatalf("expected error for headerless multi-column input")
	}
	if _, err := source.ReadText(strings.NewReader("1\nabc\n")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSelectChannelListsColumns(t *testing.T) {
	_, _, err := source.SelectChannel(map[string][]float64{"ECG": nil, "EDA": nil})
	if !errors.Is(err, source.ErrNoChannel) {
		t.Fatalf("expected ErrNoChannel, got %v", err)
	}
	if !strings.Contains(err.Error(), "ECG, EDA") {
		t.Fatalf("error should list columns: %v", err)
	}
}

type rawRow struct {
	Time    int64   `parquet:"time"`
	RSP_Raw float64 `parquet:"RSP_Raw"`
}

type ecgRow struct {
	ECG float64 `parquet:"ECG"`
}

func writeParquet[T any](t *testing.T, rows []T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := parquet.NewGenericWriter[T](&buf)
	if _, err := w.Write(rows); err != nil {
		t.Fatalf("write parquet: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close parquet: %v", err)
	}
	return buf.Bytes()
}

func TestReadParquet(t *testing.T) {
	data := writeParquet(t, []rawRow{{0, 0.5}, {1, -0.25}, {2, 1}})

	name, got, err := source.ReadParquet(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("ReadParquet: %v", err)
	}
	if name != "RSP_Raw" {
		t.Fatalf("column: got %q, want RSP_Raw", name)
	}
	assertSamples(t, got, []float64{0.5, -0.25, 1})
}

func TestReadParquetNoChannel(t *testing.T) {
	data := writeParquet(t, []ecgRow{{1}, {2}})
	_, _, err := source.ReadParquet(bytes.NewReader(data), int64(len(data)))
	if !errors.Is(err, source.ErrNoChannel) {
		t.Fatalf("expected ErrNoChannel, got %v", err)
	}
	if !strings.Contains(err.Error(), "ECG") {
		t.Fatalf("error should list columns: %v", err)
	}
}

func TestLandmarksParquetRoundTrip(t *testing.T) {
	want := types.Landmarks{Peaks: []int{174, 274}, Troughs: []int{124, 224}}

	var buf bytes.Buffer
	if err := source.WriteLandmarksParquet(&buf, want); err != nil {
		t.Fatalf("WriteLandmarksParquet: %v", err)
	}
	got, err := source.ReadLandmarksParquet(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadLandmarksParquet: %v", err)
	}
	if len(got.Peaks) != 2 || got.Peaks[0] != 174 || got.Peaks[1] != 274 {
		t.Fatalf("peaks: got %v", got.Peaks)
	}
	if len(got.Troughs) != 2 || got.Troughs[0] != 124 || got.Troughs[1] != 224 {
		t.Fatalf("troughs: got %v", got.Troughs)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	sig := types.Signal{ID: 3, SamplingRate: 250, Samples: []float64{0, 1, 0, -1}}

	for _, algo := range []types.CompressionAlgorithm{types.CompressNone, types.CompressZstd, types.CompressSnappy} {
		var buf bytes.Buffer
		if err := source.WriteFrame(&buf, sig, algo); err != nil {
			t.Fatalf("WriteFrame(%d): %v", algo, err)
		}
		got, err := source.ReadFrame(&buf, algo)
		if err != nil {
			t.Fatalf("ReadFrame(%d): %v", algo, err)
		}
		if got.ID != 3 || got.SamplingRate != 250 {
			t.Fatalf("header: got %+v", got)
		}
		assertSamples(t, got.Samples, sig.Samples)
	}
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := source.ParseS3URI("s3://recordings/subject-1/rsp.csv.gz")
	if err != nil {
		t.Fatalf("ParseS3URI: %v", err)
	}
	if bucket != "recordings" || key != "subject-1/rsp.csv.gz" {
		t.Fatalf("got %q %q", bucket, key)
	}

	for _, bad := range []string{"recordings/rsp.csv", "s3://recordings", "s3:///rsp.csv", "s3://recordings/"} {
		if _, _, err := source.ParseS3URI(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

type stubS3 struct {
	calls    int32
	failures int32
	err      error
	body     string
}

func (s *stubS3) GetObject(ctx context.Context, in *s3api.GetObjectInput, _ ...func(*s3api.Options)) (*s3api.GetObjectOutput, error) {
	n := atomic.AddInt32(&s.calls, 1)
	if n <= s.failures {
		return nil, s.err
	}
	return &s3api.GetObjectOutput{Body: io.NopCloser(strings.NewReader(s.body))}, nil
}

func TestS3FetcherRetriesTransientErrors(t *testing.T) {
	stub := &stubS3{failures: 2, err: errors.New("slow down"), body: "1\n2\n"}
	f := source.NewS3Fetcher(stub, source.WithFetchBackoff(time.Millisecond, 2*time.Millisecond))

	data, err := f.Fetch(context.Background(), "b", "k")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "1\n2\n" {
		t.Fatalf("body: got %q", data)
	}
	if got := atomic.LoadInt32(&stub.calls); got != 3 {
		t.Fatalf("calls: got %d, want 3", got)
	}
}

func TestS3FetcherDoesNotRetryMissingKey(t *testing.T) {
	stub := &stubS3{failures: 10, err: &s3types.NoSuchKey{}}
	f := source.NewS3Fetcher(stub, source.WithFetchBackoff(time.Millisecond, 2*time.Millisecond))

	_, err := f.Fetch(context.Background(), "b", "missing")
	var missing *s3types.NoSuchKey
	if !errors.As(err, &missing) {
		t.Fatalf("expected NoSuchKey, got %v", err)
	}
	if got := atomic.LoadInt32(&stub.calls); got != 1 {
		t.Fatalf("calls: got %d, want 1", got)
	}
}

func TestS3FetcherGivesUp(t *testing.T) {
	stub := &stubS3{failures: 10, err: errors.New("unavailable")}
	f := source.NewS3Fetcher(stub,
		source.WithFetchAttempts(2),
		source.WithFetchBackoff(time.Millisecond, 2*time.Millisecond))

	_, err := f.Fetch(context.Background(), "b", "k")
	if err == nil || !strings.Contains(err.Error(), "unavailable") {
		t.Fatalf("expected last error, got %v", err)
	}
	if got := atomic.LoadInt32(&stub.calls); got != 2 {
		t.Fatalf("calls: got %d, want 2", got)
	}
}

type mapFetcher map[string][]byte

func (m mapFetcher) Fetch(_ context.Context, bucket, key string) ([]byte, error) {
	data, ok := m[bucket+"/"+key]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("gzip: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestLoadLocalCompressedText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rsp.csv.gz")
	if err := os.WriteFile(path, gzipBytes(t, []byte("RSP_Clean\n0.5\n-0.5\n")), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	sig, err := source.Load(context.Background(), path, source.LoadOptions{SamplingRate: 100})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sig.SamplingRate != 100 {
		t.Fatalf("rate: got %d, want 100", sig.SamplingRate)
	}
	assertSamples(t, sig.Samples, []float64{0.5, -0.5})
}

func TestLoadStdin(t *testing.T) {
	sig, err := source.Load(context.Background(), "-", source.LoadOptions{
		SamplingRate: 50,
		Stdin:        strings.NewReader("1\n2\n3\n"),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSamples(t, sig.Samples, []float64{1, 2, 3})

	if _, err := source.Load(context.Background(), "-", source.LoadOptions{}); err == nil {
		t.Fatalf("expected error without stdin")
	}
}

func TestLoadS3ParquetAndFrame(t *testing.T) {
	var frame bytes.Buffer
	if err := codec.NewSignalEncoder().Encode(&frame, types.Signal{ID: 9, SamplingRate: 25, Samples: []float64{4, 5}}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	fetcher := mapFetcher{
		"b/rsp.parquet": writeParquet(t, []rawRow{{0, 7}, {1, 8}}),
		"b/rsp.rsp":     frame.Bytes(),
	}
	opts := source.LoadOptions{SamplingRate: 1000, Fetcher: fetcher}

	sig, err := source.Load(context.Background(), "s3://b/rsp.parquet", opts)
	if err != nil {
		t.Fatalf("Load parquet: %v", err)
	}
	if sig.SamplingRate != 1000 {
		t.Fatalf("parquet rate: got %d", sig.SamplingRate)
	}
	assertSamples(t, sig.Samples, []float64{7, 8})

	sig, err = source.Load(context.Background(), "s3://b/rsp.rsp", opts)
	if err != nil {
		t.Fatalf("Load frame: %v", err)
	}
	if sig.ID != 9 || sig.SamplingRate != 25 {
		t.Fatalf("frame header: got %+v", sig)
	}
	assertSamples(t, sig.Samples, []float64{4, 5})

	if _, err := source.Load(context.Background(), "s3://b/rsp.csv", source.LoadOptions{}); err == nil {
		t.Fatalf("expected error without fetcher")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := source.Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), source.LoadOptions{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}
