package builder_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/joeydtaylor/respira/pkg/builder"
)

func TestFindPeaksFacade(t *testing.T) {
	signal := builder.SimulateCycles(1, 100, 100, 100, 100, 100)

	m := builder.NewMeter()
	s := builder.NewSensor(builder.SensorWithMeter(m))
	l, err := builder.FindPeaks(context.Background(), signal,
		builder.DetectorWithMethod("Khodadad"),
		builder.DetectorWithSensor(s),
	)
	if err != nil {
		t.Fatalf("FindPeaks: %v", err)
	}
	if l.Len() != 3 {
		t.Fatalf("expected 3 pairs, got %+v", l)
	}
	if got := m.GetCount(string(builder.MetricLandmarksEmitted)); got != 3 {
		t.Fatalf("landmarks metric: got %d, want 3", got)
	}
}

func TestFindPeaksFacadeRejectsUnknownMethod(t *testing.T) {
	_, err := builder.FindPeaks(context.Background(), []float64{-1, 1, -1}, builder.DetectorWithMethod("wavelet"))
	if !errors.Is(err, builder.ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
	var cfgErr *builder.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %T", err)
	}
}

func TestParseMethodFacade(t *testing.T) {
	m, err := builder.ParseMethod("NOTO")
	if err != nil || m != builder.MethodNoto2018 {
		t.Fatalf("got %q, %v", m, err)
	}
	if len(builder.Methods()) != 4 {
		t.Fatalf("expected 4 methods, got %v", builder.Methods())
	}
}

func TestLandmarksParquetFacade(t *testing.T) {
	var buf bytes.Buffer
	in := builder.Landmarks{Peaks: []int{10, 30}, Troughs: []int{5, 20}}
	if err := builder.WriteLandmarksParquet(&buf, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := builder.ReadLandmarksParquet(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Len() != 2 || out.Peaks[1] != 30 || out.Troughs[0] != 5 {
		t.Fatalf("unexpected landmarks: %+v", out)
	}
}

func TestKafkaSecurityDefaults(t *testing.T) {
	sec := builder.NewKafkaSecurity(builder.WithClientID("respira"))
	if sec.ClientID != "respira" || !sec.DualStack || sec.DialerTO == 0 {
		t.Fatalf("unexpected security defaults: %+v", sec)
	}
	if d := builder.NewKafkaGoDialerFromSecurity(sec); d == nil || d.Timeout != sec.DialerTO {
		t.Fatalf("dialer does not carry timeout: %+v", d)
	}
}
