package builder

import (
	"context"
	"time"

	"github.com/joeydtaylor/respira/pkg/internal/meter"
	"github.com/joeydtaylor/respira/pkg/internal/types"
)

// MetricName is a type alias for metric names used in the Meter.
type MetricName string

type (
	Meter        = types.Meter
	SystemSample = types.SystemSample
)

// Here we re-export the constants from the types package
const (
	MetricSignalsSubmitted MetricName = MetricName(types.MetricSignalsSubmitted)
	MetricSignalsProcessed MetricName = MetricName(types.MetricSignalsProcessed)
	MetricDetectionErrors  MetricName = MetricName(types.MetricDetectionErrors)
	MetricExtremaLocated   MetricName = MetricName(types.MetricExtremaLocated)
	MetricLandmarksEmitted MetricName = MetricName(types.MetricLandmarksEmitted)
	MetricRateFilterDrops  MetricName = MetricName(types.MetricRateFilterDrops)
	MetricMessagesSkipped  MetricName = MetricName(types.MetricMessagesSkipped)
)

func NewMeter(options ...types.Option[types.Meter]) types.Meter {
	return meter.NewMeter(options...)
}

func MeterWithLogger(loggers ...types.Logger) types.Option[types.Meter] {
	return meter.WithLogger(loggers...)
}

func MeterWithComponentMetadata(name string, id string) types.Option[types.Meter] {
	return meter.WithComponentMetadata(name, id)
}

// MeterWithCPUSampleWindow sets how long SampleSystem measures CPU usage.
func MeterWithCPUSampleWindow(d time.Duration) types.Option[types.Meter] {
	return meter.WithCPUSampleWindow(d)
}

// MonitorMeter logs a status line every interval until ctx is done.
func MonitorMeter(ctx context.Context, m types.Meter, interval time.Duration) {
	meter.Monitor(ctx, m, interval)
}
