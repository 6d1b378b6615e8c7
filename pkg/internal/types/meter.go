package types

import "time"

// Metric names tracked by meters.
const (
	MetricSignalsSubmitted = "signals_submitted"
	MetricSignalsProcessed = "signals_processed"
	MetricDetectionErrors  = "detection_errors"
	MetricExtremaLocated   = "extrema_located"
	MetricLandmarksEmitted = "landmarks_emitted"
	MetricRateFilterDrops  = "rate_filter_drops"
	MetricMessagesSkipped  = "messages_skipped"
)

// SystemSample is a point-in-time view of host resource usage.
type SystemSample struct {
	CPUPercent    float64
	MemoryPercent float64
	MemoryUsed    uint64
	SampledAt     time.Time
}

// Meter accumulates named counters.
type Meter interface {
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	ConnectLogger(...Logger)
	IncrementCount(metric string)
	AddCount(metric string, n uint64)
	GetCount(metric string) uint64
	Snapshot() map[string]uint64
	ResetCounts()
	SampleSystem() (SystemSample, error)
	ReportStatus()
}
