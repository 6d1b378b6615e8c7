package meter

import (
	"sort"
	"sync"
	"time"

	"github.com/joeydtaylor/respira/pkg/internal/types"
	"github.com/joeydtaylor/respira/pkg/internal/utils"
)

const defaultCPUSampleWindow = 500 * time.Millisecond

// defaultMetrics are registered up front so snapshots list them even at zero.
var defaultMetrics = []string{
	types.MetricSignalsSubmitted,
	types.MetricSignalsProcessed,
	types.MetricDetectionErrors,
	types.MetricExtremaLocated,
	types.MetricLandmarksEmitted,
	types.MetricRateFilterDrops,
	types.MetricMessagesSkipped,
}

// Meter accumulates named counters and samples host resource usage.
type Meter struct {
	componentMetadata types.ComponentMetadata
	mu                sync.Mutex
	counts            map[string]*uint64
	startTime         time.Time
	cpuWindow         time.Duration

	loggers   []types.Logger
	loggersMu sync.Mutex
}

// NewMeter constructs a Meter with the detection counters registered.
func NewMeter(options ...types.Option[types.Meter]) types.Meter {
	m := &Meter{
		componentMetadata: types.ComponentMetadata{
			Type: "METER",
			ID:   utils.GenerateUniqueHash(),
		},
		counts:    make(map[string]*uint64, len(defaultMetrics)),
		startTime: time.Now(),
		cpuWindow: defaultCPUSampleWindow,
		loggers:   make([]types.Logger, 0),
	}
	for _, name := range defaultMetrics {
		m.counts[name] = new(uint64)
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// GetComponentMetadata returns the meter metadata.
func (m *Meter) GetComponentMetadata() types.ComponentMetadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.componentMetadata
}

// SetComponentMetadata sets the meter name and id.
func (m *Meter) SetComponentMetadata(name string, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.componentMetadata.Name = name
	m.componentMetadata.ID = id
}

func (m *Meter) metricNames() []string {
	m.mu.Lock()
	names := make([]string, 0, len(m.counts))
	for name := range m.counts {
		names = append(names, name)
	}
	m.mu.Unlock()
	sort.Strings(names)
	return names
}
