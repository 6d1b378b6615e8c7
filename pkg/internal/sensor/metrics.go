package sensor

import "github.com/joeydtaylor/respira/pkg/internal/types"

// decorateCallbacks appends the callbacks that feed connected meters.
func (s *Sensor) decorateCallbacks(options ...types.Option[types.Sensor]) []types.Option[types.Sensor] {
	return append(
		options,
		WithOnStartFunc(func(c types.ComponentMetadata, _ int) {
			s.incrementMeterCounters(types.MetricSignalsSubmitted)
		}),
		WithOnExtremaFunc(func(c types.ComponentMetadata, extrema int) {
			s.addMeterCounters(types.MetricExtremaLocated, extrema)
		}),
		WithOnLandmarksFunc(func(c types.ComponentMetadata, l types.Landmarks) {
			s.incrementMeterCounters(types.MetricSignalsProcessed)
			s.addMeterCounters(types.MetricLandmarksEmitted, l.Len())
		}),
		WithOnRateFilterDropFunc(func(c types.ComponentMetadata, dropped int) {
			s.addMeterCounters(types.MetricRateFilterDrops, dropped)
		}),
		WithOnErrorFunc(func(c types.ComponentMetadata, err error) {
			s.incrementMeterCounters(types.MetricDetectionErrors)
			s.NotifyLoggers(types.DebugLevel, "sensor observed detection error",
				"component", s.GetComponentMetadata(),
				"event", "OnError",
				"target", c,
				"error", err,
			)
		}),
	)
}

func (s *Sensor) incrementMeterCounters(metric string) {
	for _, m := range s.snapshotMeters() {
		m.IncrementCount(metric)
	}
}

func (s *Sensor) addMeterCounters(metric string, n int) {
	if n <= 0 {
		return
	}
	for _, m := range s.snapshotMeters() {
		m.AddCount(metric, uint64(n))
	}
}
