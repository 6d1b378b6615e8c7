package meter

import (
	"time"

	"github.com/joeydtaylor/respira/pkg/internal/types"
)

// WithLogger attaches loggers to the meter.
func WithLogger(l ...types.Logger) types.Option[types.Meter] {
	return func(m types.Meter) {
		m.ConnectLogger(l...)
	}
}

// WithComponentMetadata overrides the generated name and id.
func WithComponentMetadata(name string, id string) types.Option[types.Meter] {
	return func(m types.Meter) {
		m.SetComponentMetadata(name, id)
	}
}

// WithCPUSampleWindow sets how long SampleSystem measures CPU usage.
func WithCPUSampleWindow(d time.Duration) types.Option[types.Meter] {
	return func(m types.Meter) {
		if mm, ok := m.(*Meter); ok && d > 0 {
			mm.cpuWindow = d
		}
	}
}
