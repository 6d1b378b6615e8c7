// Package sensor provides options for configuring Sensor components.
package sensor

import "github.com/joeydtaylor/respira/pkg/internal/types"

// WithLogger adds loggers to a Sensor.
func WithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.ConnectLogger(logger...)
	}
}

// WithMeter connects meters that receive the detection counters.
func WithMeter(meter ...types.Meter) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.ConnectMeter(meter...)
	}
}

// WithOnStartFunc registers callbacks for the OnStart event.
func WithOnStartFunc(callback ...func(c types.ComponentMetadata, samples int)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnStart(callback...)
	}
}

// WithOnExtremaFunc registers callbacks for the OnExtrema event.
func WithOnExtremaFunc(callback ...func(c types.ComponentMetadata, extrema int)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnExtrema(callback...)
	}
}

// WithOnLandmarksFunc registers callbacks for the OnLandmarks event.
func WithOnLandmarksFunc(callback ...func(c types.ComponentMetadata, l types.Landmarks)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnLandmarks(callback...)
	}
}

// WithOnRateFilterDropFunc registers callbacks for the OnRateFilterDrop event.
func WithOnRateFilterDropFunc(callback ...func(c types.ComponentMetadata, dropped int)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnRateFilterDrop(callback...)
	}
}

// WithOnErrorFunc registers callbacks for the OnError event.
func WithOnErrorFunc(callback ...func(c types.ComponentMetadata, err error)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnError(callback...)
	}
}

// WithComponentMetadata sets a custom name and id.
func WithComponentMetadata(name string, id string) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.SetComponentMetadata(name, id)
	}
}
