package builder

import (
	"github.com/joeydtaylor/respira/pkg/internal/sensor"
	"github.com/joeydtaylor/respira/pkg/internal/types"
)

type (
	Sensor            = types.Sensor
	ComponentMetadata = types.ComponentMetadata
)

func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	return sensor.NewSensor(options...)
}

// SensorWithComponentMetadata adds component metadata overrides.
func SensorWithComponentMetadata(name string, id string) types.Option[types.Sensor] {
	return sensor.WithComponentMetadata(name, id)
}

// SensorWithLogger adds a logger to the Sensor.
func SensorWithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return sensor.WithLogger(logger...)
}

// SensorWithMeter forwards detection counts to meters.
func SensorWithMeter(m ...types.Meter) types.Option[types.Sensor] {
	return sensor.WithMeter(m...)
}

// SensorWithOnStartFunc registers a callback for the OnStart event.
func SensorWithOnStartFunc(callback ...func(c ComponentMetadata, samples int)) types.Option[types.Sensor] {
	return sensor.WithOnStartFunc(callback...)
}

// SensorWithOnExtremaFunc registers a callback for the OnExtrema event.
func SensorWithOnExtremaFunc(callback ...func(c ComponentMetadata, extrema int)) types.Option[types.Sensor] {
	return sensor.WithOnExtremaFunc(callback...)
}

// SensorWithOnLandmarksFunc registers a callback for the OnLandmarks event.
func SensorWithOnLandmarksFunc(callback ...func(c ComponentMetadata, l Landmarks)) types.Option[types.Sensor] {
	return sensor.WithOnLandmarksFunc(callback...)
}

// SensorWithOnRateFilterDropFunc registers a callback for the OnRateFilterDrop event.
func SensorWithOnRateFilterDropFunc(callback ...func(c ComponentMetadata, dropped int)) types.Option[types.Sensor] {
	return sensor.WithOnRateFilterDropFunc(callback...)
}

// SensorWithOnErrorFunc registers a callback for the OnError event.
func SensorWithOnErrorFunc(callback ...func(c ComponentMetadata, err error)) types.Option[types.Sensor] {
	return sensor.WithOnErrorFunc(callback...)
}
