package types

// Sensor provides callback hooks for detection telemetry. Components invoke the hooks; sensors fan
// them out to registered callbacks and connected meters.
type Sensor interface {
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	ConnectLogger(...Logger)
	ConnectMeter(...Meter)

	RegisterOnStart(...func(c ComponentMetadata, samples int))
	RegisterOnExtrema(...func(c ComponentMetadata, extrema int))
	RegisterOnLandmarks(...func(c ComponentMetadata, l Landmarks))
	RegisterOnRateFilterDrop(...func(c ComponentMetadata, dropped int))
	RegisterOnError(...func(c ComponentMetadata, err error))

	InvokeOnStart(c ComponentMetadata, samples int)
	InvokeOnExtrema(c ComponentMetadata, extrema int)
	InvokeOnLandmarks(c ComponentMetadata, l Landmarks)
	InvokeOnRateFilterDrop(c ComponentMetadata, dropped int)
	InvokeOnError(c ComponentMetadata, err error)
}
