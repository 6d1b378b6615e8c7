package rsp

import "github.com/joeydtaylor/respira/pkg/internal/types"

// GetComponentMetadata returns the metadata.
func (d *Detector) GetComponentMetadata() types.ComponentMetadata {
	return d.componentMetadata
}

// SetComponentMetadata sets the component name and id.
func (d *Detector) SetComponentMetadata(name string, id string) {
	d.requireNotFrozen("SetComponentMetadata")
	d.componentMetadata.Name = name
	d.componentMetadata.ID = id
}

// ConnectLogger attaches loggers.
func (d *Detector) ConnectLogger(l ...types.Logger) {
	d.requireNotFrozen("ConnectLogger")
	d.loggersLock.Lock()
	defer d.loggersLock.Unlock()
	d.loggers = append(d.loggers, l...)
}

// ConnectSensor attaches sensors.
func (d *Detector) ConnectSensor(s ...types.Sensor) {
	d.requireNotFrozen("ConnectSensor")
	d.sensors = append(d.sensors, s...)
	for _, m := range s {
		if m == nil {
			continue
		}
		d.NotifyLoggers(types.DebugLevel, "connected sensor",
			"component", d.componentMetadata,
			"event", "ConnectSensor",
			"result", "SUCCESS",
			"target", m.GetComponentMetadata(),
		)
	}
}
