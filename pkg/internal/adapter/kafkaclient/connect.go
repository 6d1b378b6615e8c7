package kafkaclient

import "github.com/joeydtaylor/respira/pkg/internal/types"

// ConnectLogger attaches loggers.
func (w *Worker) ConnectLogger(loggers ...types.Logger) {
	n := 0
	for _, l := range loggers {
		if l != nil {
			loggers[n] = l
			n++
		}
	}
	if n == 0 {
		return
	}

	w.loggersLock.Lock()
	w.loggers = append(w.loggers, loggers[:n]...)
	total := len(w.loggers)
	w.loggersLock.Unlock()

	w.NotifyLoggers(types.DebugLevel, "Worker: logger connected",
		"component", w.componentMetadata, "event", "ConnectLogger", "total_loggers", total)
}

// ConnectSensor attaches sensors handed to each detector.
func (w *Worker) ConnectSensor(sensors ...types.Sensor) {
	w.sensorsLock.Lock()
	defer w.sensorsLock.Unlock()
	for _, s := range sensors {
		if s != nil {
			w.sensors = append(w.sensors, s)
		}
	}
}

// ConnectMeter attaches meters.
func (w *Worker) ConnectMeter(meters ...types.Meter) {
	w.metersLock.Lock()
	defer w.metersLock.Unlock()
	for _, m := range meters {
		if m != nil {
			w.meters = append(w.meters, m)
		}
	}
}

func (w *Worker) snapshotLoggers() []types.Logger {
	w.loggersLock.Lock()
	defer w.loggersLock.Unlock()
	return append([]types.Logger(nil), w.loggers...)
}

func (w *Worker) snapshotSensors() []types.Sensor {
	w.sensorsLock.Lock()
	defer w.sensorsLock.Unlock()
	return append([]types.Sensor(nil), w.sensors...)
}

func (w *Worker) incrementMeters(metric string) {
	w.metersLock.Lock()
	meters := append([]types.Meter(nil), w.meters...)
	w.metersLock.Unlock()
	for _, m := range meters {
		m.IncrementCount(metric)
	}
}
