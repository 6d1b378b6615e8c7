package rsp

import "github.com/joeydtaylor/respira/pkg/internal/types"

// NotifyLoggers forwards a structured entry to every logger whose level admits it.
func (d *Detector) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	d.loggersLock.Lock()
	defer d.loggersLock.Unlock()

	for _, logger := range d.loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			logger.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			logger.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			logger.Fatal(msg, keysAndValues...)
		}
	}
}

func (d *Detector) notifyStart(samples int) {
	for _, s := range d.sensors {
		if s != nil {
			s.InvokeOnStart(d.componentMetadata, samples)
		}
	}
}

func (d *Detector) notifyExtrema(n int) {
	for _, s := range d.sensors {
		if s != nil {
			s.InvokeOnExtrema(d.componentMetadata, n)
		}
	}
}

func (d *Detector) notifyRateFilterDrop(n int) {
	for _, s := range d.sensors {
		if s != nil {
			s.InvokeOnRateFilterDrop(d.componentMetadata, n)
		}
	}
}

func (d *Detector) notifyLandmarks(l types.Landmarks) {
	for _, s := range d.sensors {
		if s != nil {
			s.InvokeOnLandmarks(d.componentMetadata, l)
		}
	}
}
