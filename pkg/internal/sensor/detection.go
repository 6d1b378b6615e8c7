package sensor

import "github.com/joeydtaylor/respira/pkg/internal/types"

// RegisterOnStart registers callbacks invoked when a detection starts.
func (s *Sensor) RegisterOnStart(callback ...func(c types.ComponentMetadata, samples int)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnStart = append(s.OnStart, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnExtrema registers callbacks invoked with the raw extrema count.
func (s *Sensor) RegisterOnExtrema(callback ...func(c types.ComponentMetadata, extrema int)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnExtrema = append(s.OnExtrema, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnLandmarks registers callbacks invoked with the final landmarks.
func (s *Sensor) RegisterOnLandmarks(callback ...func(c types.ComponentMetadata, l types.Landmarks)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnLandmarks = append(s.OnLandmarks, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnRateFilterDrop registers callbacks invoked when the breathing-rate filter removes pairs.
func (s *Sensor) RegisterOnRateFilterDrop(callback ...func(c types.ComponentMetadata, dropped int)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnRateFilterDrop = append(s.OnRateFilterDrop, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnError registers callbacks invoked when a detection fails.
func (s *Sensor) RegisterOnError(callback ...func(c types.ComponentMetadata, err error)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnError = append(s.OnError, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnStart invokes registered start callbacks.
func (s *Sensor) InvokeOnStart(c types.ComponentMetadata, samples int) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnStart) {
		if cb != nil {
			cb(c, samples)
		}
	}
}

// InvokeOnExtrema invokes registered extrema callbacks.
func (s *Sensor) InvokeOnExtrema(c types.ComponentMetadata, extrema int) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnExtrema) {
		if cb != nil {
			cb(c, extrema)
		}
	}
}

// InvokeOnLandmarks invokes registered landmark callbacks.
func (s *Sensor) InvokeOnLandmarks(c types.ComponentMetadata, l types.Landmarks) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnLandmarks) {
		if cb != nil {
			cb(c, l)
		}
	}
}

// InvokeOnRateFilterDrop invokes registered rate filter callbacks.
func (s *Sensor) InvokeOnRateFilterDrop(c types.ComponentMetadata, dropped int) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnRateFilterDrop) {
		if cb != nil {
			cb(c, dropped)
		}
	}
}

// InvokeOnError invokes registered error callbacks.
func (s *Sensor) InvokeOnError(c types.ComponentMetadata, err error) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnError) {
		if cb != nil {
			cb(c, err)
		}
	}
}
