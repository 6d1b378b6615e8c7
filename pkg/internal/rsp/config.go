package rsp

import (
	"math"

	"github.com/joeydtaylor/respira/pkg/internal/types"
)

// GetConfig returns a copy of the detector configuration.
func (d *Detector) GetConfig() types.DetectorConfig {
	d.configLock.RLock()
	defer d.configLock.RUnlock()
	return d.config
}

// Validate reports the first configuration problem as a *ConfigError.
func (d *Detector) Validate() error {
	_, err := validateConfig(d.GetConfig())
	return err
}

// ValidateConfig checks cfg and returns the canonical method it selects.
func ValidateConfig(cfg types.DetectorConfig) (types.Method, error) {
	return validateConfig(cfg)
}

func validateConfig(cfg types.DetectorConfig) (types.Method, error) {
	method, err := ParseMethod(string(cfg.Method))
	if err != nil {
		return "", err
	}

	if math.IsNaN(cfg.AmplitudeMin) || cfg.AmplitudeMin < 0 {
		return "", invalidParam("amplitude_min", "must be >= 0, got %v", cfg.AmplitudeMin)
	}
	if cfg.SamplingRate <= 0 {
		return "", invalidParam("sampling_rate", "must be > 0 Hz, got %d", cfg.SamplingRate)
	}

	switch method {
	case types.MethodBiosppy:
		if math.IsNaN(cfg.MinBreathPeriod) || cfg.MinBreathPeriod < 0 {
			return "", invalidParam("min_breath_period", "must be >= 0 seconds, got %v", cfg.MinBreathPeriod)
		}
	case types.MethodScipy:
		if math.IsNaN(cfg.PeakDistance) || float64(cfg.SamplingRate)*cfg.PeakDistance < 1 {
			return "", invalidParam("peak_distance", "must span at least one sample, got %v s at %d Hz", cfg.PeakDistance, cfg.SamplingRate)
		}
		if math.IsNaN(cfg.PeakProminence) {
			return "", invalidParam("peak_prominence", "must be a number")
		}
	case types.MethodNoto2018:
		if math.IsNaN(cfg.Delta) || cfg.Delta < 0 {
			return "", invalidParam("delta", "must be >= 0, got %v", cfg.Delta)
		}
		if cfg.Lookahead < 1 {
			return "", invalidParam("lookahead", "must be >= 1 sample, got %d", cfg.Lookahead)
		}
	}
	return method, nil
}

func (d *Detector) SetMethod(m types.Method) {
	d.requireNotFrozen("SetMethod")
	d.configLock.Lock()
	defer d.configLock.Unlock()
	d.config.Method = m
}

func (d *Detector) SetAmplitudeMin(v float64) {
	d.requireNotFrozen("SetAmplitudeMin")
	d.configLock.Lock()
	defer d.configLock.Unlock()
	d.config.AmplitudeMin = v
}

func (d *Detector) SetSamplingRate(hz int) {
	d.requireNotFrozen("SetSamplingRate")
	d.configLock.Lock()
	defer d.configLock.Unlock()
	d.config.SamplingRate = hz
}

func (d *Detector) SetMinBreathPeriod(seconds float64) {
	d.requireNotFrozen("SetMinBreathPeriod")
	d.configLock.Lock()
	defer d.configLock.Unlock()
	d.config.MinBreathPeriod = seconds
}

func (d *Detector) SetPeakDistance(seconds float64) {
	d.requireNotFrozen("SetPeakDistance")
	d.configLock.Lock()
	defer d.configLock.Unlock()
	d.config.PeakDistance = seconds
}

func (d *Detector) SetPeakProminence(v float64) {
	d.requireNotFrozen("SetPeakProminence")
	d.configLock.Lock()
	defer d.configLock.Unlock()
	d.config.PeakProminence = v
}

func (d *Detector) SetDelta(v float64) {
	d.requireNotFrozen("SetDelta")
	d.configLock.Lock()
	defer d.configLock.Unlock()
	d.config.Delta = v
}

func (d *Detector) SetLookahead(samples int) {
	d.requireNotFrozen("SetLookahead")
	d.configLock.Lock()
	defer d.configLock.Unlock()
	d.config.Lookahead = samples
}
