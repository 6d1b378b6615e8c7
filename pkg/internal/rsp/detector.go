package rsp

import (
	"context"
	"fmt"
	"sync"

	"github.com/joeydtaylor/respira/pkg/internal/types"
	"github.com/joeydtaylor/respira/pkg/internal/utils"
)

// Defaults applied by NewDetector before options run.
const (
	DefaultAmplitudeMin   = 0.3
	DefaultSamplingRate   = 1000
	DefaultPeakDistance   = 0.8
	DefaultPeakProminence = 0.5
	DefaultDelta          = 0
	DefaultLookahead      = 200
)

// Detector runs one landmark detection strategy over whole signals.
// Configuration is frozen by the first FindPeaks call; later calls share it read-only.
type Detector struct {
	componentMetadata types.ComponentMetadata

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	configLock  sync.RWMutex
	config      types.DetectorConfig

	frozen int32
}

// NewDetector constructs a Detector with defaults and applies options.
func NewDetector(options ...types.Option[types.Detector]) types.Detector {
	d := &Detector{
		loggers: make([]types.Logger, 0),
		sensors: make([]types.Sensor, 0),
		config:  DefaultConfig(),
		componentMetadata: types.ComponentMetadata{
			Type: "DETECTOR",
			ID:   utils.GenerateUniqueHash(),
		},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}

	return d
}

// DefaultConfig returns the configuration used when no option overrides a field.
func DefaultConfig() types.DetectorConfig {
	return types.DetectorConfig{
		Method:          types.MethodKhodadad2018,
		AmplitudeMin:    DefaultAmplitudeMin,
		SamplingRate:    DefaultSamplingRate,
		MinBreathPeriod: DefaultMinBreathPeriod,
		PeakDistance:    DefaultPeakDistance,
		PeakProminence:  DefaultPeakProminence,
		Delta:           DefaultDelta,
		Lookahead:       DefaultLookahead,
	}
}

// FindPeaks validates the configuration and runs the selected strategy over signal.
func (d *Detector) FindPeaks(ctx context.Context, signal []float64) (types.Landmarks, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	d.Freeze()

	cfg := d.GetConfig()
	if err := ctx.Err(); err != nil {
		return types.Landmarks{}, err
	}

	method, err := validateConfig(cfg)
	if err != nil {
		d.reportError("FindPeaks", err, "method", string(cfg.Method))
		return types.Landmarks{}, err
	}
	cfg.Method = method

	d.notifyStart(len(signal))
	d.NotifyLoggers(types.DebugLevel, "detection started",
		"component", d.componentMetadata,
		"event", "FindPeaks",
		"method", string(method),
		"samples", len(signal),
	)

	tr := &trace{}
	landmarks, err := strategies[method](signal, cfg, tr)
	if err != nil {
		err = fmt.Errorf("%s: %w", method, err)
		d.reportError("FindPeaks", err, "method", string(method), "samples", len(signal))
		return types.Landmarks{}, err
	}

	d.notifyExtrema(tr.extrema)
	if tr.rateDrops > 0 {
		d.notifyRateFilterDrop(tr.rateDrops)
	}
	d.notifyLandmarks(landmarks)

	level := types.DebugLevel
	result := "SUCCESS"
	if landmarks.Len() == 0 {
		level = types.WarnLevel
		result = "EMPTY"
	}
	d.NotifyLoggers(level, "detection finished",
		"component", d.componentMetadata,
		"event", "FindPeaks",
		"result", result,
		"method", string(method),
		"samples", len(signal),
		"peaks", len(landmarks.Peaks),
		"troughs", len(landmarks.Troughs),
	)
	return landmarks, nil
}

func (d *Detector) reportError(event string, err error, keysAndValues ...interface{}) {
	for _, s := range d.sensors {
		if s != nil {
			s.InvokeOnError(d.componentMetadata, err)
		}
	}
	kv := append([]interface{}{
		"component", d.componentMetadata,
		"event", event,
		"result", "FAILURE",
		"error", err,
	}, keysAndValues...)
	d.NotifyLoggers(types.ErrorLevel, "detection failed", kv...)
}
