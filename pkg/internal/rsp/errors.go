package rsp

import (
	"errors"
	"fmt"
)

var (
	// ErrNoZeroCrossing is returned when the signal never crosses zero in one of the two directions.
	ErrNoZeroCrossing = errors.New("rsp: signal has no rising or no falling zero crossing")
	// ErrTooFewExtrema is returned when fewer than two extrema reach the sanitizer.
	ErrTooFewExtrema = errors.New("rsp: fewer than two extrema left after outlier removal")
	// ErrUnknownMethod is returned for method names outside the supported set.
	ErrUnknownMethod = errors.New("rsp: unknown method")
	// ErrInvalidParameter is returned for out-of-range numeric parameters.
	ErrInvalidParameter = errors.New("rsp: invalid parameter")
)

// ConfigError reports a configuration problem detected before any signal is processed.
type ConfigError struct {
	Param  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rsp: invalid %s: %s", e.Param, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func invalidParam(param, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Param: param, Reason: fmt.Sprintf(format, args...), Err: ErrInvalidParameter}
}
