// Package source loads respiration signals from files, object storage and binary frames.
package source

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ChannelNames lists the accepted signal columns in order of preference.
var ChannelNames = []string{"RSP_Clean", "RSP_Raw", "RSP"}

var (
	// ErrNoChannel is returned when a table carries none of ChannelNames.
	ErrNoChannel = errors.New("source: no RSP_Clean, RSP_Raw or RSP column")
	// ErrEmptySignal is returned when an input holds no samples.
	ErrEmptySignal = errors.New("source: input holds no samples")
)

// SelectChannel picks the preferred respiration column from a table.
func SelectChannel(columns map[string][]float64) (string, []float64, error) {
	for _, name := range ChannelNames {
		if samples, ok := columns[name]; ok {
			return name, samples, nil
		}
	}
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return "", nil, fmt.Errorf("%w (columns: %s)", ErrNoChannel, strings.Join(names, ", "))
}

func isChannel(name string) bool {
	for _, c := range ChannelNames {
		if c == name {
			return true
		}
	}
	return false
}
