package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadText parses one sample per line, or a comma separated table whose header names a
// respiration channel. Blank lines and lines starting with '#' are skipped.
func ReadText(r io.Reader) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("source: read text: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptySignal
	}

	first := records[0]
	if isNumericRecord(first) {
		if len(first) != 1 {
			return nil, errors.New("source: multi-column text needs a header row")
		}
		return parseColumn(records, 0, 1)
	}

	columns := make(map[string][]float64)
	for i, name := range first {
		name = strings.TrimSpace(name)
		if !isChannel(name) {
			continue
		}
		samples, err := parseColumn(records[1:], i, 2)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		columns[name] = samples
	}
	_, samples, err := SelectChannel(columns)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrEmptySignal
	}
	return samples, nil
}

// parseColumn reads column col of every record; firstLine numbers the first record in errors.
func parseColumn(records [][]string, col int, firstLine int) ([]float64, error) {
	out := make([]float64, 0, len(records))
	for i, rec := range records {
		if col >= len(rec) {
			return nil, fmt.Errorf("source: record %d has no column %d", firstLine+i, col)
		}
		v, err := parseSample(rec[col])
		if err != nil {
			return nil, fmt.Errorf("source: record %d: %w", firstLine+i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseSample accepts decimal numbers; empty cells and "nan" become NaN.
func parseSample(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if field == "" || strings.EqualFold(field, "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(field, 64)
}

func isNumericRecord(rec []string) bool {
	for _, field := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
			return false
		}
	}
	return true
}
