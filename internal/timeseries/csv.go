// Package timeseries loads series for analysis from CSV files and inline
// value lists.
package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/soltixdb/quant/internal/analytics"
	"github.com/soltixdb/quant/internal/config"
	"github.com/soltixdb/quant/internal/utils"
	"github.com/spf13/cast"
)

// Time formats accepted besides Go layouts
const (
	TimeFormatUnix   = "unix"
	TimeFormatUnixMS = "unix_ms"
)

// ErrNoData is returned when a source holds no usable rows
var ErrNoData = errors.New("no data rows")

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	TimeColumn  string // Column name for timestamps (optional)
	ValueColumn string // Column name for values (default: "value")
	TimeFormat  string // Go layout, "unix" or "unix_ms" (default: RFC3339)
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
	SkipRows    int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		TimeColumn:  utils.DefaultTimeColumn,
		ValueColumn: utils.DefaultValueColumn,
		TimeFormat:  utils.DefaultTimeFormat,
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// OptionsFromConfig builds CSV options from the input configuration
func OptionsFromConfig(cfg config.InputConfig) *CSVOptions {
	opts := DefaultCSVOptions()
	if cfg.TimeColumn != "" {
		opts.TimeColumn = cfg.TimeColumn
	}
	if cfg.ValueColumn != "" {
		opts.ValueColumn = cfg.ValueColumn
	}
	if cfg.TimeFormat != "" {
		opts.TimeFormat = cfg.TimeFormat
	}
	opts.Delimiter = cfg.DelimiterRune()
	return opts
}

// LoadCSV loads a series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (analytics.TimeSeriesData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a series from an io.Reader.
//
// With a header, the value column is looked up by name (case-insensitive),
// falling back to the only column of a single-column file. The time column
// is optional. Without a header a single column holds values and two or more
// columns are read as time, value.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (analytics.TimeSeriesData, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, fmt.Errorf("skipping row %d: %w", i+1, err)
		}
	}

	valueIdx, timeIdx := -1, -1
	if opts.HasHeader {
		header, err := reader.Read()
		if err == io.EOF {
			return nil, ErrNoData
		}
		if err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}

		valueIdx, timeIdx = findColumns(header, opts)
		if valueIdx == -1 {
			return nil, fmt.Errorf("value column %q not found in header %v", opts.ValueColumn, header)
		}
	}

	var series analytics.TimeSeriesData
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)

		if !opts.HasHeader && valueIdx == -1 {
			if len(record) == 1 {
				valueIdx = 0
			} else {
				timeIdx, valueIdx = 0, 1
			}
		}

		if isBlank(record) {
			continue
		}
		if valueIdx >= len(record) {
			return nil, fmt.Errorf("line %d: missing value column", line)
		}

		raw := strings.TrimSpace(record[valueIdx])
		value, ok := utils.ToFloat64(raw)
		if !ok {
			return nil, fmt.Errorf("line %d: value %q is not a number", line, raw)
		}

		point := analytics.TimeSeriesPoint{Value: value}
		if timeIdx >= 0 && timeIdx < len(record) {
			ts, err := parseTime(strings.TrimSpace(record[timeIdx]), opts.TimeFormat)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			point.Time = ts
		}
		series = append(series, point)
	}

	if len(series) == 0 {
		return nil, ErrNoData
	}
	return series, nil
}

// ParseValues parses an inline list such as "1, 2.5, 3" into a series
// without timestamps.
func ParseValues(s string) (analytics.TimeSeriesData, error) {
	values, err := utils.ParseFloatList(s)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}
	return analytics.FromValues(values), nil
}

func findColumns(header []string, opts *CSVOptions) (valueIdx, timeIdx int) {
	valueIdx, timeIdx = -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.Trim(h, "\""))
		switch {
		case strings.EqualFold(h, opts.ValueColumn):
			valueIdx = i
		case opts.TimeColumn != "" && strings.EqualFold(h, opts.TimeColumn):
			timeIdx = i
		}
	}

	if valueIdx == -1 && len(header) == 1 {
		valueIdx = 0
	}
	return valueIdx, timeIdx
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// parseTime parses s with layout, accepting epoch seconds or milliseconds
// for the "unix" and "unix_ms" formats. An empty cell yields the zero time.
func parseTime(s, layout string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	switch layout {
	case TimeFormatUnix, TimeFormatUnixMS:
		n, err := cast.ToInt64E(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("time %q is not an epoch timestamp", s)
		}
		if layout == TimeFormatUnixMS {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	case "":
		layout = utils.DefaultTimeFormat
	}

	ts, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q does not match layout %q", s, layout)
	}
	return ts, nil
}
