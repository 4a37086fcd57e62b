// Package analytics provides common types for series analytics
// including forecasting and anomaly detection.
package analytics

import (
	"time"

	"github.com/soltixdb/quant/pkg/quant"
)

// TimeSeriesPoint represents a single time-series data point with time and value.
// This is the common type used across all analytics packages (forecast, anomaly, etc.)
type TimeSeriesPoint struct {
	Time  time.Time
	Value float64
}

// TimeSeriesData represents a collection of time-series data points
type TimeSeriesData []TimeSeriesPoint

// FromValues builds a series from bare values. Points carry zero times.
func FromValues(values []float64) TimeSeriesData {
	ts := make(TimeSeriesData, len(values))
	for i, v := range values {
		ts[i] = TimeSeriesPoint{Value: v}
	}
	return ts
}

// Values extracts just the values from the time series
func (ts TimeSeriesData) Values() []float64 {
	values := make([]float64, len(ts))
	for i, p := range ts {
		values[i] = p.Value
	}
	return values
}

// Times extracts just the times from the time series
func (ts TimeSeriesData) Times() []time.Time {
	times := make([]time.Time, len(ts))
	for i, p := range ts {
		times[i] = p.Time
	}
	return times
}

// Len returns the number of data points
func (ts TimeSeriesData) Len() int {
	return len(ts)
}

// Mean calculates the mean of all values, 0 for an empty series
func (ts TimeSeriesData) Mean() float64 {
	mean, err := quant.Mean(ts.Values())
	if err != nil {
		return 0
	}
	return mean
}

// StdDev calculates the sample standard deviation, 0 below two points
func (ts TimeSeriesData) StdDev() float64 {
	sd, err := quant.StandardDeviation(ts.Values(), true)
	if err != nil {
		return 0
	}
	return sd
}
