package quant

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// PercentChange returns (newValue-oldValue)/oldValue in percent.
func PercentChange(oldValue, newValue float64) (float64, error) {
	if oldValue == 0 {
		return 0, degenerate("zero base value")
	}
	return (newValue - oldValue) / oldValue * 100, nil
}

// Normalize min-max scales data to [0, 1]. A constant sequence maps to
// zeros.
func Normalize(data []float64) []float64 {
	result := make([]float64, len(data))
	if len(data) == 0 {
		return result
	}

	lo, hi := floats.Min(data), floats.Max(data)
	if hi == lo {
		return result
	}

	span := hi - lo
	for i, v := range data {
		result[i] = (v - lo) / span
	}
	return result
}

// Rescale maps values normalized to [0, 1] back onto [lo, hi].
func Rescale(normalized []float64, lo, hi float64) []float64 {
	result := make([]float64, len(normalized))
	for i, v := range normalized {
		result[i] = lo + v*(hi-lo)
	}
	return result
}

// CAGR returns the compound annual growth rate, in percent, of a value
// growing from start to end over years.
func CAGR(start, end, years float64) (float64, error) {
	if start <= 0 {
		return 0, invalidParam("start", start)
	}
	if years <= 0 {
		return 0, invalidParam("years", years)
	}
	return (math.Pow(end/start, 1/years) - 1) * 100, nil
}
