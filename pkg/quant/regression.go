package quant

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Regression is an ordinary least squares fit y = Slope*x + Intercept.
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
}

// Predict evaluates the fitted line at x.
func (r Regression) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// Equation renders the fitted line, e.g. "y = 1.5000x - 2.0000".
func (r Regression) Equation() string {
	sign := "+"
	intercept := r.Intercept
	if intercept < 0 {
		sign = "-"
		intercept = -intercept
	}
	return fmt.Sprintf("y = %.4fx %s %.4f", r.Slope, sign, intercept)
}

// TrendDirection classifies the recent slope of a series.
type TrendDirection string

const (
	TrendUp               TrendDirection = "uptrend"
	TrendDown             TrendDirection = "downtrend"
	TrendSideways         TrendDirection = "sideways"
	TrendInsufficientData TrendDirection = "insufficient_data"
	TrendUnknown          TrendDirection = "unknown"
)

// Trend is the result of DetectTrend.
type Trend struct {
	Direction    TrendDirection `json:"direction"`
	Slope        float64        `json:"slope"`
	SlopePercent float64        `json:"slope_percent"` // |slope| relative to the window mean, in percent
	RSquared     float64        `json:"r_squared"`
	Period       int            `json:"period"`
}

// LinearRegression fits y against x by ordinary least squares.
func LinearRegression(x, y []float64) (Regression, error) {
	if err := checkPaired(x, y); err != nil {
		return Regression{}, err
	}

	n := float64(len(x))
	var sumX, sumY, sumXY, sumX2 float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return Regression{}, degenerate("all x values are equal")
	}

	slope := (n*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / n
	fit := Regression{Slope: slope, Intercept: intercept}

	meanY := stat.Mean(y, nil)
	var ssTotal, ssResidual float64
	for i := range y {
		ssTotal += (y[i] - meanY) * (y[i] - meanY)
		residual := y[i] - fit.Predict(x[i])
		ssResidual += residual * residual
	}
	if ssTotal != 0 {
		fit.RSquared = 1 - ssResidual/ssTotal
	}

	return fit, nil
}

// DetectTrend regresses the last period points against their index and
// classifies the slope. A slope under SidewaysSlopePercent of the window
// mean is sideways.
func DetectTrend(data []float64, period int) Trend {
	if len(data) < period {
		return Trend{Direction: TrendInsufficientData, Period: period}
	}
	if period < 2 {
		return Trend{Direction: TrendUnknown, Period: period}
	}

	window := data[len(data)-period:]
	fit, err := LinearRegression(indexRange(0, period), window)
	if err != nil {
		return Trend{Direction: TrendUnknown, Period: period}
	}

	mean := stat.Mean(window, nil)
	if mean == 0 {
		return Trend{Direction: TrendUnknown, Slope: fit.Slope, RSquared: fit.RSquared, Period: period}
	}

	trend := Trend{
		Slope:        fit.Slope,
		SlopePercent: math.Abs(fit.Slope) / math.Abs(mean) * 100,
		RSquared:     fit.RSquared,
		Period:       period,
	}
	switch {
	case trend.SlopePercent < SidewaysSlopePercent:
		trend.Direction = TrendSideways
	case fit.Slope > 0:
		trend.Direction = TrendUp
	default:
		trend.Direction = TrendDown
	}
	return trend
}

// ForecastLinear extends the least squares line through data (indexed
// 0..n-1) for the next periods indices.
func ForecastLinear(data []float64, periods int) []float64 {
	if len(data) < 2 || periods < 1 {
		return []float64{}
	}

	fit, err := LinearRegression(indexRange(0, len(data)), data)
	if err != nil {
		return []float64{}
	}

	result := make([]float64, periods)
	for i := range result {
		result[i] = fit.Predict(float64(len(data) + i))
	}
	return result
}

// indexRange returns [start, start+1, ..., start+n-1] as floats.
func indexRange(start, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(start + i)
	}
	return xs
}
