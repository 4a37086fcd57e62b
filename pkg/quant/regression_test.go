package quant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearRegression_PerfectFit(t *testing.T) {
	fit, err := LinearRegression([]float64{0, 1, 2, 3}, []float64{0, 1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, 1.0, fit.Slope)
	assert.Equal(t, 0.0, fit.Intercept)
	assert.Equal(t, 1.0, fit.RSquared)
	assert.Equal(t, 10.0, fit.Predict(10))
	assert.Equal(t, "y = 1.0000x + 0.0000", fit.Equation())
}

func TestLinearRegression_NoisyFit(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2.1, 3.9, 6.2, 7.8, 10.1}

	fit, err := LinearRegression(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.99, fit.Slope, 1e-9)
	assert.InDelta(t, 0.05, fit.Intercept, 1e-9)
	assert.Greater(t, fit.RSquared, 0.99)
	assert.LessOrEqual(t, fit.RSquared, 1.0)
}

func TestLinearRegression_FlatY(t *testing.T) {
	fit, err := LinearRegression([]float64{1, 2, 3}, []float64{5, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, fit.Slope)
	assert.Equal(t, 5.0, fit.Intercept)
	assert.Equal(t, 0.0, fit.RSquared)
}

func TestLinearRegression_Undefined(t *testing.T) {
	_, err := LinearRegression([]float64{1, 1, 1}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrDegenerateInput)

	_, err = LinearRegression([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = LinearRegression([]float64{1}, []float64{1})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestRegression_Equation(t *testing.T) {
	fit := Regression{Slope: 1.5, Intercept: -2}
	assert.Equal(t, "y = 1.5000x - 2.0000", fit.Equation())
	assert.Equal(t, 13.0, fit.Predict(10))
}

func TestDetectTrend(t *testing.T) {
	rising := make([]float64, 30)
	falling := make([]float64, 30)
	flat := make([]float64, 30)
	for i := range rising {
		rising[i] = 100 + float64(i)
		falling[i] = 200 - float64(i)
		flat[i] = 50
	}

	tests := []struct {
		name     string
		data     []float64
		period   int
		expected TrendDirection
	}{
		{name: "rising", data: rising, period: DefaultTrendPeriod, expected: TrendUp},
		{name: "falling", data: falling, period: DefaultTrendPeriod, expected: TrendDown},
		{name: "flat", data: flat, period: DefaultTrendPeriod, expected: TrendSideways},
		{name: "too short", data: rising[:10], period: DefaultTrendPeriod, expected: TrendInsufficientData},
		{name: "single point window", data: rising, period: 1, expected: TrendUnknown},
		{name: "zero mean window", data: []float64{-1, 1, -1, 1}, period: 4, expected: TrendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := DetectTrend(tt.data, tt.period)
			assert.Equal(t, tt.expected, trend.Direction)
			assert.Equal(t, tt.period, trend.Period)
		})
	}
}

func TestDetectTrend_UsesLastWindow(t *testing.T) {
	// falls for 20 points then rises for the last 10
	data := make([]float64, 0, 30)
	for i := 0; i < 20; i++ {
		data = append(data, 200-float64(i)*5)
	}
	for i := 0; i < 10; i++ {
		data = append(data, 100+float64(i)*5)
	}

	trend := DetectTrend(data, 10)
	assert.Equal(t, TrendUp, trend.Direction)
	assert.InDelta(t, 5.0, trend.Slope, 1e-9)
	assert.InDelta(t, 1.0, trend.RSquared, 1e-9)
}

func TestForecastLinear(t *testing.T) {
	assert.InDeltaSlice(t, []float64{5, 6, 7}, ForecastLinear([]float64{1, 2, 3, 4}, 3), 1e-12)

	assert.Empty(t, ForecastLinear([]float64{1}, 3))
	assert.Empty(t, ForecastLinear([]float64{1, 2, 3}, 0))
}
