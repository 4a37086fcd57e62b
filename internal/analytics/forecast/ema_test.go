package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMAForecaster_Name(t *testing.T) {
	assert.Equal(t, "ema", NewEMAForecaster().Name())
}

func TestEMAForecaster_LastValue(t *testing.T) {
	data := generateLinearData(10, 1.0, 1.0) // 1..10

	config := DefaultForecastConfig()
	config.WindowSize = 3
	config.Horizon = 3

	result, err := NewEMAForecaster().Forecast(data, config)
	require.NoError(t, err)

	// Seed mean(1,2,3)=2, multiplier 0.5, lags one step behind the line
	for _, p := range result.Predictions {
		assert.InDelta(t, 9.0, p.Value, 1e-9)
	}
	assert.InDeltaSlice(t, []float64{1, 1.5, 2, 3, 4, 5, 6, 7, 8, 9}, result.Fitted, 1e-9)
	assert.InDelta(t, 0.5, result.ModelInfo.Parameters["multiplier"], 1e-9)
}

func TestEMAForecaster_IntervalWidens(t *testing.T) {
	data := generateNoisyData(30, 20, 1)

	result, err := NewEMAForecaster().Forecast(data, ForecastConfig{Horizon: 4, WindowSize: 5, Confidence: 0.95})
	require.NoError(t, err)

	for i := 1; i < len(result.Predictions); i++ {
		prev := result.Predictions[i-1]
		cur := result.Predictions[i]
		assert.Greater(t, cur.UpperBound-cur.LowerBound, prev.UpperBound-prev.LowerBound)
	}
}

func TestEMAForecaster_ConstantSeries(t *testing.T) {
	data := generateLinearData(12, 0, 42)

	result, err := NewEMAForecaster().Forecast(data, DefaultForecastConfig())
	require.NoError(t, err)
	for _, p := range result.Predictions {
		assert.Equal(t, 42.0, p.Value)
		assert.Equal(t, 42.0, p.LowerBound)
		assert.Equal(t, 42.0, p.UpperBound)
	}
}

func BenchmarkEMAForecaster(b *testing.B) {
	data := generateNoisyData(1000, 50, 2)
	config := DefaultForecastConfig()
	forecaster := NewEMAForecaster()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = forecaster.Forecast(data, config)
	}
}
