package forecast

import (
	"github.com/soltixdb/quant/internal/analytics"
	"github.com/soltixdb/quant/pkg/quant"
)

// SMAForecaster projects the mean of the last window flat over the horizon
type SMAForecaster struct{}

// NewSMAForecaster creates a new SMA forecaster
func NewSMAForecaster() *SMAForecaster {
	return &SMAForecaster{}
}

func init() {
	RegisterForecaster("sma", NewSMAForecaster())
}

// Name returns the algorithm name
func (f *SMAForecaster) Name() string {
	return "sma"
}

// Forecast generates predictions using Simple Moving Average
func (f *SMAForecaster) Forecast(data []DataPoint, config ForecastConfig) (*ForecastResult, error) {
	if err := checkInput(data, config); err != nil {
		return nil, err
	}

	actual := analytics.TimeSeriesData(data).Values()
	windowSize := clampWindow(config.WindowSize, len(actual))

	sma := quant.SimpleMovingAverage(actual, windowSize)
	fitted := warmup(actual, sma, windowSize)
	res, stdError := residuals(actual, fitted, len(actual)-1)

	forecastValue := sma[len(sma)-1]
	lower, upper := calculatePredictionInterval(forecastValue, stdError, config.Confidence)

	times := stepTimes(data, config)
	predictions := make([]ForecastPoint, config.Horizon)
	for i := range predictions {
		predictions[i] = ForecastPoint{
			Step:       i + 1,
			Time:       times[i],
			Value:      forecastValue,
			LowerBound: lower,
			UpperBound: upper,
		}
	}

	return &ForecastResult{
		Predictions: predictions,
		Fitted:      fitted,
		Residuals:   res,
		ModelInfo:   modelInfo("sma", map[string]interface{}{"window_size": windowSize}, actual, fitted),
	}, nil
}

// clampWindow applies the default window and limits it to the series length
func clampWindow(windowSize, n int) int {
	if windowSize <= 0 {
		windowSize = DefaultForecastConfig().WindowSize
	}
	return min(windowSize, n)
}

// warmup aligns a windowed series with the input. Points before the first
// full window are fitted by the running mean of what has been seen so far.
func warmup(actual, windowed []float64, windowSize int) []float64 {
	fitted := make([]float64, len(actual))
	sum := 0.0
	for i := 0; i < windowSize-1; i++ {
		sum += actual[i]
		fitted[i] = sum / float64(i+1)
	}
	copy(fitted[windowSize-1:], windowed)
	return fitted
}
