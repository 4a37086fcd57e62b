package forecast

import (
	"math"

	"github.com/soltixdb/quant/internal/analytics"
	"github.com/soltixdb/quant/pkg/quant"
)

// EMAForecaster projects the last exponential moving average flat over the
// horizon, widening the interval with each step.
type EMAForecaster struct{}

// NewEMAForecaster creates a new EMA forecaster
func NewEMAForecaster() *EMAForecaster {
	return &EMAForecaster{}
}

func init() {
	RegisterForecaster("ema", NewEMAForecaster())
}

// Name returns the algorithm name
func (f *EMAForecaster) Name() string {
	return "ema"
}

// Forecast generates predictions using the exponential moving average
func (f *EMAForecaster) Forecast(data []DataPoint, config ForecastConfig) (*ForecastResult, error) {
	if err := checkInput(data, config); err != nil {
		return nil, err
	}

	actual := analytics.TimeSeriesData(data).Values()
	period := clampWindow(config.WindowSize, len(actual))

	ema := quant.ExponentialMovingAverage(actual, period)
	fitted := warmup(actual, ema, period)
	res, stdError := residuals(actual, fitted, len(actual)-1)

	forecastValue := ema[len(ema)-1]
	times := stepTimes(data, config)
	predictions := make([]ForecastPoint, config.Horizon)
	for i := range predictions {
		// Increase uncertainty for further predictions
		adjustedStdError := stdError * math.Sqrt(float64(i+1))
		lower, upper := calculatePredictionInterval(forecastValue, adjustedStdError, config.Confidence)
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
		ModelInfo: modelInfo("ema", map[string]interface{}{
			"period":     period,
			"multiplier": 2 / float64(period+1),
		}, actual, fitted),
	}, nil
}
