package forecast

import (
	"math"

	"github.com/soltixdb/quant/internal/analytics"
	"github.com/soltixdb/quant/pkg/quant"
)

// LinearRegressionForecaster extends the least squares line through the series
type LinearRegressionForecaster struct{}

// NewLinearRegressionForecaster creates a new Linear Regression forecaster
func NewLinearRegressionForecaster() *LinearRegressionForecaster {
	return &LinearRegressionForecaster{}
}

func init() {
	RegisterForecaster("linear", NewLinearRegressionForecaster())
}

// Name returns the algorithm name
func (f *LinearRegressionForecaster) Name() string {
	return "linear"
}

// Forecast generates predictions using Linear Regression
func (f *LinearRegressionForecaster) Forecast(data []DataPoint, config ForecastConfig) (*ForecastResult, error) {
	if err := checkInput(data, config); err != nil {
		return nil, err
	}

	actual := analytics.TimeSeriesData(data).Values()
	n := float64(len(actual))

	x := make([]float64, len(actual))
	for i := range x {
		x[i] = float64(i)
	}
	fit, err := quant.LinearRegression(x, actual)
	if err != nil {
		return nil, err
	}

	fitted := make([]float64, len(actual))
	for i := range fitted {
		fitted[i] = fit.Predict(x[i])
	}
	res, stdError := residuals(actual, fitted, len(actual)-2)

	values := quant.ForecastLinear(actual, config.Horizon)
	times := stepTimes(data, config)

	// Σ(x - meanX)² for x = 0..n-1
	meanX := (n - 1) / 2
	sxx := n * (n*n - 1) / 12

	predictions := make([]ForecastPoint, len(values))
	for i, v := range values {
		// Standard error grows with distance from the center of the fit
		xDiff := n + float64(i) - meanX
		predStdError := stdError * math.Sqrt(1+1/n+xDiff*xDiff/sxx)
		lower, upper := calculatePredictionInterval(v, predStdError, config.Confidence)

		predictions[i] = ForecastPoint{
			Step:       i + 1,
			Time:       times[i],
			Value:      v,
			LowerBound: lower,
			UpperBound: upper,
		}
	}

	return &ForecastResult{
		Predictions: predictions,
		Fitted:      fitted,
		Residuals:   res,
		ModelInfo: modelInfo("linear", map[string]interface{}{
			"slope":     fit.Slope,
			"intercept": fit.Intercept,
			"r_squared": fit.RSquared,
		}, actual, fitted),
	}, nil
}
