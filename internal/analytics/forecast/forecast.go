package forecast

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/soltixdb/quant/internal/analytics"
	"github.com/soltixdb/quant/pkg/quant"
)

// DataPoint is an alias to the shared analytics.TimeSeriesPoint type.
type DataPoint = analytics.TimeSeriesPoint

// ForecastPoint represents a single forecast prediction
type ForecastPoint struct {
	Step       int       `json:"step"` // 1-based distance past the last observation
	Time       time.Time `json:"time,omitempty"`
	Value      float64   `json:"value"`
	LowerBound float64   `json:"lower_bound"`
	UpperBound float64   `json:"upper_bound"`
}

// ModelInfo contains metadata about the forecast model
type ModelInfo struct {
	Algorithm  string                 `json:"algorithm"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	MAPE       float64                `json:"mape,omitempty"` // Mean Absolute Percentage Error
	MAE        float64                `json:"mae,omitempty"`  // Mean Absolute Error
	RMSE       float64                `json:"rmse,omitempty"` // Root Mean Squared Error
	DataPoints int                    `json:"data_points"`    // Number of data points used
}

// ForecastResult contains the forecast predictions and model information
type ForecastResult struct {
	Predictions []ForecastPoint `json:"predictions"`
	Fitted      []float64       `json:"fitted,omitempty"`    // Fitted values for historical data
	Residuals   []float64       `json:"residuals,omitempty"` // Residuals (actual - fitted)
	ModelInfo   ModelInfo       `json:"model_info"`
}

// ForecastConfig holds configuration for forecasting
type ForecastConfig struct {
	Horizon       int           // Number of periods to forecast
	WindowSize    int           // Window size for moving average methods
	Confidence    float64       // Confidence level for prediction intervals (0-1)
	MinDataPoints int           // Minimum data points required
	Interval      time.Duration // Time interval between data points, inferred when zero
}

// DefaultForecastConfig returns default forecast configuration
func DefaultForecastConfig() ForecastConfig {
	return ForecastConfig{
		Horizon:       7,
		WindowSize:    7,
		Confidence:    quant.DefaultConfidenceLevel,
		MinDataPoints: 3,
	}
}

// Forecaster interface for all forecasting algorithms
type Forecaster interface {
	// Name returns the algorithm name
	Name() string
	// Forecast generates predictions for future time periods
	Forecast(data []DataPoint, config ForecastConfig) (*ForecastResult, error)
}

// Registry holds available forecasters
var forecasterRegistry = make(map[string]Forecaster)

// RegisterForecaster adds a forecaster to the registry
func RegisterForecaster(name string, forecaster Forecaster) {
	forecasterRegistry[name] = forecaster
}

// GetForecaster returns a forecaster by name
func GetForecaster(name string) (Forecaster, error) {
	if forecaster, ok := forecasterRegistry[name]; ok {
		return forecaster, nil
	}
	return nil, fmt.Errorf("unknown forecaster: %s", name)
}

// ListForecasters returns the sorted names of available forecasters
func ListForecasters() []string {
	return slices.Sorted(maps.Keys(forecasterRegistry))
}

// CalculateMAPE calculates Mean Absolute Percentage Error
func CalculateMAPE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	count := 0
	for i := range actual {
		if actual[i] != 0 {
			sum += math.Abs((actual[i] - predicted[i]) / actual[i])
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return (sum / float64(count)) * 100
}

// CalculateMAE calculates Mean Absolute Error
func CalculateMAE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}

// CalculateRMSE calculates Root Mean Squared Error
func CalculateRMSE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		diff := actual[i] - predicted[i]
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(actual)))
}

// calculatePredictionInterval calculates prediction interval bounds
func calculatePredictionInterval(value, stdError, confidence float64) (lower, upper float64) {
	// Z-score for confidence level (approximate)
	var z float64
	switch {
	case confidence >= 0.99:
		z = 2.576
	case confidence >= 0.95:
		z = 1.96
	case confidence >= 0.90:
		z = 1.645
	default:
		z = 1.96
	}

	margin := z * stdError
	return value - margin, value + margin
}

// checkInput validates the series length and horizon shared by all forecasters
func checkInput(data []DataPoint, config ForecastConfig) error {
	minPoints := max(config.MinDataPoints, 2)
	if len(data) < minPoints {
		return fmt.Errorf("%w: need %d, have %d", quant.ErrInsufficientData, minPoints, len(data))
	}
	if config.Horizon < 1 {
		return fmt.Errorf("%w: horizon=%d", quant.ErrInvalidParameter, config.Horizon)
	}
	return nil
}

// residuals returns actual - fitted and the standard error over dof degrees of freedom
func residuals(actual, fitted []float64, dof int) ([]float64, float64) {
	res := make([]float64, len(actual))
	sumSquaredError := 0.0
	for i := range actual {
		res[i] = actual[i] - fitted[i]
		sumSquaredError += res[i] * res[i]
	}

	if dof <= 0 {
		return res, 0
	}
	return res, math.Sqrt(sumSquaredError / float64(dof))
}

// stepTimes returns the timestamps of the next horizon steps. Series
// without timestamps get zero times.
func stepTimes(data []DataPoint, config ForecastConfig) []time.Time {
	times := make([]time.Time, config.Horizon)
	lastTime := data[len(data)-1].Time
	if lastTime.IsZero() {
		return times
	}

	interval := config.Interval
	if interval == 0 && len(data) >= 2 {
		interval = data[1].Time.Sub(data[0].Time)
	}
	for i := range times {
		times[i] = lastTime.Add(interval * time.Duration(1+i))
	}
	return times
}

// modelInfo fills the accuracy metrics shared by all forecasters
func modelInfo(algorithm string, params map[string]interface{}, actual, fitted []float64) ModelInfo {
	return ModelInfo{
		Algorithm:  algorithm,
		Parameters: params,
		MAPE:       CalculateMAPE(actual, fitted),
		MAE:        CalculateMAE(actual, fitted),
		RMSE:       CalculateRMSE(actual, fitted),
		DataPoints: len(actual),
	}
}
