package services

import (
	"context"
	"time"

	"github.com/soltixdb/quant/internal/analytics/forecast"
	"github.com/soltixdb/quant/pkg/quant"
)

// ForecastRequest represents a forecast request. Zero fields take the
// configured defaults.
type ForecastRequest struct {
	Series     Series
	Method     string
	Horizon    int
	WindowSize int
	Interval   time.Duration
}

// ForecastPrediction represents a single forecast prediction point
type ForecastPrediction struct {
	Step       int     `json:"step"`
	Time       string  `json:"time,omitempty"`
	Value      float64 `json:"value"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// ForecastResponse represents the complete forecast response
type ForecastResponse struct {
	ReportMeta
	Method      string               `json:"method"`
	Confidence  float64              `json:"confidence"`
	Predictions []ForecastPrediction `json:"predictions"`
	ModelInfo   forecast.ModelInfo   `json:"model_info"`
}

// Forecast extends a series with the selected forecaster
func (s *AnalysisService) Forecast(ctx context.Context, req ForecastRequest) (*ForecastResponse, error) {
	const operation = "forecast"
	start := time.Now()

	method := req.Method
	if method == "" {
		method = s.cfg.ForecastMethod
	}

	// Validate forecaster exists
	forecaster, err := forecast.GetForecaster(method)
	if err != nil {
		return nil, s.failed(ctx, operation, invalidMethod(err, forecast.ListForecasters()))
	}

	// Configure forecaster
	config := forecast.DefaultForecastConfig()
	config.Horizon = req.Horizon
	if config.Horizon == 0 {
		config.Horizon = s.cfg.ForecastHorizon
	}
	config.WindowSize = req.WindowSize
	if config.WindowSize == 0 {
		config.WindowSize = s.cfg.SMAPeriod
		if method == "ema" {
			config.WindowSize = s.cfg.EMAPeriod
		}
	}
	config.Confidence = s.confidenceLevel()
	config.Interval = req.Interval

	result, err := forecaster.Forecast(req.Series.Data, config)
	if err != nil {
		return nil, s.failed(ctx, operation, fromToolkitError(operation, err))
	}

	// Convert predictions to response format
	predictions := make([]ForecastPrediction, len(result.Predictions))
	for i, p := range result.Predictions {
		predictions[i] = ForecastPrediction{
			Step:       p.Step,
			Value:      p.Value,
			LowerBound: p.LowerBound,
			UpperBound: p.UpperBound,
		}
		if !p.Time.IsZero() {
			predictions[i].Time = p.Time.Format(time.RFC3339)
		}
	}

	resp := &ForecastResponse{
		ReportMeta:  newMeta(operation, req.Series),
		Method:      method,
		Confidence:  config.Confidence,
		Predictions: predictions,
		ModelInfo:   result.ModelInfo,
	}

	s.completed(ctx, resp.ReportMeta, start,
		"method", method,
		"horizon", config.Horizon)
	return resp, nil
}

// confidenceLevel returns the configured level, or the toolkit default
func (s *AnalysisService) confidenceLevel() float64 {
	if s.cfg.ConfidenceLevel > 0 && s.cfg.ConfidenceLevel < 1 {
		return s.cfg.ConfidenceLevel
	}
	return quant.DefaultConfidenceLevel
}
