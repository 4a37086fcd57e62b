package services

import (
	"context"
	"time"

	"github.com/soltixdb/quant/pkg/quant"
)

// TrendResponse holds the trend classification of the recent window and
// the regression line through the whole series
type TrendResponse struct {
	ReportMeta
	Trend      quant.Trend      `json:"trend"`
	Regression quant.Regression `json:"regression"`
	Equation   string           `json:"equation"`
}

// Trend classifies the trend over the last period points. A zero period
// takes the configured default.
func (s *AnalysisService) Trend(ctx context.Context, series Series, period int) (*TrendResponse, error) {
	const operation = "trend"
	start := time.Now()

	if period == 0 {
		period = s.cfg.TrendPeriod
	}

	values := series.Data.Values()
	if len(values) < 2 {
		return nil, s.failed(ctx, operation, insufficientData(operation, 2, len(values)))
	}

	x := make([]float64, len(values))
	for i := range x {
		x[i] = float64(i)
	}
	fit, err := quant.LinearRegression(x, values)
	if err != nil {
		return nil, s.failed(ctx, operation, fromToolkitError(operation, err))
	}

	resp := &TrendResponse{
		ReportMeta: newMeta(operation, series),
		Trend:      quant.DetectTrend(values, period),
		Regression: fit,
		Equation:   fit.Equation(),
	}

	s.completed(ctx, resp.ReportMeta, start, "direction", string(resp.Trend.Direction))
	return resp, nil
}
