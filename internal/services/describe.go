package services

import (
	"context"
	"time"

	"github.com/soltixdb/quant/pkg/quant"
)

// DescribeResponse summarizes one series
type DescribeResponse struct {
	ReportMeta
	Summary  quant.Summary `json:"summary"`
	Variance float64       `json:"variance"`
	MAD      *float64      `json:"mad,omitempty"`
	Skewness *float64      `json:"skewness,omitempty"`
	Kurtosis *float64      `json:"kurtosis,omitempty"`

	// Position of the most recent value within the series
	Last          float64  `json:"last"`
	LastZScore    *float64 `json:"last_z_score,omitempty"`
	LastCDF       float64  `json:"last_cdf"`                 // Normal probability of a value at or below Last
	ChangePercent *float64 `json:"change_percent,omitempty"` // First to last value
}

// Describe computes the descriptive statistics of a series
func (s *AnalysisService) Describe(ctx context.Context, series Series) (*DescribeResponse, error) {
	const operation = "describe"
	start := time.Now()

	values := series.Data.Values()
	summary, err := quant.Describe(values)
	if err != nil {
		return nil, s.failed(ctx, operation, fromToolkitError(operation, err))
	}
	variance, err := quant.Variance(values, true)
	if err != nil {
		return nil, s.failed(ctx, operation, fromToolkitError(operation, err))
	}

	last := values[len(values)-1]
	resp := &DescribeResponse{
		ReportMeta:    newMeta(operation, series),
		Summary:       summary,
		Variance:      variance,
		MAD:           optional(quant.MedianAbsoluteDeviation(values)),
		Skewness:      optional(quant.Skewness(values)),
		Kurtosis:      optional(quant.Kurtosis(values)),
		Last:          last,
		LastZScore:    optional(quant.ZScore(last, values)),
		LastCDF:       quant.ProbabilityInRange(last, values),
		ChangePercent: optional(quant.PercentChange(values[0], last)),
	}

	s.completed(ctx, resp.ReportMeta, start, "mean", summary.Mean)
	return resp, nil
}
