package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/soltixdb/quant/pkg/quant"
)

// Correlation strength labels
const (
	StrengthStrong     = "strong"
	StrengthModerate   = "moderate"
	StrengthWeak       = "weak"
	StrengthNegligible = "negligible"
)

// CorrelateResponse relates two series of equal length
type CorrelateResponse struct {
	ReportMeta
	Other       string   `json:"other,omitempty"`
	Correlation *float64 `json:"correlation,omitempty"`
	Strength    string   `json:"strength,omitempty"`
	Covariance  float64  `json:"covariance"` // Sample covariance
	Warnings    []string `json:"warnings,omitempty"`
}

// Correlate computes the Pearson correlation and covariance of x and y
func (s *AnalysisService) Correlate(ctx context.Context, x, y Series) (*CorrelateResponse, error) {
	const operation = "correlate"
	start := time.Now()

	if x.Data.Len() != y.Data.Len() {
		return nil, s.failed(ctx, operation, NewServiceErrorWithDetails(CodeInvalidInput,
			fmt.Sprintf("%s: series lengths differ", operation),
			map[string]interface{}{"x": x.Data.Len(), "y": y.Data.Len()}))
	}

	xs, ys := x.Data.Values(), y.Data.Values()
	covariance, err := quant.Covariance(xs, ys, true)
	if err != nil {
		return nil, s.failed(ctx, operation, fromToolkitError(operation, err))
	}

	resp := &CorrelateResponse{
		ReportMeta: newMeta(operation, x),
		Other:      y.Name,
		Covariance: covariance,
	}

	r, err := quant.Correlation(xs, ys)
	if err != nil {
		resp.Warnings = append(resp.Warnings, "correlation: "+err.Error())
	} else {
		resp.Correlation = &r
		resp.Strength = CorrelationStrength(r)
	}

	s.completed(ctx, resp.ReportMeta, start, "strength", resp.Strength)
	return resp, nil
}

// CorrelationStrength labels |r| using the 0.7 / 0.4 / 0.2 cut points
func CorrelationStrength(r float64) string {
	switch abs := math.Abs(r); {
	case abs >= 0.7:
		return StrengthStrong
	case abs >= 0.4:
		return StrengthModerate
	case abs >= 0.2:
		return StrengthWeak
	default:
		return StrengthNegligible
	}
}
