package services

import (
	"context"
	"fmt"
	"time"

	"github.com/soltixdb/quant/pkg/quant"
)

// Smoothing methods
const (
	SmoothSMA       = "sma"
	SmoothEMA       = "ema"
	SmoothWMA       = "wma"
	SmoothMSTD      = "mstd"
	SmoothBollinger = "bollinger"
	SmoothROC       = "roc"
	SmoothNormalize = "normalize"
)

// SmoothMethods lists the supported smoothing methods
var SmoothMethods = []string{SmoothSMA, SmoothEMA, SmoothWMA, SmoothMSTD, SmoothBollinger, SmoothROC, SmoothNormalize}

// SmoothRequest selects a smoothing method. Zero Period and Multiplier
// take the configured defaults.
type SmoothRequest struct {
	Series     Series
	Method     string
	Period     int
	Multiplier float64
}

// SmoothResponse holds a derived series. Values[i] corresponds to input
// index Offset+i.
type SmoothResponse struct {
	ReportMeta
	Method     string    `json:"method"`
	Period     int       `json:"period,omitempty"`
	Multiplier float64   `json:"multiplier,omitempty"`
	Offset     int       `json:"offset"`
	Values     []float64 `json:"values"`
	Upper      []float64 `json:"upper,omitempty"`
	Lower      []float64 `json:"lower,omitempty"`
}

// Smooth derives a smoothed or transformed series
func (s *AnalysisService) Smooth(ctx context.Context, req SmoothRequest) (*SmoothResponse, error) {
	const operation = "smooth"
	start := time.Now()

	values := req.Series.Data.Values()
	period := req.Period
	if period == 0 {
		period = s.defaultPeriod(req.Method)
	}

	minPeriod := 1
	if req.Method == SmoothMSTD || req.Method == SmoothBollinger {
		minPeriod = 2
	}
	if req.Method != SmoothNormalize && period < minPeriod {
		return nil, s.failed(ctx, operation, NewServiceErrorWithDetails(CodeInvalidInput,
			fmt.Sprintf("%s: period must be at least %d", operation, minPeriod),
			map[string]interface{}{"period": period}))
	}

	resp := &SmoothResponse{
		ReportMeta: newMeta(operation, req.Series),
		Method:     req.Method,
		Period:     period,
		Offset:     period - 1,
	}

	switch req.Method {
	case SmoothSMA:
		resp.Values = quant.SimpleMovingAverage(values, period)
	case SmoothEMA:
		resp.Values = quant.ExponentialMovingAverage(values, period)
	case SmoothWMA:
		resp.Values = quant.WeightedMovingAverage(values, period)
	case SmoothMSTD:
		resp.Values = quant.MovingStandardDeviation(values, period)
	case SmoothBollinger:
		multiplier := req.Multiplier
		if multiplier == 0 {
			multiplier = s.cfg.BollingerMultiplier
		}
		bands := quant.BollingerBands(values, period, multiplier)
		resp.Multiplier = multiplier
		resp.Values, resp.Upper, resp.Lower = bands.Middle, bands.Upper, bands.Lower
	case SmoothROC:
		resp.Values = quant.RateOfChange(values, period)
		resp.Offset = period
	case SmoothNormalize:
		resp.Values = quant.Normalize(values)
		resp.Period, resp.Offset = 0, 0
	default:
		return nil, s.failed(ctx, operation, invalidMethod(
			fmt.Errorf("unknown smoothing method: %s", req.Method), SmoothMethods))
	}

	if len(resp.Values) == 0 {
		need := period
		switch req.Method {
		case SmoothROC:
			need = period + 1
		case SmoothNormalize:
			need = 1
		}
		return nil, s.failed(ctx, operation, insufficientData(operation, need, len(values)))
	}

	s.completed(ctx, resp.ReportMeta, start, "method", req.Method, "period", resp.Period)
	return resp, nil
}

func (s *AnalysisService) defaultPeriod(method string) int {
	switch method {
	case SmoothEMA:
		return s.cfg.EMAPeriod
	case SmoothWMA:
		return s.cfg.WMAPeriod
	case SmoothBollinger:
		return s.cfg.BollingerPeriod
	case SmoothROC:
		return s.cfg.ROCPeriod
	default:
		return s.cfg.SMAPeriod
	}
}
