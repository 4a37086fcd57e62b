package services

import (
	"context"
	"time"

	"github.com/soltixdb/quant/pkg/quant"
)

const hoursPerYear = 365.25 * 24

// RiskRequest describes a price series to assess. Years is the span used
// by CAGR; when zero it is taken from the timestamps, or from the point
// count and the configured periods per year.
type RiskRequest struct {
	Series Series
	Period int // Volatility window, 0 for the configured default
	Years  float64
}

// RiskResponse holds the risk metrics of a price series. Metrics that are
// undefined for the input are omitted and explained in Warnings.
type RiskResponse struct {
	ReportMeta
	Volatility       *float64        `json:"volatility,omitempty"` // Annualized, percent
	VolatilityPeriod int             `json:"volatility_period"`
	SharpeRatio      *float64        `json:"sharpe_ratio,omitempty"`
	Drawdown         quant.Drawdown  `json:"drawdown"`
	ValueAtRisk      *float64        `json:"value_at_risk,omitempty"` // Fraction of value
	CAGR             *float64        `json:"cagr,omitempty"`          // Percent
	Years            float64         `json:"years"`
	ReturnInterval   *quant.Interval `json:"return_interval,omitempty"`
	ConfidenceLevel  float64         `json:"confidence_level"`
	Returns          int             `json:"returns"`
	Warnings         []string        `json:"warnings,omitempty"`
}

// Risk computes volatility, Sharpe ratio, drawdown, VaR, CAGR and the
// confidence interval of the mean return for a price series
func (s *AnalysisService) Risk(ctx context.Context, req RiskRequest) (*RiskResponse, error) {
	const operation = "risk"
	start := time.Now()

	prices := req.Series.Data.Values()
	if len(prices) < 2 {
		return nil, s.failed(ctx, operation, insufficientData(operation, 2, len(prices)))
	}

	level := s.confidenceLevel()
	returns := quant.SimpleReturns(prices)
	resp := &RiskResponse{
		ReportMeta:      newMeta(operation, req.Series),
		Drawdown:        quant.MaximumDrawdown(prices),
		ConfidenceLevel: level,
		Returns:         len(returns),
	}

	warn := func(metric string, err error) {
		if err != nil {
			resp.Warnings = append(resp.Warnings, metric+": "+err.Error())
		}
	}

	// The window is limited by the returns available
	period := req.Period
	if period == 0 {
		period = s.cfg.VolatilityPeriod
	}
	period = min(period, len(prices)-1)
	resp.VolatilityPeriod = period

	volatility, err := quant.HistoricalVolatility(prices, period, s.cfg.PeriodsPerYear)
	resp.Volatility = optional(volatility, err)
	warn("volatility", err)

	sharpe, err := quant.SharpeRatio(returns, s.cfg.RiskFreeRate)
	resp.SharpeRatio = optional(sharpe, err)
	warn("sharpe_ratio", err)

	valueAtRisk, err := quant.ValueAtRisk(returns, level)
	resp.ValueAtRisk = optional(valueAtRisk, err)
	warn("value_at_risk", err)

	resp.Years = s.spanYears(req)
	cagr, err := quant.CAGR(prices[0], prices[len(prices)-1], resp.Years)
	resp.CAGR = optional(cagr, err)
	warn("cagr", err)

	interval, err := quant.ConfidenceInterval(returns, level)
	if err == nil {
		resp.ReturnInterval = &interval
	}
	warn("return_interval", err)

	s.completed(ctx, resp.ReportMeta, start,
		"max_drawdown", resp.Drawdown.MaxDrawdown,
		"warnings", len(resp.Warnings))
	return resp, nil
}

// spanYears returns the length of the series in years
func (s *AnalysisService) spanYears(req RiskRequest) float64 {
	if req.Years > 0 {
		return req.Years
	}

	data := req.Series.Data
	first, last := data[0].Time, data[len(data)-1].Time
	if !first.IsZero() && last.After(first) {
		return last.Sub(first).Hours() / hoursPerYear
	}

	if s.cfg.PeriodsPerYear <= 0 {
		return 0
	}
	return float64(len(data)-1) / s.cfg.PeriodsPerYear
}
