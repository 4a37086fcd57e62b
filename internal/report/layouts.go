package report

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/soltixdb/quant/internal/chain"
	"github.com/soltixdb/quant/internal/services"
)

// table returns the text layout for known report types
func (r *Renderer) table(v any) (string, bool) {
	switch rep := v.(type) {
	case *services.DescribeResponse:
		return r.describe(rep), true
	case *services.SmoothResponse:
		return r.smooth(rep), true
	case *services.TrendResponse:
		return r.trend(rep), true
	case *services.ForecastResponse:
		return r.forecast(rep), true
	case *services.RiskResponse:
		return r.risk(rep), true
	case *services.AnomalyResponse:
		return r.anomalies(rep), true
	case *services.CorrelateResponse:
		return r.correlate(rep), true
	case *services.DownsampleResponse:
		return r.downsample(rep), true
	case *services.ResampleResponse:
		return r.resample(rep), true
	case chain.GasPrediction:
		return r.gas(rep), true
	case chain.RiskScore:
		return r.riskScore(rep), true
	case chain.SystemStatus:
		return r.status(rep), true
	}
	return "", false
}

func metaRows(meta services.ReportMeta) []table.Row {
	rows := []table.Row{{"Report", meta.ReportID}}
	if meta.Series != "" {
		rows = append(rows, table.Row{"Series", meta.Series})
	}
	return append(rows, table.Row{"Points", count(meta.Points)})
}

func (r *Renderer) describe(rep *services.DescribeResponse) string {
	s := rep.Summary
	rows := append(metaRows(rep.ReportMeta),
		table.Row{"Mean", r.num(s.Mean)},
		table.Row{"Median", r.num(s.Median)},
		table.Row{"Std dev", r.num(s.StdDev)},
		table.Row{"Variance", r.num(rep.Variance)},
		table.Row{"Min", r.num(s.Min)},
		table.Row{"Max", r.num(s.Max)},
		table.Row{"Q1", r.num(s.Q1)},
		table.Row{"Q3", r.num(s.Q3)},
		table.Row{"IQR", r.num(s.IQR)},
		table.Row{"MAD", r.opt(rep.MAD)},
		table.Row{"Skewness", r.opt(rep.Skewness)},
		table.Row{"Kurtosis", r.opt(rep.Kurtosis)},
		table.Row{"Last", r.num(rep.Last)},
		table.Row{"Last z-score", r.opt(rep.LastZScore)},
		table.Row{"Last CDF", r.num(rep.LastCDF)},
	)
	change := notAvailable
	if rep.ChangePercent != nil {
		change = r.pct(*rep.ChangePercent)
	}
	rows = append(rows, table.Row{"Change", change})
	return section(rep.Operation, rows)
}

func (r *Renderer) smooth(rep *services.SmoothResponse) string {
	rows := append(metaRows(rep.ReportMeta), table.Row{"Method", rep.Method})
	if rep.Period > 0 {
		rows = append(rows, table.Row{"Period", rep.Period})
	}
	if rep.Multiplier > 0 {
		rows = append(rows, table.Row{"Multiplier", r.num(rep.Multiplier)})
	}

	bands := len(rep.Upper) == len(rep.Values) && len(rep.Upper) > 0
	header := table.Row{"Index", "Value"}
	if bands {
		header = table.Row{"Index", "Middle", "Upper", "Lower"}
	}

	values := make([]table.Row, len(rep.Values))
	for i, v := range rep.Values {
		if bands {
			values[i] = table.Row{rep.Offset + i, r.num(v), r.num(rep.Upper[i]), r.num(rep.Lower[i])}
		} else {
			values[i] = table.Row{rep.Offset + i, r.num(v)}
		}
	}
	return section(rep.Operation, rows, collection("Values", header, values))
}

func (r *Renderer) trend(rep *services.TrendResponse) string {
	rows := append(metaRows(rep.ReportMeta),
		table.Row{"Direction", string(rep.Trend.Direction)},
		table.Row{"Window", rep.Trend.Period},
		table.Row{"Window slope", r.num(rep.Trend.Slope)},
		table.Row{"Slope of mean", r.pct(rep.Trend.SlopePercent)},
		table.Row{"Window R²", r.num(rep.Trend.RSquared)},
		table.Row{"Fit", rep.Equation},
		table.Row{"Fit R²", r.num(rep.Regression.RSquared)},
	)
	return section(rep.Operation, rows)
}

func (r *Renderer) forecast(rep *services.ForecastResponse) string {
	info := rep.ModelInfo
	rows := append(metaRows(rep.ReportMeta),
		table.Row{"Method", rep.Method},
		table.Row{"Confidence", r.pct(rep.Confidence * 100)},
		table.Row{"MAPE", r.pct(info.MAPE)},
		table.Row{"MAE", r.num(info.MAE)},
		table.Row{"RMSE", r.num(info.RMSE)},
	)

	predictions := make([]table.Row, len(rep.Predictions))
	for i, p := range rep.Predictions {
		step := any(p.Step)
		if p.Time != "" {
			step = p.Time
		}
		predictions[i] = table.Row{step, r.num(p.Value), r.num(p.LowerBound), r.num(p.UpperBound)}
	}
	return section(rep.Operation, rows,
		collection("Predictions", table.Row{"Step", "Value", "Lower", "Upper"}, predictions))
}

func (r *Renderer) risk(rep *services.RiskResponse) string {
	dd := rep.Drawdown
	rows := append(metaRows(rep.ReportMeta),
		table.Row{"Volatility", r.optPct(rep.Volatility)},
		table.Row{"Volatility window", rep.VolatilityPeriod},
		table.Row{"Sharpe ratio", r.opt(rep.SharpeRatio)},
		table.Row{"Max drawdown", r.pct(dd.MaxDrawdown)},
		table.Row{"Drawdown peak", r.num(dd.PeakValue) + " @ " + count(dd.PeakIndex)},
		table.Row{"Drawdown trough", r.num(dd.TroughValue) + " @ " + count(dd.TroughIndex)},
		table.Row{"Value at risk", r.optPct(scale(rep.ValueAtRisk, 100))},
		table.Row{"CAGR", r.optPct(rep.CAGR)},
		table.Row{"Years", r.num(rep.Years)},
	)
	if iv := rep.ReturnInterval; iv != nil {
		rows = append(rows, table.Row{"Mean return", r.pct(iv.Mean * 100)},
			table.Row{"Return interval", "[" + r.pct(iv.Lower*100) + ", " + r.pct(iv.Upper*100) + "]"})
	}
	rows = append(rows, table.Row{"Confidence", r.pct(rep.ConfidenceLevel * 100)})
	return section(rep.Operation, rows, list("Warnings", rep.Warnings))
}

func (r *Renderer) anomalies(rep *services.AnomalyResponse) string {
	rows := append(metaRows(rep.ReportMeta),
		table.Row{"Method", rep.Method},
		table.Row{"Threshold", r.num(rep.Threshold)},
		table.Row{"Anomalies", count(rep.Count)},
	)

	found := make([]table.Row, len(rep.Anomalies))
	for i, a := range rep.Anomalies {
		expected := notAvailable
		if a.Expected != nil {
			expected = "[" + r.num(a.Expected.Min) + ", " + r.num(a.Expected.Max) + "]"
		}
		at := any(a.Index)
		if a.Time != "" {
			at = a.Time
		}
		found[i] = table.Row{at, r.num(a.Value), string(a.Type), r.num(a.Score), expected}
	}
	return section(rep.Operation, rows,
		collection("Anomalies", table.Row{"At", "Value", "Type", "Score", "Expected"}, found))
}

func (r *Renderer) correlate(rep *services.CorrelateResponse) string {
	rows := metaRows(rep.ReportMeta)
	if rep.Other != "" {
		rows = append(rows, table.Row{"Against", rep.Other})
	}
	rows = append(rows,
		table.Row{"Correlation", r.opt(rep.Correlation)},
		table.Row{"Covariance", r.num(rep.Covariance)},
	)
	if rep.Strength != "" {
		rows = append(rows, table.Row{"Strength", rep.Strength})
	}
	return section(rep.Operation, rows, list("Warnings", rep.Warnings))
}

func (r *Renderer) downsample(rep *services.DownsampleResponse) string {
	rows := append(metaRows(rep.ReportMeta),
		table.Row{"Mode", rep.Mode},
		table.Row{"Applied", rep.Applied},
		table.Row{"Threshold", count(rep.Threshold)},
		table.Row{"Kept", count(len(rep.Points))},
	)

	points := make([]table.Row, len(rep.Points))
	for i, p := range rep.Points {
		at := any(i)
		if p.Time != "" {
			at = p.Time
		}
		points[i] = table.Row{at, r.num(p.Value)}
	}
	return section(rep.Operation, rows, collection("Points", table.Row{"At", "Value"}, points))
}

func (r *Renderer) resample(rep *services.ResampleResponse) string {
	rows := append(metaRows(rep.ReportMeta), table.Row{"Level", rep.Level})

	candles := make([]table.Row, len(rep.Candles))
	for i, c := range rep.Candles {
		candles[i] = table.Row{
			c.Time.Format(time.RFC3339),
			r.num(c.Open), r.num(c.High), r.num(c.Low), r.num(c.Close),
			r.num(c.Avg), r.num(c.StdDev), humanize.Comma(c.Count),
		}
	}
	header := table.Row{"Bucket", "Open", "High", "Low", "Close", "Avg", "Std dev", "Count"}
	return section(rep.Operation, rows, collection("Candles", header, candles))
}

func (r *Renderer) gas(p chain.GasPrediction) string {
	rows := []table.Row{
		{"Price", r.num(p.Price) + " gwei"},
		{"Confidence", r.pct(p.Confidence)},
		{"Base price", r.num(p.BasePrice) + " gwei"},
		{"Trend", string(p.Trend)},
		{"Volatility", r.pct(p.Volatility)},
		{"Samples", count(p.Samples)},
	}
	if p.Fallback {
		rows = append(rows, table.Row{"Note", "no history, fallback price"})
	}
	return section("gas", rows)
}

func (r *Renderer) riskScore(s chain.RiskScore) string {
	rows := []table.Row{
		{"Score", r.num(s.Score)},
		{"Level", string(s.Level)},
	}

	contributions := make([]table.Row, 0, len(s.Contributions))
	for _, name := range sortedKeys(s.Contributions) {
		contributions = append(contributions, table.Row{name, r.num(s.Contributions[name])})
	}

	return section("risk score", rows,
		collection("Contributions", table.Row{"Factor", "Points"}, contributions),
		list("Missing (scored 0)", s.Missing),
		list("Ignored (no weight)", s.Ignored))
}

func (r *Renderer) status(s chain.SystemStatus) string {
	rows := []table.Row{
		{"Status", s.Status},
		{"Version", s.Version},
		{"Components", strings.Join(s.Components, ", ")},
		{"Detectors", strings.Join(s.Detectors, ", ")},
		{"Forecasters", strings.Join(s.Forecasters, ", ")},
		{"Generated", s.GeneratedAt.Format(time.RFC3339)},
	}
	return section("status", rows)
}

func (r *Renderer) optPct(f *float64) string {
	if f == nil {
		return notAvailable
	}
	return r.pct(*f)
}

func scale(f *float64, by float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f * by
	return &v
}
