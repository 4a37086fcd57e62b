package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/soltixdb/quant/internal/analytics/anomaly"
	"github.com/soltixdb/quant/internal/analytics/resample"
	"github.com/soltixdb/quant/internal/chain"
	"github.com/soltixdb/quant/internal/config"
	"github.com/soltixdb/quant/internal/services"
	"github.com/soltixdb/quant/internal/utils"
	"github.com/soltixdb/quant/pkg/quant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(format string, precision int) (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, config.OutputConfig{Format: format, Precision: precision}), &buf
}

func describeResponse() *services.DescribeResponse {
	skew := 0.5
	return &services.DescribeResponse{
		ReportMeta: services.ReportMeta{
			ReportID:  "r-1",
			Operation: "describe",
			Series:    "btc",
			Points:    1200,
		},
		Summary: quant.Summary{
			Count:  1200,
			Mean:   1234.5678,
			Median: 1000,
		},
		Skewness: &skew,
		Last:     2000,
	}
}

func TestNew_Precision(t *testing.T) {
	r, _ := newRenderer("json", 2)
	assert.Equal(t, 2, r.precision)
	assert.Equal(t, utils.OutputFormatJSON, r.Format())

	r, _ = newRenderer("", -1)
	assert.Equal(t, utils.DefaultPrecision, r.precision)
	assert.Equal(t, utils.OutputFormatTable, r.Format())

	r, _ = newRenderer("table", utils.MaxPrecision+1)
	assert.Equal(t, utils.DefaultPrecision, r.precision)
}

func TestRender_JSON(t *testing.T) {
	r, buf := newRenderer("json", 4)
	require.NoError(t, r.Render(describeResponse()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "r-1", decoded["report_id"])
	assert.Equal(t, "btc", decoded["series"])
	assert.Contains(t, decoded, "summary")
	assert.NotContains(t, decoded, "mad")
	assert.Contains(t, buf.String(), "\n  \"report_id\"")
}

func TestRender_DescribeTable(t *testing.T) {
	r, buf := newRenderer("table", 2)
	require.NoError(t, r.Render(describeResponse()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "=== DESCRIBE ==="))
	assert.Contains(t, out, "1,234.56")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "0.5")
	assert.Contains(t, out, notAvailable)
}

func TestRender_UnknownTypeFallsBackToJSON(t *testing.T) {
	r, buf := newRenderer("table", 2)
	require.NoError(t, r.Render(map[string]int{"a": 1}))
	assert.Contains(t, buf.String(), `"a": 1`)
}

func TestRender_ForecastPredictions(t *testing.T) {
	r, buf := newRenderer("table", 3)
	rep := &services.ForecastResponse{
		ReportMeta: services.ReportMeta{ReportID: "r-2", Operation: "forecast", Points: 10},
		Method:     "linear",
		Confidence: 0.95,
		Predictions: []services.ForecastPrediction{
			{Step: 1, Value: 11, LowerBound: 10, UpperBound: 12},
			{Step: 2, Time: "2024-01-02T00:00:00Z", Value: 12, LowerBound: 10.5, UpperBound: 13.5},
		},
	}
	require.NoError(t, r.Render(rep))

	out := buf.String()
	assert.Contains(t, out, "=== FORECAST ===")
	assert.Contains(t, out, "95%")
	assert.Contains(t, out, "2024-01-02T00:00:00Z")
	assert.Contains(t, out, "13.5")
	assert.Contains(t, strings.ToUpper(out), "TOTAL: 2 ITEMS")
}

func TestRender_AnomaliesEmpty(t *testing.T) {
	r, buf := newRenderer("table", 2)
	rep := &services.AnomalyResponse{
		ReportMeta: services.ReportMeta{ReportID: "r-3", Operation: "anomalies", Points: 20},
		Method:     "zscore",
		Threshold:  3,
	}
	require.NoError(t, r.Render(rep))
	assert.Contains(t, buf.String(), "Anomalies: none")
}

func TestRender_AnomaliesFound(t *testing.T) {
	r, buf := newRenderer("table", 2)
	rep := &services.AnomalyResponse{
		ReportMeta: services.ReportMeta{ReportID: "r-4", Operation: "anomalies", Points: 20},
		Method:     "iqr",
		Count:      1,
		Anomalies: []anomaly.Anomaly{{
			Index:    7,
			Value:    100,
			Score:    4.25,
			Type:     anomaly.AnomalyTypeSpike,
			Expected: &anomaly.Range{Min: 1, Max: 9},
		}},
	}
	require.NoError(t, r.Render(rep))

	out := buf.String()
	assert.Contains(t, out, "spike")
	assert.Contains(t, out, "[1, 9]")
	assert.Contains(t, out, "4.25")
}

func TestRender_ResampleCandles(t *testing.T) {
	r, buf := newRenderer("table", 2)
	bucket := resample.NewBucket(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1500, time.Date(2024, 1, 1, 0, 10, 0, 0, time.UTC))
	bucket.Add(1510.25, time.Date(2024, 1, 1, 0, 20, 0, 0, time.UTC))

	rep := &services.ResampleResponse{
		ReportMeta: services.ReportMeta{ReportID: "r-5", Operation: "resample", Points: 2},
		Level:      "1h",
		Candles:    []services.Candle{{Bucket: bucket, StdDev: bucket.StdDev()}},
	}
	require.NoError(t, r.Render(rep))

	out := buf.String()
	assert.Contains(t, out, "=== RESAMPLE ===")
	assert.Contains(t, out, "2024-01-01T00:00:00Z")
	assert.Contains(t, out, "1,510.25")
	assert.Contains(t, strings.ToUpper(out), "TOTAL: 1 ITEMS")
}

func TestRender_RiskScore(t *testing.T) {
	r, buf := newRenderer("table", 2)
	score := chain.RiskScore{
		Score: 42,
		Level: chain.RiskLevelMedium,
		Contributions: map[string]float64{
			chain.FactorVolatility:    24,
			chain.FactorTrendStrength: 18,
		},
		Missing: []string{chain.FactorMarketConditions},
		Ignored: []string{"liquidity"},
	}
	require.NoError(t, r.Render(score))

	out := buf.String()
	assert.Contains(t, out, "medium")
	assert.Contains(t, out, "  - market_conditions")
	assert.Contains(t, out, "  - liquidity")
	assert.Less(t, strings.Index(out, "trend_strength"), strings.Index(out, "volatility"))
}

func TestRender_GasFallback(t *testing.T) {
	r, buf := newRenderer("table", 2)
	require.NoError(t, r.Render(chain.GasPrediction{Price: 25, Confidence: 50, BasePrice: 25, Trend: quant.TrendUnknown, Fallback: true}))

	out := buf.String()
	assert.Contains(t, out, "25 gwei")
	assert.Contains(t, out, "fallback")
}

func TestRender_Status(t *testing.T) {
	r, buf := newRenderer("table", 2)
	status := chain.SystemStatus{
		Status:      "operational",
		Version:     "1.2.3",
		Components:  []string{"statistics", "anomaly"},
		Detectors:   []string{"iqr", "zscore"},
		GeneratedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, r.Render(status))

	out := buf.String()
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "iqr, zscore")
	assert.Contains(t, out, "2024-01-01T00:00:00Z")
}

func TestFormatting(t *testing.T) {
	r, _ := newRenderer("table", 2)
	assert.Equal(t, "1,234,567.89", r.num(1234567.891))
	assert.Equal(t, "-3.5", r.num(-3.5))
	assert.Equal(t, notAvailable, r.opt(nil))
	assert.Equal(t, "12.5%", r.pct(12.5))
	assert.Nil(t, scale(nil, 100))
	assert.InDelta(t, 5.0, *scale(func() *float64 { v := 0.05; return &v }(), 100), 1e-12)
}
