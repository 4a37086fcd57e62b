// Package chain holds the blockchain-facing heuristics built on the
// statistics toolkit: gas price prediction and the weighted risk score.
package chain

import (
	"context"
	"math"

	"github.com/soltixdb/quant/internal/config"
	"github.com/soltixdb/quant/internal/logging"
	"github.com/soltixdb/quant/pkg/quant"
)

// GasPrediction is the suggested gas price for the next block
type GasPrediction struct {
	Price      float64              `json:"price"`      // Gwei
	Confidence float64              `json:"confidence"` // Percent
	BasePrice  float64              `json:"base_price"` // SMA before the trend adjustment
	Trend      quant.TrendDirection `json:"trend"`
	Volatility float64              `json:"volatility"` // Coefficient of variation, percent
	Samples    int                  `json:"samples"`
	Fallback   bool                 `json:"fallback"` // True when no history was supplied
}

// GasPredictor turns recent gas prices into a suggestion
type GasPredictor struct {
	cfg config.GasConfig
}

// NewGasPredictor creates a predictor with the given policy
func NewGasPredictor(cfg config.GasConfig) *GasPredictor {
	return &GasPredictor{cfg: cfg}
}

// Predict suggests a gas price from history, most recent last.
//
// The base price is the SMA over the last Window prices, nudged up or down
// by the trend of the last TrendPeriod prices. Confidence grows with the
// sample count and shrinks with volatility, within [MinConfidence,
// MaxConfidence].
func (p *GasPredictor) Predict(ctx context.Context, history []float64) GasPrediction {
	n := len(history)
	if n == 0 {
		logging.DebugCtx(ctx, "No gas history, using fallback", "price", p.cfg.FallbackPrice)
		return GasPrediction{
			Price:      p.cfg.FallbackPrice,
			Confidence: p.cfg.FallbackConfidence,
			BasePrice:  p.cfg.FallbackPrice,
			Trend:      quant.TrendInsufficientData,
			Fallback:   true,
		}
	}

	window := clampPeriod(p.cfg.Window, n)
	sma := quant.SimpleMovingAverage(history, window)
	base := sma[len(sma)-1]

	trend := quant.DetectTrend(history, clampPeriod(p.cfg.TrendPeriod, n))
	multiplier := 1.0
	switch trend.Direction {
	case quant.TrendUp:
		multiplier = p.cfg.UptrendMultiplier
	case quant.TrendDown:
		multiplier = p.cfg.DowntrendMultiplier
	}

	volatility := coefficientOfVariation(history)
	confidence := 60 + 5*float64(n) - 2*volatility
	confidence = math.Max(p.cfg.MinConfidence, math.Min(p.cfg.MaxConfidence, confidence))

	prediction := GasPrediction{
		Price:      base * multiplier,
		Confidence: confidence,
		BasePrice:  base,
		Trend:      trend.Direction,
		Volatility: volatility,
		Samples:    n,
	}

	logging.DebugCtx(ctx, "Gas price predicted",
		"price", prediction.Price,
		"trend", string(prediction.Trend),
		"confidence", prediction.Confidence)

	return prediction
}

// clampPeriod limits period to [1, n]; a non-positive period means n
func clampPeriod(period, n int) int {
	if period <= 0 || period > n {
		return n
	}
	return period
}

// coefficientOfVariation returns sample std-dev / mean × 100, 0 when undefined
func coefficientOfVariation(data []float64) float64 {
	sd, err := quant.StandardDeviation(data, true)
	if err != nil {
		return 0
	}
	mean, err := quant.Mean(data)
	if err != nil || mean == 0 {
		return 0
	}
	return sd / mean * 100
}
