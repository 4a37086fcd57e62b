package chain

import (
	"maps"
	"math"
	"slices"

	"github.com/soltixdb/quant/internal/config"
	"github.com/soltixdb/quant/internal/utils"
)

// RiskLevel classifies a risk score
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Risk factor names with default weights
const (
	FactorVolatility       = "volatility"
	FactorTrendStrength    = "trend_strength"
	FactorMarketConditions = "market_conditions"
)

// DefaultRiskWeights returns the default factor weights
func DefaultRiskWeights() map[string]float64 {
	return map[string]float64{
		FactorVolatility:       0.4,
		FactorTrendStrength:    0.3,
		FactorMarketConditions: 0.3,
	}
}

// RiskScore is the outcome of RiskScorer.Score
type RiskScore struct {
	Score         float64            `json:"score"`
	Level         RiskLevel          `json:"level"`
	Contributions map[string]float64 `json:"contributions"`     // weight × factor per weighted factor
	Missing       []string           `json:"missing,omitempty"` // Weighted factors not supplied, scored as 0
	Ignored       []string           `json:"ignored,omitempty"` // Supplied factors without a weight
}

// RiskScorer combines named factor readings (0-100) into one score
type RiskScorer struct {
	weights map[string]float64
}

// NewRiskScorer creates a scorer from configured weights, falling back to
// the defaults when none are configured
func NewRiskScorer(cfg config.RiskConfig) *RiskScorer {
	weights := cfg.Weights
	if len(weights) == 0 {
		weights = DefaultRiskWeights()
	}
	return &RiskScorer{weights: maps.Clone(weights)}
}

// Weights returns a copy of the scorer's weights
func (s *RiskScorer) Weights() map[string]float64 {
	return maps.Clone(s.weights)
}

// Score returns the weighted sum of factors clamped to [0, 100].
func (s *RiskScorer) Score(factors map[string]float64) RiskScore {
	result := RiskScore{Contributions: make(map[string]float64, len(s.weights))}

	var total float64
	for _, name := range slices.Sorted(maps.Keys(s.weights)) {
		value, ok := factors[name]
		if !ok {
			result.Missing = append(result.Missing, name)
		}
		contribution := s.weights[name] * value
		result.Contributions[name] = contribution
		total += contribution
	}

	for _, name := range slices.Sorted(maps.Keys(factors)) {
		if _, ok := s.weights[name]; !ok {
			result.Ignored = append(result.Ignored, name)
		}
	}

	result.Score = math.Max(utils.RiskScoreMin, math.Min(utils.RiskScoreMax, total))
	result.Level = ClassifyRisk(result.Score)
	return result
}

// ClassifyRisk maps a score to its level
func ClassifyRisk(score float64) RiskLevel {
	switch {
	case score >= utils.RiskLevelHighFrom:
		return RiskLevelHigh
	case score >= utils.RiskLevelMediumFrom:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}
