package anomaly

import (
	"math"

	"github.com/soltixdb/quant/pkg/quant"
)

// ZScoreDetector detects anomalies using Z-Score (standard score)
// Z-Score measures how many standard deviations a point is from the mean
// Points with |Z| > threshold are considered anomalies
type ZScoreDetector struct{}

func init() {
	RegisterDetector("zscore", &ZScoreDetector{})
}

// Name returns the algorithm name
func (z *ZScoreDetector) Name() string {
	return "zscore"
}

// Detect finds anomalies using Z-Score method
func (z *ZScoreDetector) Detect(data []DataPoint, config DetectorConfig) []AnomalyResult {
	if len(data) < config.MinDataPoints {
		return nil
	}

	vals := values(data)
	mean, err := quant.Mean(vals)
	if err != nil {
		return nil
	}
	stdDev, err := quant.StandardDeviation(vals, true)
	if err != nil {
		return nil
	}

	// Avoid division by zero
	if stdDev == 0 {
		return z.detectFlatline(data, config)
	}

	expectedRange := &Range{
		Min: mean - config.Threshold*stdDev,
		Max: mean + config.Threshold*stdDev,
	}

	flagged := quant.DetectAnomaliesZScore(vals, config.Threshold)
	results := make([]AnomalyResult, 0, len(flagged))
	for _, a := range flagged {
		anomalyType := AnomalyTypeDrop
		if a.ZScore > 0 {
			anomalyType = AnomalyTypeSpike
		}

		results = append(results, AnomalyResult{
			Index:    a.Index,
			Score:    math.Abs(a.ZScore),
			Type:     anomalyType,
			Expected: expectedRange,
		})
	}

	return results
}

// detectFlatline reports every point when the series never varies.
// The caller has already established a zero standard deviation.
func (z *ZScoreDetector) detectFlatline(data []DataPoint, config DetectorConfig) []AnomalyResult {
	if len(data) < config.MinDataPoints || len(data) < 2 {
		return nil
	}

	results := make([]AnomalyResult, len(data))
	for i := range data {
		results[i] = AnomalyResult{
			Index: i,
			Score: 1.0, // Certainty score
			Type:  AnomalyTypeFlatline,
		}
	}
	return results
}
