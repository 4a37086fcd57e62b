package anomaly

import (
	"github.com/soltixdb/quant/pkg/quant"
)

// IQRDetector detects anomalies using Interquartile Range (IQR) method
// IQR is robust to outliers compared to Z-Score
// Anomalies are points outside [Q1 - k*IQR, Q3 + k*IQR] where k is typically 1.5
type IQRDetector struct{}

func init() {
	RegisterDetector("iqr", &IQRDetector{})
}

// Name returns the algorithm name
func (iqr *IQRDetector) Name() string {
	return "iqr"
}

// Detect finds anomalies using IQR method
func (iqr *IQRDetector) Detect(data []DataPoint, config DetectorConfig) []AnomalyResult {
	if len(data) < config.MinDataPoints {
		return nil
	}

	multiplier := config.IQRMultiplier
	if multiplier <= 0 {
		multiplier = quant.DefaultIQRMultiplier
	}

	vals := values(data)
	flagged := quant.DetectAnomaliesIQR(vals, multiplier)
	if len(flagged) == 0 {
		return nil
	}

	lowerBound, upperBound := quant.IQRBounds(vals, multiplier)
	expectedRange := &Range{
		Min: lowerBound,
		Max: upperBound,
	}

	// upper - lower = IQR * (1 + 2k)
	iqrValue := (upperBound - lowerBound) / (1 + 2*multiplier)

	results := make([]AnomalyResult, 0, len(flagged))
	for _, a := range flagged {
		// Score is the distance past the fence in IQR units
		score := 1.0
		if iqrValue > 0 {
			if a.Direction == quant.DirectionLow {
				score = (a.Bound - a.Value) / iqrValue
			} else {
				score = (a.Value - a.Bound) / iqrValue
			}
		}

		anomalyType := AnomalyTypeSpike
		if a.Direction == quant.DirectionLow {
			anomalyType = AnomalyTypeDrop
		}

		results = append(results, AnomalyResult{
			Index:    a.Index,
			Score:    score,
			Type:     anomalyType,
			Expected: expectedRange,
		})
	}

	return results
}
