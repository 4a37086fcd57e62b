package anomaly

import (
	"math"

	"github.com/soltixdb/quant/pkg/quant"
)

// BollingerDetector compares each point to the Bollinger envelope of the
// window that precedes it. The local baseline follows trends, so it suits
// drifting series where a global mean would flag the tails.
type BollingerDetector struct{}

func init() {
	RegisterDetector("bollinger", &BollingerDetector{})
}

// Name returns the algorithm name
func (b *BollingerDetector) Name() string {
	return "bollinger"
}

// Detect finds points outside the trailing Bollinger bands
func (b *BollingerDetector) Detect(data []DataPoint, config DetectorConfig) []AnomalyResult {
	if len(data) < config.MinDataPoints {
		return nil
	}

	windowSize := config.WindowSize
	if windowSize <= 0 {
		windowSize = quant.DefaultBollingerPeriod
	}
	if windowSize > len(data)/2 {
		windowSize = len(data) / 2
	}
	if windowSize < 3 {
		windowSize = 3
	}
	if windowSize >= len(data) {
		return nil
	}

	multiplier := config.BandMultiplier
	if multiplier <= 0 {
		multiplier = quant.DefaultBollingerMultiplier
	}

	// bands[j] covers data[j : j+windowSize] and judges data[j+windowSize]
	bands := quant.BollingerBands(values(data), windowSize, multiplier)

	var results []AnomalyResult
	for i := windowSize; i < len(data); i++ {
		j := i - windowSize
		lower, middle, upper := bands.Lower[j], bands.Middle[j], bands.Upper[j]
		v := data[i].Value
		if v >= lower && v <= upper {
			continue
		}

		// Score in standard deviations from the window mean
		score := 1.0
		if halfWidth := upper - middle; halfWidth > 0 {
			score = math.Abs(v-middle) / (halfWidth / multiplier)
		}

		anomalyType := AnomalyTypeSpike
		if v < lower {
			anomalyType = AnomalyTypeDrop
		}

		results = append(results, AnomalyResult{
			Index:    i,
			Score:    score,
			Type:     anomalyType,
			Expected: &Range{Min: lower, Max: upper},
		})
	}

	return results
}
