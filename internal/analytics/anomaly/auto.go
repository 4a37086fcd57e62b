package anomaly

import (
	"math"

	"github.com/soltixdb/quant/internal/analytics"
	"github.com/soltixdb/quant/pkg/quant"
)

// AutoDetector automatically selects the best anomaly detection algorithm
// based on data characteristics (distribution, trend, outliers)
type AutoDetector struct{}

func init() {
	RegisterDetector("auto", &AutoDetector{})
}

// Name returns the algorithm name
func (a *AutoDetector) Name() string {
	return "auto"
}

// Detect finds anomalies by first analyzing data characteristics
// and then selecting the most appropriate algorithm
func (a *AutoDetector) Detect(data []DataPoint, config DetectorConfig) []AnomalyResult {
	if len(data) < config.MinDataPoints {
		return nil
	}

	characteristics := analyzeDataCharacteristics(data)
	selectedAlgorithm := selectAlgorithm(characteristics)

	detector, err := GetDetector(selectedAlgorithm)
	if err != nil {
		// Fallback to Z-Score
		detector = &ZScoreDetector{}
	}

	return detector.Detect(data, config)
}

// DataCharacteristics describes properties of the data
type DataCharacteristics struct {
	// IsNormalDistribution indicates if data follows normal distribution
	IsNormalDistribution bool

	// HasTrend indicates if data has a clear upward/downward trend
	HasTrend bool

	// TrendStrength from -1 (strong downward) to 1 (strong upward)
	TrendStrength float64

	// HasOutliers indicates if there are existing outliers
	HasOutliers bool

	// OutlierPercentage percentage of potential outliers
	OutlierPercentage float64

	// Variability coefficient of variation (stdDev/mean)
	Variability float64

	// DataSize number of data points
	DataSize int

	// SelectedAlgorithm the algorithm that was selected
	SelectedAlgorithm string
}

// analyzeDataCharacteristics examines the data to determine its properties
func analyzeDataCharacteristics(data []DataPoint) DataCharacteristics {
	chars := DataCharacteristics{
		DataSize: len(data),
	}

	if len(data) < 3 {
		return chars
	}

	series := analytics.TimeSeriesData(data)
	vals := series.Values()

	if mean := series.Mean(); mean != 0 {
		chars.Variability = math.Abs(series.StdDev() / mean)
	}

	chars.HasTrend, chars.TrendStrength = detectTrend(vals)
	chars.IsNormalDistribution = checkNormality(vals)

	lower, upper := quant.IQRBounds(vals, quant.DefaultIQRMultiplier)
	outlierCount := 0
	for _, v := range vals {
		if v < lower || v > upper {
			outlierCount++
		}
	}
	chars.OutlierPercentage = float64(outlierCount) / float64(len(vals)) * 100
	chars.HasOutliers = chars.OutlierPercentage > 1 // More than 1% outliers

	return chars
}

// selectAlgorithm chooses the best algorithm based on data characteristics
func selectAlgorithm(chars DataCharacteristics) string {
	// Decision tree for algorithm selection:
	//
	// 1. If data has many outliers (>5%), use IQR (more robust)
	// 2. If data has strong trend, use Bollinger bands on a trailing window
	// 3. If data is normally distributed, use Z-Score
	// 4. Default to IQR for robustness

	if chars.OutlierPercentage > 5 {
		return "iqr"
	}

	if chars.HasTrend && math.Abs(chars.TrendStrength) > 0.3 {
		return "bollinger"
	}

	if chars.IsNormalDistribution {
		return "zscore"
	}

	return "iqr"
}

// detectTrend regresses values on their index. Strength is the signed R².
func detectTrend(vals []float64) (hasTrend bool, strength float64) {
	if len(vals) < 3 {
		return false, 0
	}

	x := make([]float64, len(vals))
	for i := range x {
		x[i] = float64(i)
	}

	fit, err := quant.LinearRegression(x, vals)
	if err != nil {
		return false, 0
	}

	strength = fit.RSquared
	if fit.Slope < 0 {
		strength = -fit.RSquared
	}

	// Consider it a trend if R-squared > 0.1
	return fit.RSquared > 0.1, strength
}

// checkNormality treats data as normal when skewness and excess kurtosis
// are both near zero.
func checkNormality(vals []float64) bool {
	if len(vals) < 10 {
		return false
	}

	skewness, err := quant.Skewness(vals)
	if err != nil {
		return false
	}
	kurtosis, err := quant.Kurtosis(vals)
	if err != nil {
		return false
	}

	return math.Abs(skewness) < 1 && math.Abs(kurtosis) < 2
}

// AnalyzeData returns characteristics of the data (exported for testing)
func AnalyzeData(data []DataPoint) DataCharacteristics {
	chars := analyzeDataCharacteristics(data)
	chars.SelectedAlgorithm = selectAlgorithm(chars)
	return chars
}
