package quant

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Direction tells on which side of the IQR fence a point fell.
type Direction string

const (
	DirectionLow  Direction = "low"
	DirectionHigh Direction = "high"
)

// ZScoreAnomaly is a point flagged by DetectAnomaliesZScore.
type ZScoreAnomaly struct {
	Index     int     `json:"index"`
	Value     float64 `json:"value"`
	ZScore    float64 `json:"z_score"`
	Deviation float64 `json:"deviation_percent"` // Signed percent deviation from |mean|, 0 when the mean is 0
}

// IQRAnomaly is a point flagged by DetectAnomaliesIQR.
type IQRAnomaly struct {
	Index     int       `json:"index"`
	Value     float64   `json:"value"`
	Bound     float64   `json:"bound"` // The fence that was crossed
	Direction Direction `json:"direction"`
}

// DetectAnomaliesZScore flags every point whose z-score, computed against
// the mean and sample standard deviation of the whole sequence, exceeds
// threshold in absolute value. Fewer than three points or a zero standard
// deviation yield no anomalies.
func DetectAnomaliesZScore(data []float64, threshold float64) []ZScoreAnomaly {
	anomalies := []ZScoreAnomaly{}
	if len(data) < 3 {
		return anomalies
	}

	mean, variance := stat.MeanVariance(data, nil)
	sd := math.Sqrt(math.Max(variance, 0))
	if sd == 0 {
		return anomalies
	}

	for i, v := range data {
		z := (v - mean) / sd
		if math.Abs(z) <= threshold {
			continue
		}

		var deviation float64
		if mean != 0 {
			deviation = (v - mean) / math.Abs(mean) * 100
		}
		anomalies = append(anomalies, ZScoreAnomaly{
			Index:     i,
			Value:     v,
			ZScore:    z,
			Deviation: deviation,
		})
	}
	return anomalies
}

// DetectAnomaliesIQR flags points outside [Q1 - k*IQR, Q3 + k*IQR] where k
// is multiplier. At least four points are required.
func DetectAnomaliesIQR(data []float64, multiplier float64) []IQRAnomaly {
	anomalies := []IQRAnomaly{}
	if len(data) < 4 {
		return anomalies
	}

	lower, upper := IQRBounds(data, multiplier)
	for i, v := range data {
		switch {
		case v < lower:
			anomalies = append(anomalies, IQRAnomaly{Index: i, Value: v, Bound: lower, Direction: DirectionLow})
		case v > upper:
			anomalies = append(anomalies, IQRAnomaly{Index: i, Value: v, Bound: upper, Direction: DirectionHigh})
		}
	}
	return anomalies
}

// IQRBounds returns the lower and upper Tukey fences of data. data must not
// be empty.
func IQRBounds(data []float64, multiplier float64) (lower, upper float64) {
	sorted := sortedCopy(data)
	q1 := percentileSorted(sorted, 25)
	q3 := percentileSorted(sorted, 75)
	iqr := q3 - q1
	return q1 - multiplier*iqr, q3 + multiplier*iqr
}
