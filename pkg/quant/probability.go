package quant

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Interval is a confidence interval around a sample mean.
type Interval struct {
	Mean   float64 `json:"mean"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Margin float64 `json:"margin"`
	Level  float64 `json:"level"`
}

// ConfidenceInterval returns mean ± z × standard error. z comes from a fixed
// table for the 0.90, 0.95 and 0.99 levels; any other level uses 1.96.
func ConfidenceInterval(data []float64, confidenceLevel float64) (Interval, error) {
	sd, err := StandardDeviation(data, true)
	if err != nil {
		return Interval{}, err
	}

	z, ok := zTable[confidenceLevel]
	if !ok {
		z = defaultZ
	}

	mean := stat.Mean(data, nil)
	margin := z * sd / math.Sqrt(float64(len(data)))
	return Interval{
		Mean:   mean,
		Lower:  mean - margin,
		Upper:  mean + margin,
		Margin: margin,
		Level:  confidenceLevel,
	}, nil
}

// NormalCDF approximates the standard normal cumulative distribution with
// the Abramowitz-Stegun 26.2.17 polynomial.
func NormalCDF(z float64) float64 {
	t := 1 / (1 + 0.2316419*math.Abs(z))
	d := 0.3989423 * math.Exp(-z*z/2)
	p := d * t * (0.3193815 + t*(-0.3565638+t*(1.781478+t*(-1.821256+t*1.330274))))

	if z > 0 {
		return 1 - p
	}
	return p
}

// ProbabilityInRange returns the normal CDF at the z-score of value against
// data, or 0.5 when the z-score is undefined.
func ProbabilityInRange(value float64, data []float64) float64 {
	z, err := ZScore(value, data)
	if err != nil {
		return 0.5
	}
	return NormalCDF(z)
}
