package quant

import (
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the descriptive statistics of a sequence.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"` // Sample standard deviation
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	IQR    float64 `json:"iqr"`
}

// Mean returns the arithmetic average of data.
func Mean(data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, insufficient(1, 0)
	}
	return stat.Mean(data, nil), nil
}

// Median returns the middle value of data, averaging the two middle values
// when the count is even.
func Median(data []float64) (float64, error) {
	n := len(data)
	if n == 0 {
		return 0, insufficient(1, 0)
	}

	sorted := sortedCopy(data)
	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2, nil
	}
	return sorted[mid], nil
}

// StandardDeviation returns the sample (divisor n-1) or population
// (divisor n) standard deviation. At least two observations are required
// in both modes.
func StandardDeviation(data []float64, sample bool) (float64, error) {
	v, err := Variance(data, sample)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// Variance returns the sample or population variance of data.
func Variance(data []float64, sample bool) (float64, error) {
	n := len(data)
	if n < 2 {
		return 0, insufficient(2, n)
	}

	_, v := stat.MeanVariance(data, nil)
	if !sample {
		v = v * float64(n-1) / float64(n)
	}
	if v < 0 {
		v = 0
	}
	return v, nil
}

// Percentile returns the p-th percentile (0 <= p <= 100) of data using
// linear interpolation between the closest ranks.
func Percentile(data []float64, p float64) (float64, error) {
	if len(data) == 0 {
		return 0, insufficient(1, 0)
	}
	if math.IsNaN(p) || p < 0 || p > 100 {
		return 0, invalidParam("percentile", p)
	}
	return percentileSorted(sortedCopy(data), p), nil
}

// ZScore returns how many population standard deviations value lies from
// the mean of data.
func ZScore(value float64, data []float64) (float64, error) {
	sd, err := StandardDeviation(data, false)
	if err != nil {
		return 0, err
	}
	if sd == 0 {
		return 0, degenerate("zero standard deviation")
	}
	return (value - stat.Mean(data, nil)) / sd, nil
}

// Describe summarizes data in a single pass over a sorted copy.
func Describe(data []float64) (Summary, error) {
	n := len(data)
	if n < 2 {
		return Summary{}, insufficient(2, n)
	}

	sorted := sortedCopy(data)
	mean, variance := stat.MeanVariance(data, nil)
	median, _ := Median(data)
	q1 := percentileSorted(sorted, 25)
	q3 := percentileSorted(sorted, 75)

	return Summary{
		Count:  n,
		Mean:   mean,
		Median: median,
		StdDev: math.Sqrt(math.Max(variance, 0)),
		Min:    floats.Min(data),
		Max:    floats.Max(data),
		Q1:     q1,
		Q3:     q3,
		IQR:    q3 - q1,
	}, nil
}

// MedianAbsoluteDeviation returns the median of absolute deviations from
// the median, a spread measure robust to outliers.
func MedianAbsoluteDeviation(data []float64) (float64, error) {
	median, err := Median(data)
	if err != nil {
		return 0, err
	}

	deviations := make([]float64, len(data))
	for i, v := range data {
		deviations[i] = math.Abs(v - median)
	}
	return Median(deviations)
}

// Skewness returns the population skewness of data.
func Skewness(data []float64) (float64, error) {
	return standardizedMoment(data, 3)
}

// Kurtosis returns the population excess kurtosis of data.
func Kurtosis(data []float64) (float64, error) {
	k, err := standardizedMoment(data, 4)
	if err != nil {
		return 0, err
	}
	return k - 3, nil
}

func standardizedMoment(data []float64, order int) (float64, error) {
	n := len(data)
	if n < 3 {
		return 0, insufficient(3, n)
	}

	sd, _ := StandardDeviation(data, false)
	if sd == 0 {
		return 0, degenerate("zero standard deviation")
	}

	mean := stat.Mean(data, nil)
	var sum float64
	for _, v := range data {
		sum += math.Pow((v-mean)/sd, float64(order))
	}
	return sum / float64(n), nil
}

// sortedCopy returns an ascending copy of data; data itself is untouched.
func sortedCopy(data []float64) []float64 {
	sorted := slices.Clone(data)
	sort.Float64s(sorted)
	return sorted
}

// percentileSorted interpolates the p-th percentile of an ascending,
// non-empty slice.
func percentileSorted(sorted []float64, p float64) float64 {
	index := p / 100 * float64(len(sorted)-1)
	lower := math.Floor(index)
	upper := math.Ceil(index)

	if lower == upper {
		return sorted[int(lower)]
	}

	fraction := index - lower
	lo, hi := sorted[int(lower)], sorted[int(upper)]
	return lo + (hi-lo)*fraction
}
