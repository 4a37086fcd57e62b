package quant

import (
	"gonum.org/v1/gonum/floats"
)

// Bands is a volatility envelope around a center line. All three slices
// have the same length and are aligned by window end index.
type Bands struct {
	Middle []float64 `json:"middle"`
	Upper  []float64 `json:"upper"`
	Lower  []float64 `json:"lower"`
}

// SimpleMovingAverage returns the average of every window of length period,
// sliding by one. The first output corresponds to data[period-1].
func SimpleMovingAverage(data []float64, period int) []float64 {
	if !validPeriod(len(data), period, 1) {
		return []float64{}
	}

	result := make([]float64, 0, len(data)-period+1)
	for i := period - 1; i < len(data); i++ {
		result = append(result, floats.Sum(data[i-period+1:i+1])/float64(period))
	}
	return result
}

// ExponentialMovingAverage seeds with the SMA of the first period points and
// then applies the multiplier 2/(period+1) to each later point.
func ExponentialMovingAverage(data []float64, period int) []float64 {
	if !validPeriod(len(data), period, 1) {
		return []float64{}
	}

	multiplier := 2 / float64(period+1)
	ema := floats.Sum(data[:period]) / float64(period)

	result := make([]float64, 0, len(data)-period+1)
	result = append(result, ema)
	for i := period; i < len(data); i++ {
		ema = (data[i]-ema)*multiplier + ema
		result = append(result, ema)
	}
	return result
}

// WeightedMovingAverage weights the oldest point of each window by 1 and the
// newest by period.
func WeightedMovingAverage(data []float64, period int) []float64 {
	if !validPeriod(len(data), period, 1) {
		return []float64{}
	}

	divisor := float64(period*(period+1)) / 2
	result := make([]float64, 0, len(data)-period+1)
	for i := period - 1; i < len(data); i++ {
		window := data[i-period+1 : i+1]
		var sum float64
		for j, v := range window {
			sum += v * float64(j+1)
		}
		result = append(result, sum/divisor)
	}
	return result
}

// MovingStandardDeviation returns the sample standard deviation of every
// window of length period. period must be at least 2.
func MovingStandardDeviation(data []float64, period int) []float64 {
	if !validPeriod(len(data), period, 2) {
		return []float64{}
	}

	result := make([]float64, 0, len(data)-period+1)
	for i := period - 1; i < len(data); i++ {
		sd, _ := StandardDeviation(data[i-period+1:i+1], true)
		result = append(result, sd)
	}
	return result
}

// BollingerBands returns SMA(period) ± multiplier × moving standard deviation.
func BollingerBands(data []float64, period int, multiplier float64) Bands {
	middle := SimpleMovingAverage(data, period)
	deviations := MovingStandardDeviation(data, period)
	if len(middle) == 0 || len(middle) != len(deviations) {
		return Bands{Middle: []float64{}, Upper: []float64{}, Lower: []float64{}}
	}

	upper := make([]float64, len(middle))
	lower := make([]float64, len(middle))
	for i, m := range middle {
		upper[i] = m + multiplier*deviations[i]
		lower[i] = m - multiplier*deviations[i]
	}
	return Bands{Middle: middle, Upper: upper, Lower: lower}
}

// RateOfChange returns the percentage change of data[i] against
// data[i-period] for every i >= period. A zero base yields 0.
func RateOfChange(data []float64, period int) []float64 {
	if period < 1 || period >= len(data) {
		return []float64{}
	}

	result := make([]float64, 0, len(data)-period)
	for i := period; i < len(data); i++ {
		old := data[i-period]
		if old == 0 {
			result = append(result, 0)
			continue
		}
		result = append(result, (data[i]-old)/old*100)
	}
	return result
}

func validPeriod(n, period, minPeriod int) bool {
	return period >= minPeriod && period <= n
}
