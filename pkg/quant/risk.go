package quant

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Drawdown is the worst peak-to-trough decline of a price series.
type Drawdown struct {
	MaxDrawdown float64 `json:"max_drawdown"` // Percent below the peak
	PeakIndex   int     `json:"peak_index"`
	TroughIndex int     `json:"trough_index"`
	PeakValue   float64 `json:"peak_value"`
	TroughValue float64 `json:"trough_value"`
}

// LogReturns returns ln(p[i]/p[i-1]) for every i whose previous price is
// non-zero.
func LogReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			returns = append(returns, math.Log(prices[i]/prices[i-1]))
		}
	}
	return returns
}

// SimpleReturns returns (p[i]-p[i-1])/p[i-1] for every i whose previous
// price is non-zero.
func SimpleReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
		}
	}
	return returns
}

// HistoricalVolatility annualizes the sample standard deviation of the most
// recent period log returns and reports it in percent.
func HistoricalVolatility(prices []float64, period int, periodsPerYear float64) (float64, error) {
	if period < 2 {
		return 0, invalidParam("period", period)
	}
	if periodsPerYear <= 0 {
		return 0, invalidParam("periodsPerYear", periodsPerYear)
	}
	if len(prices) < period+1 {
		return 0, insufficient(period+1, len(prices))
	}

	returns := LogReturns(prices)
	if len(returns) < period {
		return 0, insufficient(period, len(returns))
	}

	sd, err := StandardDeviation(returns[len(returns)-period:], true)
	if err != nil {
		return 0, err
	}
	return sd * math.Sqrt(periodsPerYear) * 100, nil
}

// SharpeRatio returns (mean(returns) - riskFreeRate) / sample std-dev.
func SharpeRatio(returns []float64, riskFreeRate float64) (float64, error) {
	sd, err := StandardDeviation(returns, true)
	if err != nil {
		return 0, err
	}
	if sd == 0 {
		return 0, degenerate("zero standard deviation")
	}
	return (stat.Mean(returns, nil) - riskFreeRate) / sd, nil
}

// MaximumDrawdown scans prices once, tracking the running peak. The
// reported peak is the one active when the worst trough occurred. Empty
// input yields a zero drawdown.
func MaximumDrawdown(prices []float64) Drawdown {
	if len(prices) == 0 {
		return Drawdown{}
	}

	result := Drawdown{PeakValue: prices[0], TroughValue: prices[0]}
	peak, peakIdx := prices[0], 0

	for i, p := range prices {
		if p > peak {
			peak, peakIdx = p, i
		}
		if peak <= 0 {
			continue
		}

		dd := (peak - p) / peak * 100
		if dd > result.MaxDrawdown {
			result = Drawdown{
				MaxDrawdown: dd,
				PeakIndex:   peakIdx,
				TroughIndex: i,
				PeakValue:   peak,
				TroughValue: p,
			}
		}
	}
	return result
}

// ValueAtRisk returns the loss threshold, as a positive number for a loss,
// not expected to be exceeded at confidenceLevel (0 < level < 1).
func ValueAtRisk(returns []float64, confidenceLevel float64) (float64, error) {
	if len(returns) == 0 {
		return 0, insufficient(1, 0)
	}
	if !(confidenceLevel > 0 && confidenceLevel < 1) {
		return 0, invalidParam("confidenceLevel", confidenceLevel)
	}
	return -percentileSorted(sortedCopy(returns), (1-confidenceLevel)*100), nil
}
