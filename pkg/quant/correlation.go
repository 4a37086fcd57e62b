package quant

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Correlation returns the Pearson correlation coefficient of x and y.
// The result is not clamped to [-1, 1].
func Correlation(x, y []float64) (float64, error) {
	if err := checkPaired(x, y); err != nil {
		return 0, err
	}

	_, vx := stat.MeanVariance(x, nil)
	_, vy := stat.MeanVariance(y, nil)
	if vx == 0 || vy == 0 {
		return 0, degenerate("zero variance")
	}

	return stat.Correlation(x, y, nil), nil
}

// Covariance returns the sample (divisor n-1) or population (divisor n)
// covariance of x and y.
func Covariance(x, y []float64, sample bool) (float64, error) {
	if err := checkPaired(x, y); err != nil {
		return 0, err
	}

	n := float64(len(x))
	cov := stat.Covariance(x, y, nil)
	if !sample {
		cov = cov * (n - 1) / n
	}
	return cov, nil
}

// checkPaired validates two samples of equal length with at least two
// observations each.
func checkPaired(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: length mismatch %d != %d", ErrInvalidParameter, len(x), len(y))
	}
	if len(x) < 2 {
		return insufficient(2, len(x))
	}
	return nil
}
