// Package quant provides stateless numeric routines for financial and
// blockchain time series.
//
// The toolkit is grouped by purpose:
//
//   - Descriptive statistics: Mean, Median, StandardDeviation, Variance,
//     Percentile, ZScore, Describe
//   - Correlation and covariance: Correlation, Covariance
//   - Smoothing: SimpleMovingAverage, ExponentialMovingAverage,
//     WeightedMovingAverage, MovingStandardDeviation, BollingerBands,
//     RateOfChange
//   - Regression and forecasting: LinearRegression, DetectTrend,
//     ForecastLinear
//   - Volatility and risk: HistoricalVolatility, SharpeRatio,
//     MaximumDrawdown, ValueAtRisk
//   - Anomaly detection: DetectAnomaliesZScore, DetectAnomaliesIQR
//   - Probability: ConfidenceInterval, NormalCDF, ProbabilityInRange
//   - Utilities: PercentChange, Normalize, Rescale, CAGR
//
// Every function is pure: it reads its arguments, never reorders or
// modifies a caller's slice, and keeps no state between calls, so all of
// them are safe for concurrent use.
//
// # Undefined results
//
// Scalar routines return (value, error). A nil error with a zero value is a
// computed zero; an undefined result is reported through one of three
// sentinel errors that callers match with errors.Is:
//
//	v, err := quant.StandardDeviation(prices, true)
//	switch {
//	case errors.Is(err, quant.ErrInsufficientData):
//	    // fewer than two observations
//	case err != nil:
//	    // invalid parameter or degenerate input
//	}
//
// Windowed routines returning sequences keep a simpler convention: an
// invalid period yields an empty slice.
package quant
