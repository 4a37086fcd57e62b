package quant

// Default parameters of the toolkit routines.
const (
	DefaultBollingerPeriod     = 20
	DefaultBollingerMultiplier = 2.0
	DefaultTrendPeriod         = 20
	DefaultPeriodsPerYear      = 365
	DefaultConfidenceLevel     = 0.95
	DefaultZScoreThreshold     = 3.0
	DefaultIQRMultiplier       = 1.5
)

// SidewaysSlopePercent is the slope, as a percentage of the window mean,
// under which DetectTrend reports a sideways market.
const SidewaysSlopePercent = 0.1

// zTable maps the supported confidence levels to two-sided normal
// critical values. Other levels fall back to defaultZ.
var zTable = map[float64]float64{
	0.90: 1.645,
	0.95: 1.96,
	0.99: 2.576,
}

const defaultZ = 1.96
