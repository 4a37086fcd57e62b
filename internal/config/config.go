package config

import (
	"fmt"
	"strings"

	"github.com/soltixdb/quant/internal/utils"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Risk     RiskConfig     `mapstructure:"risk"`
	Gas      GasConfig      `mapstructure:"gas"`
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AnalysisConfig holds the parameters passed to the statistics toolkit
type AnalysisConfig struct {
	SMAPeriod           int     `mapstructure:"sma_period"`
	EMAPeriod           int     `mapstructure:"ema_period"`
	WMAPeriod           int     `mapstructure:"wma_period"`
	BollingerPeriod     int     `mapstructure:"bollinger_period"`
	BollingerMultiplier float64 `mapstructure:"bollinger_multiplier"`
	ROCPeriod           int     `mapstructure:"roc_period"`
	TrendPeriod         int     `mapstructure:"trend_period"`
	VolatilityPeriod    int     `mapstructure:"volatility_period"`
	PeriodsPerYear      float64 `mapstructure:"periods_per_year"` // 365 for daily crypto data, 252 for exchange-traded assets
	RiskFreeRate        float64 `mapstructure:"risk_free_rate"`   // Per-period rate used by the Sharpe ratio
	ConfidenceLevel     float64 `mapstructure:"confidence_level"` // Used by VaR and confidence intervals
	ZScoreThreshold     float64 `mapstructure:"zscore_threshold"`
	IQRMultiplier       float64 `mapstructure:"iqr_multiplier"`
	ForecastHorizon     int     `mapstructure:"forecast_horizon"`
	ForecastMethod      string  `mapstructure:"forecast_method"` // linear, sma, ema
	AnomalyMethod       string  `mapstructure:"anomaly_method"`  // zscore, iqr, bollinger, auto
	DownsampleMode      string  `mapstructure:"downsample_mode"` // none, auto, lttb, minmax, avg, m4
	DownsampleThreshold int     `mapstructure:"downsample_threshold"`
}

// RiskConfig holds the weights of the linear risk-score combiner
type RiskConfig struct {
	Weights map[string]float64 `mapstructure:"weights"` // factor name -> weight
}

// GasConfig holds the gas price heuristic policy
type GasConfig struct {
	FallbackPrice       float64 `mapstructure:"fallback_price"`      // Gwei returned when no history is supplied
	FallbackConfidence  float64 `mapstructure:"fallback_confidence"` // Percent
	Window              int     `mapstructure:"window"`              // SMA window over recent gas prices
	TrendPeriod         int     `mapstructure:"trend_period"`
	UptrendMultiplier   float64 `mapstructure:"uptrend_multiplier"`
	DowntrendMultiplier float64 `mapstructure:"downtrend_multiplier"`
	MinConfidence       float64 `mapstructure:"min_confidence"`
	MaxConfidence       float64 `mapstructure:"max_confidence"`
}

// InputConfig describes how series are read from CSV files
type InputConfig struct {
	TimeColumn  string `mapstructure:"time_column"`
	ValueColumn string `mapstructure:"value_column"`
	TimeFormat  string `mapstructure:"time_format"` // Go layout, or "unix" / "unix_ms"
	Delimiter   string `mapstructure:"delimiter"`
	Timezone    string `mapstructure:"timezone"` // IANA name timestamps are converted to, empty keeps them
}

// OutputConfig describes how reports are rendered
type OutputConfig struct {
	Format    string `mapstructure:"format"`    // table, json
	Precision int    `mapstructure:"precision"` // Decimals shown in tables
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, UnixMs, etc
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Analysis.Validate(); err != nil {
		return fmt.Errorf("analysis config: %w", err)
	}

	if err := c.Risk.Validate(); err != nil {
		return fmt.Errorf("risk config: %w", err)
	}

	if err := c.Gas.Validate(); err != nil {
		return fmt.Errorf("gas config: %w", err)
	}

	if err := c.Input.Validate(); err != nil {
		return fmt.Errorf("input config: %w", err)
	}

	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates analysis configuration
func (c *AnalysisConfig) Validate() error {
	periods := map[string]int{
		"sma_period":       c.SMAPeriod,
		"ema_period":       c.EMAPeriod,
		"wma_period":       c.WMAPeriod,
		"roc_period":       c.ROCPeriod,
		"forecast_horizon": c.ForecastHorizon,
	}
	for name, p := range periods {
		if p < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", name, p)
		}
	}

	if c.BollingerPeriod < 2 {
		return fmt.Errorf("bollinger_period must be at least 2")
	}

	if c.TrendPeriod < 2 {
		return fmt.Errorf("trend_period must be at least 2")
	}

	if c.VolatilityPeriod < 2 {
		return fmt.Errorf("volatility_period must be at least 2")
	}

	if c.PeriodsPerYear <= 0 {
		return fmt.Errorf("periods_per_year must be positive")
	}

	if c.ConfidenceLevel <= 0 || c.ConfidenceLevel >= 1 {
		return fmt.Errorf("confidence_level must be between 0 and 1 (exclusive)")
	}

	if c.ZScoreThreshold <= 0 {
		return fmt.Errorf("zscore_threshold must be positive")
	}

	if c.IQRMultiplier <= 0 {
		return fmt.Errorf("iqr_multiplier must be positive")
	}

	if c.DownsampleThreshold < 2 {
		return fmt.Errorf("downsample_threshold must be at least 2")
	}

	return nil
}

// Validate validates risk configuration
func (c *RiskConfig) Validate() error {
	if len(c.Weights) == 0 {
		return fmt.Errorf("risk.weights is required")
	}

	for name, w := range c.Weights {
		if w < 0 {
			return fmt.Errorf("risk.weights.%s cannot be negative", name)
		}
	}

	return nil
}

// Validate validates gas configuration
func (c *GasConfig) Validate() error {
	if c.FallbackPrice <= 0 {
		return fmt.Errorf("gas.fallback_price must be positive")
	}

	if c.Window < 1 {
		return fmt.Errorf("gas.window must be at least 1")
	}

	if c.TrendPeriod < 2 {
		return fmt.Errorf("gas.trend_period must be at least 2")
	}

	if c.MinConfidence > c.MaxConfidence {
		return fmt.Errorf("gas.min_confidence cannot exceed gas.max_confidence")
	}

	if c.UptrendMultiplier <= 0 || c.DowntrendMultiplier <= 0 {
		return fmt.Errorf("gas trend multipliers must be positive")
	}

	return nil
}

// Validate validates input configuration
func (c *InputConfig) Validate() error {
	if c.ValueColumn == "" {
		return fmt.Errorf("input.value_column is required")
	}

	if len([]rune(c.Delimiter)) != 1 {
		return fmt.Errorf("input.delimiter must be a single character")
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("input.timezone: %w", err)
	}

	return nil
}

// Validate validates output configuration
func (c *OutputConfig) Validate() error {
	switch strings.ToLower(c.Format) {
	case "table", "json":
	default:
		return fmt.Errorf("output.format must be 'table' or 'json'")
	}

	if c.Precision < 0 || c.Precision > utils.MaxPrecision {
		return fmt.Errorf("output.precision must be between 0 and %d", utils.MaxPrecision)
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
