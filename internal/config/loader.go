package config

import (
	"fmt"

	"github.com/soltixdb/quant/internal/utils"
	"github.com/soltixdb/quant/pkg/quant"
	"github.com/spf13/viper"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")          // Current directory
		v.AddConfigPath("./configs")  // Project configs directory
		v.AddConfigPath("./config")   // Alternative config directory
		v.AddConfigPath("/etc/quant") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides, e.g. QUANT_ANALYSIS_SMA_PERIOD
	v.SetEnvPrefix("QUANT")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	// Analysis defaults
	v.SetDefault("analysis.sma_period", d.Analysis.SMAPeriod)
	v.SetDefault("analysis.ema_period", d.Analysis.EMAPeriod)
	v.SetDefault("analysis.wma_period", d.Analysis.WMAPeriod)
	v.SetDefault("analysis.bollinger_period", d.Analysis.BollingerPeriod)
	v.SetDefault("analysis.bollinger_multiplier", d.Analysis.BollingerMultiplier)
	v.SetDefault("analysis.roc_period", d.Analysis.ROCPeriod)
	v.SetDefault("analysis.trend_period", d.Analysis.TrendPeriod)
	v.SetDefault("analysis.volatility_period", d.Analysis.VolatilityPeriod)
	v.SetDefault("analysis.periods_per_year", d.Analysis.PeriodsPerYear)
	v.SetDefault("analysis.risk_free_rate", d.Analysis.RiskFreeRate)
	v.SetDefault("analysis.confidence_level", d.Analysis.ConfidenceLevel)
	v.SetDefault("analysis.zscore_threshold", d.Analysis.ZScoreThreshold)
	v.SetDefault("analysis.iqr_multiplier", d.Analysis.IQRMultiplier)
	v.SetDefault("analysis.forecast_horizon", d.Analysis.ForecastHorizon)
	v.SetDefault("analysis.forecast_method", d.Analysis.ForecastMethod)
	v.SetDefault("analysis.anomaly_method", d.Analysis.AnomalyMethod)
	v.SetDefault("analysis.downsample_mode", d.Analysis.DownsampleMode)
	v.SetDefault("analysis.downsample_threshold", d.Analysis.DownsampleThreshold)

	// Risk score defaults
	v.SetDefault("risk.weights", d.Risk.Weights)

	// Gas heuristic defaults
	v.SetDefault("gas.fallback_price", d.Gas.FallbackPrice)
	v.SetDefault("gas.fallback_confidence", d.Gas.FallbackConfidence)
	v.SetDefault("gas.window", d.Gas.Window)
	v.SetDefault("gas.trend_period", d.Gas.TrendPeriod)
	v.SetDefault("gas.uptrend_multiplier", d.Gas.UptrendMultiplier)
	v.SetDefault("gas.downtrend_multiplier", d.Gas.DowntrendMultiplier)
	v.SetDefault("gas.min_confidence", d.Gas.MinConfidence)
	v.SetDefault("gas.max_confidence", d.Gas.MaxConfidence)

	// Input defaults
	v.SetDefault("input.time_column", d.Input.TimeColumn)
	v.SetDefault("input.value_column", d.Input.ValueColumn)
	v.SetDefault("input.time_format", d.Input.TimeFormat)
	v.SetDefault("input.delimiter", d.Input.Delimiter)
	v.SetDefault("input.timezone", d.Input.Timezone)

	// Output defaults
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.precision", d.Output.Precision)

	// Logging defaults
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_path", d.Logging.OutputPath)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		// Return default configuration
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			SMAPeriod:           20,
			EMAPeriod:           12,
			WMAPeriod:           10,
			BollingerPeriod:     quant.DefaultBollingerPeriod,
			BollingerMultiplier: quant.DefaultBollingerMultiplier,
			ROCPeriod:           10,
			TrendPeriod:         quant.DefaultTrendPeriod,
			VolatilityPeriod:    30,
			PeriodsPerYear:      quant.DefaultPeriodsPerYear,
			RiskFreeRate:        0,
			ConfidenceLevel:     quant.DefaultConfidenceLevel,
			ZScoreThreshold:     quant.DefaultZScoreThreshold,
			IQRMultiplier:       quant.DefaultIQRMultiplier,
			ForecastHorizon:     7,
			ForecastMethod:      "linear",
			AnomalyMethod:       "zscore",
			DownsampleMode:      "auto",
			DownsampleThreshold: 1000,
		},
		Risk: RiskConfig{
			Weights: map[string]float64{
				"volatility":        0.4,
				"trend_strength":    0.3,
				"market_conditions": 0.3,
			},
		},
		Gas: GasConfig{
			FallbackPrice:       25.0,
			FallbackConfidence:  50,
			Window:              10,
			TrendPeriod:         10,
			UptrendMultiplier:   1.02,
			DowntrendMultiplier: 0.98,
			MinConfidence:       60,
			MaxConfidence:       85,
		},
		Input: InputConfig{
			TimeColumn:  utils.DefaultTimeColumn,
			ValueColumn: utils.DefaultValueColumn,
			TimeFormat:  utils.DefaultTimeFormat,
			Delimiter:   ",",
		},
		Output: OutputConfig{
			Format:    string(utils.OutputFormatTable),
			Precision: utils.DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
		},
	}
}
