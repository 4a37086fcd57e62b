// Package commands implements the quant CLI commands.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/soltixdb/quant/internal/config"
	"github.com/soltixdb/quant/internal/logging"
	"github.com/soltixdb/quant/internal/report"
	"github.com/soltixdb/quant/internal/services"
)

// BuildInfo carries the version stamped into the binary
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// app holds the state shared by all subcommands once the root has run
type app struct {
	build BuildInfo

	configPath string
	format     string
	logLevel   string
	timezone   string

	cfg      *config.Config
	logger   *logging.Logger
	service  *services.AnalysisService
	location *time.Location
}

// NewRootCommand builds the quant command tree.
func NewRootCommand(build BuildInfo) *cobra.Command {
	a := &app{build: build}

	rootCmd := &cobra.Command{
		Use:   "quant",
		Short: "Quantitative statistics toolkit for market and on-chain series",
		Long: `quant computes descriptive statistics, smoothing, trends, forecasts,
risk metrics and anomalies over numeric series read from CSV files or
inline value lists.

Commands:
  describe    Summary statistics of a series
  smooth      Moving averages, bands and transforms
  trend       Trend direction and linear fit
  forecast    Forecast future values
  risk        Volatility, drawdown, VaR and CAGR
  anomalies   Flag unusual points
  correlate   Correlation between two series
  downsample  Reduce a long series to fewer points
  resample    OHLC candles per time bucket
  gas         Gas price suggestion from recent prices
  risk-score  Weighted risk score from factor values
  status      Toolkit status`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to configuration file")
	flags.StringVarP(&a.format, "format", "f", "", "output format: table, json")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.timezone, "timezone", "", "IANA timezone timestamps are converted to, e.g. Europe/Berlin")

	rootCmd.AddCommand(
		a.describeCommand(),
		a.smoothCommand(),
		a.trendCommand(),
		a.forecastCommand(),
		a.riskCommand(),
		a.anomaliesCommand(),
		a.correlateCommand(),
		a.downsampleCommand(),
		a.resampleCommand(),
		a.gasCommand(),
		a.riskScoreCommand(),
		a.statusCommand(),
		a.versionCommand(),
	)

	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the logger
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if a.format != "" {
		cfg.Output.Format = a.format
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.timezone != "" {
		cfg.Input.Timezone = a.timezone
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logging.SetGlobal(logger)

	// Validated above
	a.location, _ = cfg.Input.Location()
	a.cfg = cfg
	a.logger = logger
	a.service = services.NewAnalysisService(logger, cfg.Analysis)

	logger.Debug("Configuration loaded",
		"config", a.configPath, "format", cfg.Output.Format, "version", a.build.Version)
	return nil
}

// run executes fn as a tracked operation and renders its result
func (a *app) run(cmd *cobra.Command, operation string, fn func(ctx context.Context) (any, error)) error {
	var result any
	err := logging.Track(cmd.Context(), a.logger, operation, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	if err != nil {
		return err
	}

	return report.New(cmd.OutOrStdout(), a.cfg.Output).Render(result)
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// Skips configuration loading.
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quant %s (commit: %s, built: %s)\n",
				a.build.Version, a.build.Commit, a.build.BuildTime)
		},
	}
}
