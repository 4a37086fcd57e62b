package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/soltixdb/quant/internal/services"
)

func (a *app) describeCommand() *cobra.Command {
	var input seriesFlags

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Summary statistics of a series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, "describe", func(ctx context.Context) (any, error) {
				series, err := a.loadSeries(&input)
				if err != nil {
					return nil, err
				}
				return a.service.Describe(ctx, series)
			})
		},
	}
	input.register(cmd, "", "series")
	return cmd
}

func (a *app) smoothCommand() *cobra.Command {
	var (
		input seriesFlags
		req   services.SmoothRequest
	)

	cmd := &cobra.Command{
		Use:   "smooth",
		Short: "Moving averages, bands and transforms",
		Long: `Derive a smoothed or transformed series.

Methods:
  sma        Simple moving average
  ema        Exponential moving average
  wma        Linearly weighted moving average
  mstd       Moving sample standard deviation
  bollinger  Bollinger bands
  roc        Rate of change, percent
  normalize  Min-max normalization to [0, 1]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, "smooth", func(ctx context.Context) (any, error) {
				series, err := a.loadSeries(&input)
				if err != nil {
					return nil, err
				}
				req.Series = series
				return a.service.Smooth(ctx, req)
			})
		},
	}
	input.register(cmd, "", "series")
	cmd.Flags().StringVarP(&req.Method, "method", "m", services.SmoothSMA, "smoothing method")
	cmd.Flags().IntVarP(&req.Period, "period", "p", 0, "window length (0 uses the configured default)")
	cmd.Flags().Float64Var(&req.Multiplier, "multiplier", 0, "bollinger band width in standard deviations")
	return cmd
}

func (a *app) trendCommand() *cobra.Command {
	var (
		input  seriesFlags
		period int
	)

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Trend direction and linear fit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, "trend", func(ctx context.Context) (any, error) {
				series, err := a.loadSeries(&input)
				if err != nil {
					return nil, err
				}
				return a.service.Trend(ctx, series, period)
			})
		},
	}
	input.register(cmd, "", "series")
	cmd.Flags().IntVarP(&period, "period", "p", 0, "trailing window (0 uses the configured default)")
	return cmd
}

func (a *app) forecastCommand() *cobra.Command {
	var (
		input seriesFlags
		req   services.ForecastRequest
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast future values",
		Long: `Forecast future values with a prediction interval.

Methods:
  linear  Least-squares line over the index
  sma     Flat forecast at the trailing simple moving average
  ema     Flat forecast at the final exponential moving average`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, "forecast", func(ctx context.Context) (any, error) {
				series, err := a.loadSeries(&input)
				if err != nil {
					return nil, err
				}
				req.Series = series
				return a.service.Forecast(ctx, req)
			})
		},
	}
	input.register(cmd, "", "series")
	cmd.Flags().StringVarP(&req.Method, "method", "m", "", "forecast method (empty uses the configured default)")
	cmd.Flags().IntVarP(&req.Horizon, "horizon", "n", 0, "number of steps to forecast")
	cmd.Flags().IntVarP(&req.WindowSize, "window", "w", 0, "moving average window")
	cmd.Flags().DurationVar(&req.Interval, "interval", 0, "spacing of forecast timestamps (default inferred)")
	return cmd
}

func (a *app) riskCommand() *cobra.Command {
	var (
		input seriesFlags
		req   services.RiskRequest
	)

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Volatility, Sharpe ratio, drawdown, VaR and CAGR of a price series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, "risk", func(ctx context.Context) (any, error) {
				series, err := a.loadSeries(&input)
				if err != nil {
					return nil, err
				}
				req.Series = series
				return a.service.Risk(ctx, req)
			})
		},
	}
	input.register(cmd, "", "price series")
	cmd.Flags().IntVarP(&req.Period, "period", "p", 0, "volatility window (0 uses the configured default)")
	cmd.Flags().Float64Var(&req.Years, "years", 0, "span of the series in years for CAGR (default inferred)")
	return cmd
}

func (a *app) anomaliesCommand() *cobra.Command {
	var (
		input seriesFlags
		req   services.AnomalyRequest
	)

	cmd := &cobra.Command{
		Use:   "anomalies",
		Short: "Flag unusual points",
		Long: `Flag unusual points of a series.

Methods:
  zscore     Distance from the mean in standard deviations
  iqr        Outside the interquartile fences
  bollinger  Outside the trailing Bollinger bands
  auto       Pick a method from the shape of the data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, "anomalies", func(ctx context.Context) (any, error) {
				series, err := a.loadSeries(&input)
				if err != nil {
					return nil, err
				}
				req.Series = series
				return a.service.Anomalies(ctx, req)
			})
		},
	}
	input.register(cmd, "", "series")
	cmd.Flags().StringVarP(&req.Method, "method", "m", "", "detection method (empty uses the configured default)")
	cmd.Flags().Float64VarP(&req.Threshold, "threshold", "t", 0, "z-score threshold")
	cmd.Flags().Float64Var(&req.Multiplier, "multiplier", 0, "IQR fence multiplier")
	return cmd
}

func (a *app) correlateCommand() *cobra.Command {
	var x, y seriesFlags

	cmd := &cobra.Command{
		Use:   "correlate",
		Short: "Pearson correlation and covariance of two series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, "correlate", func(ctx context.Context) (any, error) {
				first, err := a.loadSeries(&x)
				if err != nil {
					return nil, err
				}
				second, err := a.loadSeries(&y)
				if err != nil {
					return nil, err
				}
				return a.service.Correlate(ctx, first, second)
			})
		},
	}
	x.register(cmd, "", "first series")
	y.register(cmd, "other-", "second series")
	return cmd
}

func (a *app) downsampleCommand() *cobra.Command {
	var (
		input seriesFlags
		req   services.DownsampleRequest
	)

	cmd := &cobra.Command{
		Use:   "downsample",
		Short: "Reduce a long series to a target number of points",
		Long: `Reduce a long series to about --threshold points, keeping its shape.

Modes:
  auto    Pick a mode from the spikiness of the data
  lttb    Largest-Triangle-Three-Buckets
  minmax  Minimum and maximum of each bucket
  m4      First, minimum, maximum and last of each bucket
  avg     Mean of each bucket
  none    Keep every point`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, "downsample", func(ctx context.Context) (any, error) {
				series, err := a.loadSeries(&input)
				if err != nil {
					return nil, err
				}
				req.Series = series
				return a.service.Downsample(ctx, req)
			})
		},
	}
	input.register(cmd, "", "series")
	cmd.Flags().StringVarP(&req.Mode, "mode", "m", "", "downsampling mode (empty uses the configured default)")
	cmd.Flags().IntVarP(&req.Threshold, "threshold", "t", 0, "target number of points (0 uses the configured default)")
	return cmd
}

func (a *app) resampleCommand() *cobra.Command {
	var (
		input seriesFlags
		req   services.ResampleRequest
	)

	cmd := &cobra.Command{
		Use:   "resample",
		Short: "Group a timestamped series into OHLC candles",
		Long: `Group a timestamped series into candles per time bucket.

Levels are 1h, 1d, 1w (weeks start Monday), 1M, 1y or any Go duration
such as 15m or 4h.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, "resample", func(ctx context.Context) (any, error) {
				series, err := a.loadSeries(&input)
				if err != nil {
					return nil, err
				}
				req.Series = series
				return a.service.Resample(ctx, req)
			})
		},
	}
	input.register(cmd, "", "series")
	cmd.Flags().StringVarP(&req.Level, "level", "l", "1d", "bucket size")
	return cmd
}
