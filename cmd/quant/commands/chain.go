package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/soltixdb/quant/internal/chain"
)

func (a *app) gasCommand() *cobra.Command {
	var input seriesFlags

	cmd := &cobra.Command{
		Use:   "gas",
		Short: "Suggest a gas price from recent prices",
		Long: `Suggest a gas price in gwei from recent gas prices, oldest first.

Without input the configured fallback price is returned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, "gas", func(ctx context.Context) (any, error) {
				var history []float64
				if input.isSet() {
					series, err := a.loadSeries(&input)
					if err != nil {
						return nil, err
					}
					history = series.Data.Values()
				}

				prediction := chain.NewGasPredictor(a.cfg.Gas).Predict(ctx, history)
				a.logger.Debug("Gas price predicted",
					"price", prediction.Price, "trend", prediction.Trend, "fallback", prediction.Fallback)
				return prediction, nil
			})
		},
	}
	input.register(cmd, "", "gas price history")
	return cmd
}

func (a *app) riskScoreCommand() *cobra.Command {
	var raw []string

	cmd := &cobra.Command{
		Use:   "risk-score",
		Short: "Weighted risk score from factor values",
		Long: `Combine factor values (0-100) into a risk score using the configured weights.

Example:
  quant risk-score --factor volatility=60 --factor trend_strength=30 --factor market_conditions=45`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, "risk-score", func(_ context.Context) (any, error) {
				factors, err := parseFactors(raw)
				if err != nil {
					return nil, err
				}

				score := chain.NewRiskScorer(a.cfg.Risk).Score(factors)
				if len(score.Ignored) > 0 {
					a.logger.Warn("Factors without a weight ignored", "factors", score.Ignored)
				}
				return score, nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&raw, "factor", nil, "factor as name=value, repeatable")
	return cmd
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Toolkit status and available methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, "status", func(_ context.Context) (any, error) {
				return chain.Status(a.build.Version), nil
			})
		},
	}
}
