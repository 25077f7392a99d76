package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/personagni/internal/analysis"
	"github.com/KaramelBytes/personagni/internal/chart"
	"github.com/KaramelBytes/personagni/internal/report"
)

var regressNoCharts bool

var regressCmd = &cobra.Command{
	Use:   "regress",
	Short: "Fit average GNI against each country's top personality percentage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		in, err := loadInputs(ctx)
		if err != nil {
			return err
		}
		res, err := analysis.Run(ctx, in)
		if err != nil {
			return err
		}
		if res.Fit == nil {
			return res.FitErr
		}
		fit := *res.Fit
		out := cmd.OutOrStdout()
		if err := report.WriteFit(out, fit); err != nil {
			return err
		}
		fmt.Fprintf(out, "Predictor: %s %%\n", res.Predictor())
		fmt.Fprintf(out, "Intercept: %s\n", report.FormatFloat(fit.Intercept))
		fmt.Fprintf(out, "R squared: %.4f (n=%d)\n", fit.RSquared, fit.N)
		if cfg.RenderCharts && !regressNoCharts {
			path, err := chart.RenderRegression(ctx, res, chartOptions())
			if err != nil {
				return err
			}
			success(cmd, "Wrote chart to %s", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regressCmd)
	regressCmd.Flags().BoolVar(&regressNoCharts, "no-charts", false, "skip writing the regression chart")
}
