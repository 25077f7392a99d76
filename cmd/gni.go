package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/personagni/internal/analysis"
	"github.com/KaramelBytes/personagni/internal/chart"
	"github.com/KaramelBytes/personagni/internal/dataset"
	"github.com/KaramelBytes/personagni/internal/report"
)

var gniChart bool

var gniCmd = &cobra.Command{
	Use:   "gni",
	Short: "Report average GNI per capita and the highest and lowest countries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		ctx := cmd.Context()
		mode, err := matchMode()
		if err != nil {
			return err
		}
		t, err := loadTable(ctx, dataset.DatasetGNI, cfg.GNIFile)
		if err != nil {
			return err
		}
		aggs, err := analysis.AggregateGNI(ctx, t, cfg.Countries, mode)
		if err != nil {
			return err
		}
		ext, err := analysis.CompareGNI(aggs)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := report.WriteGNI(out, aggs); err != nil {
			return err
		}
		if err := report.WriteGNIExtremes(out, ext); err != nil {
			return err
		}
		if gniChart {
			countries := make([]string, len(aggs))
			avgs := make([]float64, len(aggs))
			for i, a := range aggs {
				countries[i], avgs[i] = a.Country, a.AverageGNI
			}
			path := chartPath(cfg.GNIChartFile)
			if err := chart.GNIBars(countries, avgs, path, chartOptions()); err != nil {
				return err
			}
			success(cmd, "Wrote chart to %s", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gniCmd)
	gniCmd.Flags().BoolVar(&gniChart, "chart", false, "also write the GNI bar chart")
}
