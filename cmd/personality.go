package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/personagni/internal/analysis"
	"github.com/KaramelBytes/personagni/internal/chart"
	"github.com/KaramelBytes/personagni/internal/dataset"
	"github.com/KaramelBytes/personagni/internal/report"
	"github.com/KaramelBytes/personagni/internal/utils"
)

var persChart bool

var personalityCmd = &cobra.Command{
	Use:   "personality [country...]",
	Short: "Report the most and least common personality types per country",
	Long:  "Report the most and least common personality types for the given countries, or for the configured list when none are named.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		ctx := cmd.Context()
		mode, err := matchMode()
		if err != nil {
			return err
		}
		countries := cfg.Countries
		if len(args) > 0 {
			countries = args
		}
		t, err := loadTable(ctx, dataset.DatasetPersonality, cfg.PersonalityFile)
		if err != nil {
			return err
		}
		dists, exts, err := analysis.ProfilePersonalities(ctx, t, countries, mode)
		if err != nil {
			return err
		}
		if err := report.WritePersonality(cmd.OutOrStdout(), exts); err != nil {
			return err
		}
		if persChart {
			for _, d := range dists {
				path := chartPath("personality-" + utils.Slug(d.Country, "country") + ".png")
				if err := chart.PersonalityBars(d.Country, d.Types, d.Percentages, path, chartOptions()); err != nil {
					return err
				}
				success(cmd, "Wrote chart to %s", path)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(personalityCmd)
	personalityCmd.Flags().BoolVar(&persChart, "chart", false, "also write one bar chart per country")
}

func chartPath(name string) string {
	return filepath.Join(cfg.ChartsDir, name)
}

func chartOptions() chart.Options {
	return chart.Options{
		Dir:     cfg.ChartsDir,
		GNIFile: cfg.GNIChartFile,
		Width:   vg.Length(cfg.ChartWidth) * vg.Inch,
		Height:  vg.Length(cfg.ChartHeight) * vg.Inch,
	}
}
