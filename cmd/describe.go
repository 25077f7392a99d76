package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/personagni/internal/analysis"
	"github.com/KaramelBytes/personagni/internal/dataset"
	"github.com/KaramelBytes/personagni/internal/report"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show mean, standard deviation, minimum and maximum GNI per country",
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
		stats, err := analysis.DescribeCountries(ctx, t, cfg.Countries, mode)
		if err != nil {
			return err
		}
		return report.WriteDescribe(cmd.OutOrStdout(), stats)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
