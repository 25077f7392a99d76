package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/personagni/internal/analysis"
	"github.com/KaramelBytes/personagni/internal/chart"
	"github.com/KaramelBytes/personagni/internal/report"
	"github.com/KaramelBytes/personagni/internal/utils"
)

type runOptions struct {
	Format   string
	Charts   bool
	Markdown string
	JSON     string
	XLSX     string
}

var (
	runOutputPath string
	runJSONPath   string
	runXLSXPath   string
	runFormat     string
	runNoCharts   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full analysis: averages, extremes, charts and regression",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, runOptions{
			Format:   runFormat,
			Charts:   cfg.RenderCharts && !runNoCharts,
			Markdown: runOutputPath,
			JSON:     runJSONPath,
			XLSX:     runXLSXPath,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runOutputPath, "output", "o", "", "write a Markdown report to this path")
	runCmd.Flags().StringVar(&runJSONPath, "json", "", "write the run summary as JSON to this path")
	runCmd.Flags().StringVar(&runXLSXPath, "xlsx", "", "write the run summary as an Excel workbook to this path")
	runCmd.Flags().StringVar(&runFormat, "format", "text", "console format: text|table")
	runCmd.Flags().BoolVar(&runNoCharts, "no-charts", false, "skip writing PNG charts")
}

func runPipeline(cmd *cobra.Command, opt runOptions) error {
	format := strings.ToLower(strings.TrimSpace(opt.Format))
	if format != "text" && format != "table" {
		return fmt.Errorf("unsupported --format: %s (use text|table)", opt.Format)
	}
	ctx := cmd.Context()
	in, err := loadInputs(ctx)
	if err != nil {
		return err
	}
	res, err := analysis.Run(ctx, in)
	if err != nil {
		return err
	}
	sum := report.NewSummary(res, report.Inputs{
		PersonalityFile: cfg.PersonalityFile,
		GNIFile:         cfg.GNIFile,
		MatchMode:       string(in.Match),
	})

	if opt.Charts {
		paths, err := chart.RenderAll(ctx, res, chartOptions())
		if err != nil {
			return err
		}
		sum.Charts = paths
		success(cmd, "Wrote %d charts to %s", len(paths), displayDir(cfg.ChartsDir))
	}

	out := cmd.OutOrStdout()
	if format == "table" {
		if err := report.WriteTable(out, sum); err != nil {
			return err
		}
	} else if err := report.WriteText(out, sum); err != nil {
		return err
	}

	if opt.Markdown != "" {
		if err := utils.SafeWriteFile(opt.Markdown, []byte(sum.Markdown())); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		success(cmd, "Wrote report to %s", opt.Markdown)
	}
	if opt.JSON != "" {
		if err := report.WriteJSON(opt.JSON, sum); err != nil {
			return err
		}
		success(cmd, "Wrote summary %s to %s", sum.RunID, opt.JSON)
	}
	if opt.XLSX != "" {
		if err := report.ExportXLSX(ctx, opt.XLSX, sum); err != nil {
			return err
		}
		success(cmd, "Wrote workbook to %s", opt.XLSX)
	}
	if res.Fit == nil {
		warn(cmd, "regression skipped: %v", res.FitErr)
	}
	if len(res.TopTypes()) > 1 {
		warn(cmd, "countries disagree on the most common type; regressing on each country's own top percentage")
	}
	return nil
}

func displayDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
