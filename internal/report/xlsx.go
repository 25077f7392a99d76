package report

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/personagni/internal/logging"
	"github.com/KaramelBytes/personagni/internal/utils"
)

// Sheet names written by ExportXLSX.
const (
	SheetGNI         = "GNI"
	SheetPersonality = "Personality"
	SheetRegression  = "Regression"
)

// ExportXLSX writes the summary to a workbook with one sheet per section.
func ExportXLSX(ctx context.Context, path string, s *Summary) error {
	f := excelize.NewFile()
	defer logging.SafeClose(f, logging.FromContext(ctx), "close workbook")

	if err := f.SetSheetName("Sheet1", SheetGNI); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	rows := [][]any{{"Country", "Average GNI ($)"}}
	for _, a := range s.Aggregates {
		rows = append(rows, []any{a.Country, a.AverageGNI})
	}
	rows = append(rows, []any{}, []any{"Highest", s.GNI.HighestCountry, s.GNI.Highest}, []any{"Lowest", s.GNI.LowestCountry, s.GNI.Lowest})
	if err := writeSheet(f, SheetGNI, rows, 18); err != nil {
		return err
	}

	rows = [][]any{{"Country", "Most common", "Most common %", "Least common", "Least common %"}}
	for _, p := range s.Personality {
		rows = append(rows, []any{p.Country, p.HighestType, p.HighestPct, p.LowestType, p.LowestPct})
	}
	if _, err := f.NewSheet(SheetPersonality); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	if err := writeSheet(f, SheetPersonality, rows, 16); err != nil {
		return err
	}

	rows = [][]any{
		{"Run", s.RunID},
		{"Predictor", s.Predictor + " %"},
	}
	if s.Fit != nil {
		rows = append(rows,
			[]any{"Slope", s.Fit.Slope},
			[]any{"Intercept", s.Fit.Intercept},
			[]any{"Correlation", s.Fit.Correlation},
			[]any{"R squared", s.Fit.RSquared},
			[]any{"N", s.Fit.N})
	} else {
		rows = append(rows, []any{"Not fitted", s.FitSkipped})
	}
	if _, err := f.NewSheet(SheetRegression); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	if err := writeSheet(f, SheetRegression, rows, 20); err != nil {
		return err
	}

	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any, width float64) error {
	cols := 0
	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		if len(r) > cols {
			cols = len(r)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	if cols > 0 {
		last, err := excelize.ColumnNumberToName(cols)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", last, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}
