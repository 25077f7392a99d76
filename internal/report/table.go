package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteTable prints the summary as aligned console tables.
func WriteTable(w io.Writer, s *Summary) error {
	gni := tablewriter.NewWriter(w)
	gni.SetHeader([]string{"Country", "Average GNI ($)"})
	gni.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, a := range s.Aggregates {
		gni.Append([]string{a.Country, fmt.Sprintf("%.2f", a.AverageGNI)})
	}
	gni.SetFooter([]string{"Highest / Lowest", fmt.Sprintf("%s / %s", s.GNI.HighestCountry, s.GNI.LowestCountry)})
	gni.Render()

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	pers := tablewriter.NewWriter(w)
	pers.SetHeader([]string{"Country", "Most common", "%", "Least common", "%"})
	for _, p := range s.Personality {
		pers.Append([]string{
			p.Country,
			p.HighestType, fmt.Sprintf("%.4f", p.HighestPct),
			p.LowestType, fmt.Sprintf("%.4f", p.LowestPct),
		})
	}
	pers.Render()

	if s.Fit == nil {
		return nil
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	fit := tablewriter.NewWriter(w)
	fit.SetHeader([]string{"Predictor", "Slope", "Intercept", "r", "R²", "n"})
	fit.Append([]string{
		s.Predictor + " %",
		fmt.Sprintf("%.4f", s.Fit.Slope),
		fmt.Sprintf("%.4f", s.Fit.Intercept),
		fmt.Sprintf("%.4f", s.Fit.Correlation),
		fmt.Sprintf("%.4f", s.Fit.RSquared),
		fmt.Sprintf("%d", s.Fit.N),
	})
	fit.Render()
	return nil
}
