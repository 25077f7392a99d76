package report

import (
	"fmt"
	"strings"
	"time"
)

// Markdown renders the summary as a sectioned report.
func (s *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[RUN SUMMARY]\n")
	b.WriteString(fmt.Sprintf("Run: %s\n", s.RunID))
	if !s.GeneratedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Generated: %s\n", s.GeneratedAt.Format(time.RFC3339)))
	}
	if s.Inputs.PersonalityFile != "" {
		b.WriteString(fmt.Sprintf("Personality file: %s\n", s.Inputs.PersonalityFile))
	}
	if s.Inputs.GNIFile != "" {
		b.WriteString(fmt.Sprintf("GNI file: %s\n", s.Inputs.GNIFile))
	}
	b.WriteString(fmt.Sprintf("Countries: %d\n\n", len(s.Countries)))

	b.WriteString("[AVERAGE GNI PER CAPITA]\n")
	b.WriteString("| Country | Average GNI ($) |\n|---|---|\n")
	for _, a := range s.Aggregates {
		b.WriteString(fmt.Sprintf("| %s | %.2f |\n", safeCell(a.Country), a.AverageGNI))
	}
	b.WriteString(fmt.Sprintf("\n- Highest: %s ($%.2f)\n", s.GNI.HighestCountry, s.GNI.Highest))
	b.WriteString(fmt.Sprintf("- Lowest: %s ($%.2f)\n\n", s.GNI.LowestCountry, s.GNI.Lowest))

	b.WriteString("[PERSONALITY EXTREMES]\n")
	b.WriteString("| Country | Most common | % | Least common | % |\n|---|---|---|---|---|\n")
	for _, p := range s.Personality {
		b.WriteString(fmt.Sprintf("| %s | %s | %.4f | %s | %.4f |\n",
			safeCell(p.Country), safeCell(p.HighestType), p.HighestPct, safeCell(p.LowestType), p.LowestPct))
	}
	b.WriteString("\n")

	b.WriteString("[REGRESSION]\n")
	b.WriteString(fmt.Sprintf("Predictor: %s %%\n", s.Predictor))
	b.WriteString("Response: average GNI per capita\n")
	if s.Fit != nil {
		b.WriteString(fmt.Sprintf("- slope %.4f, intercept %.4f\n", s.Fit.Slope, s.Fit.Intercept))
		b.WriteString(fmt.Sprintf("- r %.4f, R² %.4f (n=%d)\n", s.Fit.Correlation, s.Fit.RSquared, s.Fit.N))
	} else {
		b.WriteString(fmt.Sprintf("- not fitted: %s\n", s.FitSkipped))
	}

	if len(s.Charts) > 0 {
		b.WriteString("\n[CHARTS]\n")
		for _, c := range s.Charts {
			b.WriteString(fmt.Sprintf("- %s\n", c))
		}
	}
	return b.String()
}

func safeCell(v string) string {
	return strings.ReplaceAll(strings.ReplaceAll(v, "\n", " "), "|", "/")
}
