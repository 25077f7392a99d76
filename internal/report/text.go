package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/personagni/internal/analysis"
)

const rule = "------------------------"

// FormatFloat prints x in shortest round-trip form, keeping ".0" on whole
// numbers, so 67082 prints as "67082.0".
func FormatFloat(x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	if a := math.Abs(x); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(x, 'e', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// WriteGNI prints the per-country averages, rounded to cents.
func WriteGNI(w io.Writer, aggs []analysis.CountryAggregate) error {
	var b strings.Builder
	b.WriteString("Here are the average GNI per capita for each country...\n")
	b.WriteString(rule + "\n")
	for _, a := range aggs {
		fmt.Fprintf(&b, "The average GNI per capita for %s is $%s.\n", a.Country, FormatFloat(analysis.Round(a.AverageGNI, 2)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteGNIExtremes prints the highest and lowest averages.
func WriteGNIExtremes(w io.Writer, ext analysis.GNIExtremes) error {
	var b strings.Builder
	b.WriteString("\nThese are the highest and lowest GNI per capita...\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "The highest average GNI per capita is $%s from %s.\n", FormatFloat(analysis.Round(ext.Highest, 2)), ext.HighestCountry)
	fmt.Fprintf(&b, "The lowest average GNI per capita is $%s from %s.\n", FormatFloat(analysis.Round(ext.Lowest, 2)), ext.LowestCountry)
	_, err := io.WriteString(w, b.String())
	return err
}

// WritePersonality prints each country's most and least common types.
func WritePersonality(w io.Writer, pers []analysis.PersonalityExtremes) error {
	var b strings.Builder
	b.WriteString("\nHere are the personality data for each country...\n")
	b.WriteString(rule + "\n")
	for _, p := range pers {
		fmt.Fprintf(&b, "\n%s:\n", p.Country)
		fmt.Fprintf(&b, "The most common personality type is %s with a percentage of %s.\n", p.HighestType, FormatFloat(analysis.Round(p.HighestPct, analysis.Precision)))
		fmt.Fprintf(&b, "The least common personality type is %s with a percentage of %s.\n", p.LowestType, FormatFloat(analysis.Round(p.LowestPct, analysis.Precision)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFit prints the fitted slope.
func WriteFit(w io.Writer, f analysis.Fit) error {
	_, err := fmt.Fprintf(w, "Linear Correlation Coefficient:  [%s]\n", FormatFloat(f.Slope))
	return err
}

// WriteText prints the full console report in pipeline order. The
// regression line is omitted when no line was fitted.
func WriteText(w io.Writer, s *Summary) error {
	if err := WriteGNI(w, s.Aggregates); err != nil {
		return err
	}
	if err := WriteGNIExtremes(w, s.GNI); err != nil {
		return err
	}
	if err := WritePersonality(w, s.Personality); err != nil {
		return err
	}
	if s.Fit == nil {
		return nil
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return WriteFit(w, *s.Fit)
}

// WriteDescribe prints descriptive GNI statistics, one line per country.
func WriteDescribe(w io.Writer, stats []analysis.GNIStats) error {
	var b strings.Builder
	b.WriteString("Here are the GNI per capita statistics for each country...\n")
	b.WriteString(rule + "\n")
	for _, s := range stats {
		fmt.Fprintf(&b, "%s: %d years, mean $%s, std $%s, min $%s, max $%s\n",
			s.Country, s.Years,
			FormatFloat(analysis.Round(s.Mean, 2)),
			FormatFloat(analysis.Round(s.StdDev, 2)),
			FormatFloat(s.Min),
			FormatFloat(s.Max))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
