package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/personagni/internal/analysis"
	"github.com/KaramelBytes/personagni/internal/logging"
)

func sampleSummary() *Summary {
	res := &analysis.Result{
		Countries: []string{"Canada", "Switzerland", "New Zealand"},
		Aggregates: []analysis.CountryAggregate{
			{Country: "Canada", AverageGNI: 31231.0345},
			{Country: "Switzerland", AverageGNI: 67082.0},
			{Country: "New Zealand", AverageGNI: 23755.8966},
		},
		GNI: analysis.GNIExtremes{
			Highest: 67082.0, HighestCountry: "Switzerland",
			Lowest: 23755.8966, LowestCountry: "New Zealand",
		},
		Personality: []analysis.PersonalityExtremes{
			{Country: "Canada", HighestType: "INFP-T", HighestPct: 0.1246, LowestType: "ESTP-T", LowestPct: 0.0067},
			{Country: "Switzerland", HighestType: "INFP-T", HighestPct: 0.1333, LowestType: "ESTP-T", LowestPct: 0.0046},
			{Country: "New Zealand", HighestType: "INFP-T", HighestPct: 0.155, LowestType: "ESTP-T", LowestPct: 0.0055},
		},
		Fit: &analysis.Fit{Slope: -2.5, Intercept: 100, Correlation: -0.31, RSquared: 0.0961, N: 3},
	}
	return NewSummary(res, Inputs{PersonalityFile: "p.csv", GNIFile: "g.csv", MatchMode: "exact"})
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		67082:      "67082.0",
		23755.9:    "23755.9",
		31231.03:   "31231.03",
		0.1246:     "0.1246",
		-2:         "-2.0",
		0:          "0.0",
		0.00001:    "1e-05",
		2e16:       "2e+16",
		-356231.45: "-356231.45",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatFloat(in), "%v", in)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleSummary()))

	want := strings.Join([]string{
		"Here are the average GNI per capita for each country...",
		"------------------------",
		"The average GNI per capita for Canada is $31231.03.",
		"The average GNI per capita for Switzerland is $67082.0.",
		"The average GNI per capita for New Zealand is $23755.9.",
		"",
		"These are the highest and lowest GNI per capita...",
		"------------------------",
		"The highest average GNI per capita is $67082.0 from Switzerland.",
		"The lowest average GNI per capita is $23755.9 from New Zealand.",
		"",
		"Here are the personality data for each country...",
		"------------------------",
		"",
		"Canada:",
		"The most common personality type is INFP-T with a percentage of 0.1246.",
		"The least common personality type is ESTP-T with a percentage of 0.0067.",
		"",
		"Switzerland:",
		"The most common personality type is INFP-T with a percentage of 0.1333.",
		"The least common personality type is ESTP-T with a percentage of 0.0046.",
		"",
		"New Zealand:",
		"The most common personality type is INFP-T with a percentage of 0.155.",
		"The least common personality type is ESTP-T with a percentage of 0.0055.",
		"",
		"Linear Correlation Coefficient:  [-2.5]",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteDescribe(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDescribe(&buf, []analysis.GNIStats{
		{Country: "Canada", Years: 29, Mean: 31231.0345, StdDev: 6193.2057, Min: 20813, Max: 41297},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Canada: 29 years, mean $31231.03, std $6193.21, min $20813.0, max $41297.0")
}

func TestNewSummary(t *testing.T) {
	s := sampleSummary()
	_, err := uuid.Parse(s.RunID)
	require.NoError(t, err)
	assert.False(t, s.GeneratedAt.IsZero())
	assert.Equal(t, "INFP-T", s.Predictor)
	assert.NotEqual(t, s.RunID, sampleSummary().RunID)
}

func TestMarkdown(t *testing.T) {
	s := sampleSummary()
	s.Charts = []string{"charts/1.png"}
	md := s.Markdown()
	for _, section := range []string{"[RUN SUMMARY]", "[AVERAGE GNI PER CAPITA]", "[PERSONALITY EXTREMES]", "[REGRESSION]", "[CHARTS]"} {
		assert.Contains(t, md, section)
	}
	assert.Contains(t, md, "Run: "+s.RunID)
	assert.Contains(t, md, "| Switzerland | 67082.00 |")
	assert.Contains(t, md, "| Canada | INFP-T | 0.1246 | ESTP-T | 0.0067 |")
	assert.Contains(t, md, "- Highest: Switzerland ($67082.00)")
	assert.Contains(t, md, "Predictor: INFP-T %")
	assert.Contains(t, md, "- charts/1.png")
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleSummary()))
	out := buf.String()
	assert.Contains(t, out, "COUNTRY")
	assert.Contains(t, out, "31231.03")
	assert.Contains(t, out, "INFP-T")
	assert.Contains(t, out, "-2.5000")
}

func TestJSONRoundTrip(t *testing.T) {
	s := sampleSummary()
	path := filepath.Join(t.TempDir(), "out", "summary.json")
	require.NoError(t, WriteJSON(path, s))

	got, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, s.RunID, got.RunID)
	assert.True(t, s.GeneratedAt.Equal(got.GeneratedAt))
	assert.Equal(t, s.Aggregates, got.Aggregates)
	assert.Equal(t, s.GNI, got.GNI)
	assert.Equal(t, s.Fit, got.Fit)
	assert.Equal(t, "g.csv", got.Inputs.GNIFile)
}

func TestExportXLSX(t *testing.T) {
	s := sampleSummary()
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	var logs bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.New(&logs, slog.LevelDebug, "text"))
	require.NoError(t, ExportXLSX(ctx, path, s))
	assert.NotContains(t, logs.String(), "failed to close")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetGNI, SheetPersonality, SheetRegression}, f.GetSheetList())

	rows, err := f.GetRows(SheetGNI)
	require.NoError(t, err)
	assert.Equal(t, []string{"Country", "Average GNI ($)"}, rows[0])
	assert.Equal(t, "Canada", rows[1][0])
	assert.Equal(t, []string{"Highest", "Switzerland", "67082"}, rows[5])

	rows, err = f.GetRows(SheetPersonality)
	require.NoError(t, err)
	assert.Equal(t, []string{"New Zealand", "INFP-T", "0.155", "ESTP-T", "0.0055"}, rows[3])

	run, err := f.GetCellValue(SheetRegression, "B1")
	require.NoError(t, err)
	assert.Equal(t, s.RunID, run)
}

func TestSummaryWithoutFit(t *testing.T) {
	res := &analysis.Result{
		Countries:  []string{"Canada"},
		Aggregates: []analysis.CountryAggregate{{Country: "Canada", AverageGNI: 31231.0345}},
		GNI: analysis.GNIExtremes{
			Highest: 31231.0345, HighestCountry: "Canada",
			Lowest: 31231.0345, LowestCountry: "Canada",
		},
		Personality: []analysis.PersonalityExtremes{
			{Country: "Canada", HighestType: "INFP-T", HighestPct: 0.1246, LowestType: "ESTP-T", LowestPct: 0.0067},
		},
		FitErr: fmt.Errorf("regression: %w", analysis.ErrDegenerateFit),
	}
	s := NewSummary(res, Inputs{})
	assert.Nil(t, s.Fit)
	assert.Contains(t, s.FitSkipped, "regression")

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, s))
	assert.Contains(t, buf.String(), "Canada")
	assert.NotContains(t, buf.String(), "Linear Correlation Coefficient")

	buf.Reset()
	require.NoError(t, WriteTable(&buf, s))
	assert.Contains(t, buf.String(), "INFP-T")

	assert.Contains(t, s.Markdown(), "- not fitted: "+s.FitSkipped)

	path := filepath.Join(t.TempDir(), "single.xlsx")
	require.NoError(t, ExportXLSX(context.Background(), path, s))
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetRegression)
	require.NoError(t, err)
	assert.Contains(t, rows, []string{"Not fitted", s.FitSkipped})
}
