package analysis

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/personagni/internal/dataset"
)

var topTen = []string{
	"Canada", "Japan", "Germany", "Switzerland", "Australia",
	"United States", "New Zealand", "United Kingdom", "Sweden", "Netherlands",
}

func loadFixtures(t *testing.T) Inputs {
	t.Helper()
	pers, err := dataset.Load(filepath.Join("..", "..", "testdata", "country_personality_types.csv"), dataset.Options{})
	require.NoError(t, err)
	gni, err := dataset.Load(filepath.Join("..", "..", "testdata", "GNI_per_capita.csv"), dataset.Options{})
	require.NoError(t, err)
	return Inputs{Personality: pers, GNI: gni, Countries: topTen, Match: dataset.MatchExact}
}

func TestRunFixtures(t *testing.T) {
	res, err := Run(context.Background(), loadFixtures(t))
	require.NoError(t, err)

	require.Len(t, res.Aggregates, 10)
	assert.Equal(t, CountryAggregate{Country: "Canada", AverageGNI: 31231.0345}, res.Aggregates[0])
	assert.Equal(t, 67082.0, res.Aggregates[3].AverageGNI)

	assert.Equal(t, GNIExtremes{
		Highest: 67082.0, HighestCountry: "Switzerland",
		Lowest: 23755.8966, LowestCountry: "New Zealand",
	}, res.GNI)

	require.Len(t, res.Personality, 10)
	for i, p := range res.Personality {
		assert.Equal(t, topTen[i], p.Country)
		assert.Equal(t, "INFP-T", p.HighestType, p.Country)
		assert.Equal(t, "ESTP-T", p.LowestType, p.Country)
	}
	assert.Equal(t, 0.1246, res.Personality[0].HighestPct)
	assert.Equal(t, 0.0067, res.Personality[0].LowestPct)
	assert.Equal(t, []string{"INFP-T"}, res.TopTypes())

	require.Len(t, res.Distributions, 10)
	assert.Len(t, res.Distributions[0].Types, 32)

	require.NotNil(t, res.Fit)
	assert.NoError(t, res.FitErr)
	assert.InDelta(t, -356231.4512, res.Fit.Slope, 1e-3)
	assert.InDelta(t, 87981.2409, res.Fit.Intercept, 1e-3)
	assert.InDelta(t, -0.3102, res.Fit.Correlation, 1e-4)
	assert.Equal(t, 10, res.Fit.N)
}

func TestRunCountryNotFound(t *testing.T) {
	in := loadFixtures(t)
	in.Countries = []string{"Canada", "Atlantis"}
	_, err := Run(context.Background(), in)
	var cnf *dataset.CountryNotFoundError
	require.True(t, errors.As(err, &cnf), "got %v", err)
	assert.Equal(t, "Atlantis", cnf.Country)
}

func TestRunSubstringMatchesLegacyRow(t *testing.T) {
	in := loadFixtures(t)
	in.Countries = []string{"Niger", "Canada"}

	exact, err := AggregateGNI(context.Background(), in.GNI, in.Countries, dataset.MatchExact)
	require.NoError(t, err)
	sub, err := AggregateGNI(context.Background(), in.GNI, in.Countries, dataset.MatchSubstring)
	require.NoError(t, err)

	// "Niger" is a substring of "Nigeria", which appears later in the file.
	assert.NotEqual(t, exact[0].AverageGNI, sub[0].AverageGNI)
	assert.Equal(t, "Niger", sub[0].Country)
	assert.Equal(t, exact[1], sub[1])
}

func TestRunSingleCountrySkipsFit(t *testing.T) {
	in := loadFixtures(t)
	in.Countries = []string{"Canada"}
	res, err := Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, []CountryAggregate{{Country: "Canada", AverageGNI: 31231.0345}}, res.Aggregates)
	assert.Equal(t, "Canada", res.GNI.HighestCountry)
	assert.Equal(t, "Canada", res.GNI.LowestCountry)
	require.Len(t, res.Personality, 1)
	assert.Equal(t, "INFP-T", res.Personality[0].HighestType)
	assert.Nil(t, res.Fit)
	assert.ErrorIs(t, res.FitErr, ErrDegenerateFit)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, loadFixtures(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunNoCountries(t *testing.T) {
	in := loadFixtures(t)
	in.Countries = nil
	_, err := Run(context.Background(), in)
	assert.Error(t, err)
}

func TestDescribeCountries(t *testing.T) {
	in := loadFixtures(t)
	stats, err := DescribeCountries(context.Background(), in.GNI, []string{"Switzerland", "New Zealand"}, dataset.MatchExact)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Switzerland", stats[0].Country)
	assert.Equal(t, 29, stats[0].Years)
	assert.Equal(t, 67082.0, stats[0].Mean)
	assert.Equal(t, 45066.0, stats[0].Min)
	assert.Equal(t, 89392.0, stats[0].Max)
	assert.InDelta(t, 13501.8041, stats[0].StdDev, 1e-3)
	assert.Equal(t, 15607.0, stats[1].Min)
}

func TestRegressCountryOrder(t *testing.T) {
	_, err := Regress(
		[]CountryAggregate{{"A", 1}, {"B", 2}},
		[]PersonalityExtremes{{Country: "B", HighestPct: 0.1}, {Country: "A", HighestPct: 0.2}},
	)
	assert.Error(t, err)

	_, err = Regress([]CountryAggregate{{"A", 1}}, nil)
	assert.ErrorIs(t, err, ErrDegenerateFit)
}

func TestResultPredictor(t *testing.T) {
	r := &Result{}
	assert.Equal(t, "Top personality type", r.Predictor())
	r.Personality = []PersonalityExtremes{{HighestType: "INFP-T"}, {HighestType: "INFP-T"}}
	assert.Equal(t, "INFP-T", r.Predictor())
	r.Personality = append(r.Personality, PersonalityExtremes{HighestType: "ENFP-T"})
	assert.Equal(t, []string{"INFP-T", "ENFP-T"}, r.TopTypes())
	assert.Equal(t, "Most common personality type", r.Predictor())
}
