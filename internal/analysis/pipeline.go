package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/personagni/internal/dataset"
	"github.com/KaramelBytes/personagni/internal/logging"
)

// Inputs bundles the loaded tables with the selection settings.
type Inputs struct {
	Personality *dataset.Table
	GNI         *dataset.Table
	Countries   []string
	Match       dataset.MatchMode
}

// Result holds every per-country record produced by Run, in country order.
type Result struct {
	Countries     []string              `json:"countries"`
	Aggregates    []CountryAggregate    `json:"aggregates"`
	GNI           GNIExtremes           `json:"gni_extremes"`
	Distributions []Distribution        `json:"-"`
	Personality   []PersonalityExtremes `json:"personality"`
	// Fit is nil when the points admit no line; FitErr then says why.
	Fit    *Fit  `json:"fit,omitempty"`
	FitErr error `json:"-"`
}

// TopTypes returns the distinct most-common types in country order.
func (r *Result) TopTypes() []string {
	var out []string
	seen := map[string]bool{}
	for _, p := range r.Personality {
		if !seen[p.HighestType] {
			seen[p.HighestType] = true
			out = append(out, p.HighestType)
		}
	}
	return out
}

// Predictor names the regression's x variable: the shared top type when
// every country agrees, a generic label otherwise.
func (r *Result) Predictor() string {
	switch types := r.TopTypes(); len(types) {
	case 0:
		return "Top personality type"
	case 1:
		return types[0]
	default:
		return "Most common personality type"
	}
}

// AggregateGNI averages the GNI row of each country.
func AggregateGNI(ctx context.Context, t *dataset.Table, countries []string, mode dataset.MatchMode) ([]CountryAggregate, error) {
	log := logging.FromContext(ctx)
	out := make([]CountryAggregate, 0, len(countries))
	for _, c := range countries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := dataset.Select(t, c, mode)
		if err != nil {
			return nil, err
		}
		agg, err := AverageGNI(row)
		if err != nil {
			return nil, err
		}
		// The report labels rows by the requested name, not the matched field.
		agg.Country = c
		log.Debug("gni aggregated", slog.String("country", c), slog.Float64("average_gni", agg.AverageGNI))
		out = append(out, agg)
	}
	return out, nil
}

// DescribeCountries computes descriptive GNI statistics per country.
func DescribeCountries(ctx context.Context, t *dataset.Table, countries []string, mode dataset.MatchMode) ([]GNIStats, error) {
	out := make([]GNIStats, 0, len(countries))
	for _, c := range countries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := dataset.Select(t, c, mode)
		if err != nil {
			return nil, err
		}
		s, err := DescribeGNI(row)
		if err != nil {
			return nil, err
		}
		s.Country = c
		out = append(out, s)
	}
	return out, nil
}

// ProfilePersonalities parses each country's distribution and finds its extremes.
func ProfilePersonalities(ctx context.Context, t *dataset.Table, countries []string, mode dataset.MatchMode) ([]Distribution, []PersonalityExtremes, error) {
	log := logging.FromContext(ctx)
	header, err := t.Header()
	if err != nil {
		return nil, nil, err
	}
	dists := make([]Distribution, 0, len(countries))
	exts := make([]PersonalityExtremes, 0, len(countries))
	for _, c := range countries {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		row, err := dataset.Select(t, c, mode)
		if err != nil {
			return nil, nil, err
		}
		d, err := ParseDistribution(header, row)
		if err != nil {
			return nil, nil, err
		}
		d.Country = c
		ext, err := d.Extremes()
		if err != nil {
			return nil, nil, err
		}
		log.Debug("personality profiled",
			slog.String("country", c),
			slog.String("highest_type", ext.HighestType),
			slog.String("lowest_type", ext.LowestType))
		dists = append(dists, d)
		exts = append(exts, ext)
	}
	return dists, exts, nil
}

// Regress fits average GNI against each country's top personality percentage.
// Both slices must be in the same country order.
func Regress(aggs []CountryAggregate, exts []PersonalityExtremes) (Fit, error) {
	if len(aggs) != len(exts) {
		return Fit{}, fmt.Errorf("%w: %d GNI aggregates, %d personality rows", ErrDegenerateFit, len(aggs), len(exts))
	}
	xs := make([]float64, len(exts))
	ys := make([]float64, len(aggs))
	for i := range aggs {
		if aggs[i].Country != exts[i].Country {
			return Fit{}, fmt.Errorf("regress: country order mismatch at %d: %q vs %q", i, aggs[i].Country, exts[i].Country)
		}
		xs[i] = exts[i].HighestPct
		ys[i] = aggs[i].AverageGNI
	}
	return FitLine(xs, ys)
}

// Run executes the whole pipeline over in.Countries.
func Run(ctx context.Context, in Inputs) (*Result, error) {
	if len(in.Countries) == 0 {
		return nil, errors.New("no countries selected")
	}
	if in.Match == "" {
		in.Match = dataset.MatchExact
	}
	log := logging.FromContext(ctx)

	aggs, err := AggregateGNI(ctx, in.GNI, in.Countries, in.Match)
	if err != nil {
		return nil, fmt.Errorf("aggregate gni: %w", err)
	}
	ext, err := CompareGNI(aggs)
	if err != nil {
		return nil, err
	}
	dists, pers, err := ProfilePersonalities(ctx, in.Personality, in.Countries, in.Match)
	if err != nil {
		return nil, fmt.Errorf("profile personalities: %w", err)
	}
	res := &Result{
		Countries:     append([]string(nil), in.Countries...),
		Aggregates:    aggs,
		GNI:           ext,
		Distributions: dists,
		Personality:   pers,
	}
	fit, err := Regress(aggs, pers)
	switch {
	case errors.Is(err, ErrDegenerateFit):
		// The per-country results stand on their own; only the line is skipped.
		res.FitErr = fmt.Errorf("regression: %w", err)
		log.Warn("regression skipped", slog.String("reason", err.Error()))
	case err != nil:
		return nil, fmt.Errorf("regression: %w", err)
	default:
		res.Fit = &fit
	}
	attrs := []slog.Attr{
		slog.Int("countries", len(in.Countries)),
		slog.String("highest_gni_country", ext.HighestCountry),
	}
	if res.Fit != nil {
		attrs = append(attrs, slog.Float64("slope", res.Fit.Slope))
	}
	logging.LogOperation(log, "pipeline complete", attrs...)
	return res, nil
}
