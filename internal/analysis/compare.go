package analysis

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/personagni/internal/dataset"
)

// Running extrema for CompareGNI start from these bounds. A value must beat
// them strictly to be reported, so all-zero or all-negative inputs yield
// ErrNoExtremum rather than a result with no country.
const (
	gniMaxSentinel = 0.0
	gniMinSentinel = 1e9
)

// ErrNoExtremum is returned when no value beats the comparator's starting bounds.
var ErrNoExtremum = errors.New("no extremum found")

// GNIExtremes names the countries with the highest and lowest average GNI.
type GNIExtremes struct {
	Highest        float64 `json:"highest"`
	HighestCountry string  `json:"highest_country"`
	Lowest         float64 `json:"lowest"`
	LowestCountry  string  `json:"lowest_country"`
}

// CompareGNI scans aggregates in order. Ties keep the earliest country.
func CompareGNI(aggs []CountryAggregate) (GNIExtremes, error) {
	out := GNIExtremes{Highest: gniMaxSentinel, Lowest: gniMinSentinel}
	for _, a := range aggs {
		if a.AverageGNI > out.Highest {
			out.Highest = a.AverageGNI
			out.HighestCountry = a.Country
		}
		if a.AverageGNI < out.Lowest {
			out.Lowest = a.AverageGNI
			out.LowestCountry = a.Country
		}
	}
	if out.HighestCountry == "" {
		return GNIExtremes{}, fmt.Errorf("highest average GNI: %w (need a value above %g)", ErrNoExtremum, gniMaxSentinel)
	}
	if out.LowestCountry == "" {
		return GNIExtremes{}, fmt.Errorf("lowest average GNI: %w (need a value below %g)", ErrNoExtremum, gniMinSentinel)
	}
	return out, nil
}

// Distribution is one country's personality-type percentages, aligned with Types.
type Distribution struct {
	Country     string    `json:"country"`
	Types       []string  `json:"types"`
	Percentages []float64 `json:"percentages"`
}

// PersonalityExtremes names a country's most and least common personality types.
type PersonalityExtremes struct {
	Country     string  `json:"country"`
	HighestPct  float64 `json:"highest_pct"`
	HighestType string  `json:"highest_type"`
	LowestPct   float64 `json:"lowest_pct"`
	LowestType  string  `json:"lowest_type"`
}

// ParseDistribution pairs a personality row with the header. row[0] and
// header[0] are the country column; row[i] is labelled by header[i].
// Trailing blank header cells are ignored.
func ParseDistribution(header, row dataset.Row) (Distribution, error) {
	country := row.Key()
	for len(header) > 0 && strings.TrimSpace(header[len(header)-1]) == "" {
		header = header[:len(header)-1]
	}
	if len(row) < 2 {
		return Distribution{}, &dataset.MalformedRecordError{
			Dataset: dataset.DatasetPersonality, Country: country, Err: errors.New("no percentage fields"),
		}
	}
	if len(row) != len(header) {
		return Distribution{}, &dataset.MalformedRecordError{
			Dataset: dataset.DatasetPersonality,
			Country: country,
			Err:     fmt.Errorf("row has %d fields, header has %d", len(row), len(header)),
		}
	}
	d := Distribution{
		Country:     country,
		Types:       make([]string, 0, len(row)-1),
		Percentages: make([]float64, 0, len(row)-1),
	}
	for i := 1; i < len(row); i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return Distribution{}, &dataset.MalformedRecordError{
				Dataset: dataset.DatasetPersonality,
				Country: country,
				Field:   i + 1,
				Value:   row[i],
				Err:     errors.New("not a number"),
			}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Distribution{}, &dataset.MalformedRecordError{
				Dataset: dataset.DatasetPersonality,
				Country: country,
				Field:   i + 1,
				Value:   row[i],
				Err:     errors.New("not a finite number"),
			}
		}
		d.Types = append(d.Types, strings.TrimSpace(header[i]))
		d.Percentages = append(d.Percentages, v)
	}
	return d, nil
}

// Extremes finds the highest and lowest percentages by column index.
// Ties keep the earliest column.
func (d Distribution) Extremes() (PersonalityExtremes, error) {
	if len(d.Percentages) == 0 {
		return PersonalityExtremes{}, fmt.Errorf("personality extremes for %q: %w", d.Country, ErrNoExtremum)
	}
	hi, lo := 0, 0
	for i, v := range d.Percentages {
		if v > d.Percentages[hi] {
			hi = i
		}
		if v < d.Percentages[lo] {
			lo = i
		}
	}
	return PersonalityExtremes{
		Country:     d.Country,
		HighestPct:  d.Percentages[hi],
		HighestType: d.Types[hi],
		LowestPct:   d.Percentages[lo],
		LowestType:  d.Types[lo],
	}, nil
}

// FindExtremes parses a personality row against the header and returns its extremes.
func FindExtremes(header, row dataset.Row) (PersonalityExtremes, error) {
	d, err := ParseDistribution(header, row)
	if err != nil {
		return PersonalityExtremes{}, err
	}
	return d.Extremes()
}
