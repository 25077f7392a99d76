package analysis

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"github.com/KaramelBytes/personagni/internal/dataset"
)

// Precision is the number of decimal places averages are rounded to.
const Precision = 4

// CountryAggregate is a country's mean GNI per capita over all reported years.
type CountryAggregate struct {
	Country    string  `json:"country"`
	AverageGNI float64 `json:"average_gni"`
}

// GNIStats describes one country's yearly GNI series.
type GNIStats struct {
	Country string  `json:"country"`
	Years   int     `json:"years"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Round rounds x half away from zero to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// ParseGNI converts the yearly fields of a GNI row (everything after the
// country name) to numbers. Each field must be an integer.
func ParseGNI(row dataset.Row) ([]float64, error) {
	if len(row) == 0 {
		return nil, &dataset.MalformedRecordError{Dataset: dataset.DatasetGNI, Err: errors.New("empty row")}
	}
	country := row.Key()
	vals := make([]float64, 0, len(row)-1)
	for i, f := range row[1:] {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, &dataset.MalformedRecordError{
				Dataset: dataset.DatasetGNI,
				Country: country,
				Field:   i + 2,
				Value:   f,
				Err:     errors.New("not an integer"),
			}
		}
		vals = append(vals, float64(n))
	}
	if len(vals) == 0 {
		return nil, &dataset.MalformedRecordError{Dataset: dataset.DatasetGNI, Country: country, Err: errors.New("no yearly values")}
	}
	return vals, nil
}

// AverageGNI computes the mean of a GNI row's yearly values rounded to Precision places.
func AverageGNI(row dataset.Row) (CountryAggregate, error) {
	vals, err := ParseGNI(row)
	if err != nil {
		return CountryAggregate{}, err
	}
	return CountryAggregate{Country: row.Key(), AverageGNI: Round(stats.Mean(vals), Precision)}, nil
}

// DescribeGNI reports mean, sample standard deviation and bounds of a GNI row.
func DescribeGNI(row dataset.Row) (GNIStats, error) {
	vals, err := ParseGNI(row)
	if err != nil {
		return GNIStats{}, err
	}
	s := stats.Sample{Xs: vals}
	lo, hi := s.Bounds()
	out := GNIStats{
		Country: row.Key(),
		Years:   len(vals),
		Mean:    Round(s.Mean(), Precision),
		Min:     lo,
		Max:     hi,
	}
	if len(vals) > 1 {
		out.StdDev = Round(s.StdDev(), Precision)
	}
	return out, nil
}
