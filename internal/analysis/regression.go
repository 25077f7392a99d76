package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrDegenerateFit is returned when a line cannot be fitted to the points.
var ErrDegenerateFit = errors.New("degenerate regression input")

// Fit is an ordinary least-squares line y = Intercept + Slope*x.
type Fit struct {
	Slope       float64 `json:"slope"`
	Intercept   float64 `json:"intercept"`
	RSquared    float64 `json:"r_squared"`
	Correlation float64 `json:"correlation"`
	N           int     `json:"n"`
}

// Predict evaluates the fitted line at x.
func (f Fit) Predict(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// FitLine fits y on a single predictor x with an intercept.
func FitLine(xs, ys []float64) (Fit, error) {
	if len(xs) != len(ys) {
		return Fit{}, fmt.Errorf("%w: %d x values, %d y values", ErrDegenerateFit, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return Fit{}, fmt.Errorf("%w: need at least 2 points, got %d", ErrDegenerateFit, len(xs))
	}
	constant := true
	for _, x := range xs[1:] {
		if x != xs[0] {
			constant = false
			break
		}
	}
	if constant {
		return Fit{}, fmt.Errorf("%w: all x values equal %g", ErrDegenerateFit, xs[0])
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	f := Fit{
		Slope:     beta,
		Intercept: alpha,
		RSquared:  stat.RSquared(xs, ys, nil, alpha, beta),
		N:         len(xs),
	}
	// Correlation is undefined when every y is equal.
	if r := stat.Correlation(xs, ys, nil); !math.IsNaN(r) {
		f.Correlation = r
	}
	if math.IsNaN(f.RSquared) {
		f.RSquared = 0
	}
	return f, nil
}
