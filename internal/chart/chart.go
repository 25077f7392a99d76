package chart

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/personagni/internal/analysis"
	"github.com/KaramelBytes/personagni/internal/logging"
	"github.com/KaramelBytes/personagni/internal/utils"
)

// DefaultGNIFile is the file name of the cross-country GNI chart.
const DefaultGNIFile = "1.png"

var (
	orange = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	pink   = color.RGBA{R: 255, G: 192, B: 203, A: 255}
	green  = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	purple = color.RGBA{R: 128, G: 0, B: 128, A: 255}

	personalityPalette = []color.Color{orange, red, pink}
)

// Options controls where RenderAll writes and how large charts are.
type Options struct {
	Dir     string
	GNIFile string
	Width   vg.Length
	Height  vg.Length
}

func (o Options) withDefaults() Options {
	if o.GNIFile == "" {
		o.GNIFile = DefaultGNIFile
	}
	if o.Width == 0 {
		o.Width = 10 * vg.Inch
	}
	if o.Height == 0 {
		o.Height = 6 * vg.Inch
	}
	return o
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	return p
}

func save(p *plot.Plot, w, h vg.Length, path string) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

// PersonalityBars draws one country's distribution, bars cycling orange, red and pink.
// Only the size fields of opt are used.
func PersonalityBars(country string, types []string, pcts []float64, path string, opt Options) error {
	opt = opt.withDefaults()
	if len(types) != len(pcts) {
		return fmt.Errorf("personality chart for %s: %d labels, %d values", country, len(types), len(pcts))
	}
	if len(pcts) == 0 {
		return fmt.Errorf("personality chart for %s: no values", country)
	}
	p := newPlot(fmt.Sprintf("Personality Distribution in %s", country), "Personality Types", "Percentages")
	for i, v := range pcts {
		bar, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(12))
		if err != nil {
			return fmt.Errorf("personality chart for %s: %w", country, err)
		}
		bar.XMin = float64(i)
		bar.Color = personalityPalette[i%len(personalityPalette)]
		bar.LineStyle.Width = vg.Length(0)
		p.Add(bar)
	}
	p.NominalX(types...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return save(p, opt.Width, opt.Height, path)
}

// GNIBars draws average GNI per capita across countries in green.
// Only the size fields of opt are used.
func GNIBars(countries []string, avgs []float64, path string, opt Options) error {
	opt = opt.withDefaults()
	if len(countries) != len(avgs) {
		return fmt.Errorf("gni chart: %d labels, %d values", len(countries), len(avgs))
	}
	if len(avgs) == 0 {
		return errors.New("gni chart: no values")
	}
	p := newPlot("Average GNI per capita for each Country", "Countries", "Average GNI per capita ($)")
	bars, err := plotter.NewBarChart(plotter.Values(avgs), vg.Points(24))
	if err != nil {
		return fmt.Errorf("gni chart: %w", err)
	}
	bars.Color = green
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(countries...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YTop
	return save(p, opt.Width, opt.Height, path)
}

// regression draws the observed points in orange and the fitted line in purple.
// predictor names the x variable, e.g. "INFP-T".
func regression(xs, ys []float64, fit analysis.Fit, predictor, path string, opt Options) error {
	if len(xs) != len(ys) || len(xs) == 0 {
		return fmt.Errorf("regression chart: %d x values, %d y values", len(xs), len(ys))
	}
	p := newPlot(fmt.Sprintf("%s Personality %% VS GNI per Capita Regression", predictor), "Personality (%)", "GNI per capita ($)")
	pts := make(plotter.XYs, len(xs))
	lo, hi := xs[0], xs[0]
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
		lo = math.Min(lo, xs[i])
		hi = math.Max(hi, xs[i])
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("regression chart: %w", err)
	}
	scatter.GlyphStyle.Color = orange
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	line := plotter.NewFunction(fit.Predict)
	line.XMin = lo
	line.XMax = hi
	line.Color = purple
	line.Width = vg.Points(3)

	p.Add(plotter.NewGrid(), scatter, line)
	return save(p, opt.Width, opt.Height, path)
}

// RenderAll writes every chart for a pipeline result and returns the paths in
// the order written: one per country, then the GNI chart, then the regression.
// The regression chart is skipped when the result has no fit.
func RenderAll(ctx context.Context, res *analysis.Result, opt Options) ([]string, error) {
	opt = opt.withDefaults()
	log := logging.FromContext(ctx)
	var paths []string

	for _, d := range res.Distributions {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := filepath.Join(opt.Dir, "personality-"+utils.Slug(d.Country, "country")+".png")
		if err := PersonalityBars(d.Country, d.Types, d.Percentages, path, opt); err != nil {
			return paths, err
		}
		logging.LogOperation(log, "chart written", slog.String("kind", "personality"), slog.String("path", path))
		paths = append(paths, path)
	}

	countries := make([]string, len(res.Aggregates))
	avgs := make([]float64, len(res.Aggregates))
	for i, a := range res.Aggregates {
		countries[i] = a.Country
		avgs[i] = a.AverageGNI
	}
	path := filepath.Join(opt.Dir, opt.GNIFile)
	if err := GNIBars(countries, avgs, path, opt); err != nil {
		return paths, err
	}
	logging.LogOperation(log, "chart written", slog.String("kind", "gni"), slog.String("path", path))
	paths = append(paths, path)

	if res.Fit == nil {
		return paths, nil
	}
	path, err := RenderRegression(ctx, res, opt)
	if err != nil {
		return paths, err
	}
	return append(paths, path), nil
}

// RenderRegression writes only the regression chart and returns its path.
func RenderRegression(ctx context.Context, res *analysis.Result, opt Options) (string, error) {
	if res.Fit == nil {
		if res.FitErr != nil {
			return "", res.FitErr
		}
		return "", fmt.Errorf("regression chart: %w", analysis.ErrDegenerateFit)
	}
	opt = opt.withDefaults()
	xs := make([]float64, len(res.Personality))
	ys := make([]float64, len(res.Aggregates))
	for i, p := range res.Personality {
		xs[i] = p.HighestPct
	}
	for i, a := range res.Aggregates {
		ys[i] = a.AverageGNI
	}
	path := filepath.Join(opt.Dir, "regression.png")
	if err := regression(xs, ys, *res.Fit, res.Predictor(), path, opt); err != nil {
		return "", err
	}
	logging.LogOperation(logging.FromContext(ctx), "chart written", slog.String("kind", "regression"), slog.String("path", path))
	return path, nil
}
