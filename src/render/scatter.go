// Package render turns observations and fitted trend lines into PNG chart
// artifacts. All appearance inputs (axis window, palette, labels, size) are
// explicit configuration; there is no ambient theme state. Points outside
// the axis window are dropped from view, not clamped and not an error.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/ParadoxPlot/src/regress"
)

// ErrBadConfig signals an invalid chart or composite configuration.
var ErrBadConfig = errors.New("render: invalid configuration")

const (
	defaultChartWidth  = 640
	defaultChartHeight = 480
)

// Labels carries the text around a chart. Any field may be empty.
type Labels struct {
	Title    string
	Subtitle string
	Caption  string
	XLabel   string
	YLabel   string
}

// ScatterConfig describes one scatter-plus-trend chart.
type ScatterConfig struct {
	// Groups holds the points keyed by group label. A single ""-keyed entry
	// renders as one ungrouped series.
	Groups map[string][]regress.Point
	// ColorByGroup keys point and trend colors by group label using the
	// palette; otherwise all points render in a neutral gray.
	ColorByGroup bool
	// Trends are drawn as straight segments spanning the full axis x-range
	// (clipped to the window), so lines stay comparable across charts that
	// share scales.
	Trends []regress.TrendLine
	// Range is mandatory and must be identical across charts meant for
	// comparison.
	Range   AxisRange
	Labels  Labels
	Palette Palette // nil selects DefaultPalette
	Width   int
	Height  int
	// Legend controls the per-chart legend. Charts destined for a composite
	// with a shared legend should disable it.
	Legend bool
}

// Chart is a rendered scatter artifact. It retains the configuration it was
// rendered from so callers can verify nothing was mutated on the way through.
type Chart struct {
	Image    image.Image
	Range    AxisRange
	Labels   Labels
	ColorMap map[string]drawing.Color
	Plotted  int
	Dropped  int
	Width    int
	Height   int
}

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

// lineStyle returns a stroke-only style for trend segments. The pooled line
// is dashed so it stays distinguishable when overlaid on group lines.
func lineStyle(col drawing.Color, dashed bool) chart.Style {
	st := chart.Style{
		StrokeWidth: 2.2,
		StrokeColor: col,
	}
	if dashed {
		st.StrokeDashArray = []float64{6, 4}
	}
	return st
}

// Scatter renders one scatter chart per the configuration.
func Scatter(cfg ScatterConfig) (*Chart, error) {
	if err := cfg.Range.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Groups) == 0 {
		return nil, fmt.Errorf("%w: no point groups", ErrBadConfig)
	}
	pal := cfg.Palette
	if pal == nil {
		pal = DefaultPalette()
	}
	if len(pal) == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrBadConfig)
	}
	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = defaultChartWidth
	}
	if height <= 0 {
		height = defaultChartHeight
	}

	labels := sortedKeys(cfg.Groups)
	colorMap := map[string]drawing.Color{}
	if cfg.ColorByGroup {
		if len(labels) > len(pal) {
			return nil, fmt.Errorf("%w: %d groups need distinct colors but palette has %d",
				ErrBadConfig, len(labels), len(pal))
		}
		colorMap = pal.ColorMap(labels)
	}

	var series []chart.Series
	plotted, dropped := 0, 0
	if cfg.ColorByGroup {
		for _, label := range labels {
			xs, ys, d := inRange(cfg.Groups[label], cfg.Range)
			plotted += len(xs)
			dropped += d
			if len(xs) == 0 {
				continue
			}
			xs, ys = padSingle(xs, ys)
			series = append(series, chart.ContinuousSeries{
				Name: label, XValues: xs, YValues: ys, Style: pointStyle(colorMap[label]),
			})
		}
	} else {
		var all []regress.Point
		for _, label := range labels {
			all = append(all, cfg.Groups[label]...)
		}
		xs, ys, d := inRange(all, cfg.Range)
		plotted += len(xs)
		dropped += d
		if len(xs) > 0 {
			xs, ys = padSingle(xs, ys)
			series = append(series, chart.ContinuousSeries{
				Name: "Observations", XValues: xs, YValues: ys, Style: pointStyle(chart.ColorAlternateGray),
			})
		}
	}

	for _, t := range cfg.Trends {
		col := chart.ColorBlack
		dashed := true
		if t.Domain != regress.DomainAll {
			c, ok := colorMap[t.Domain]
			if !ok {
				return nil, fmt.Errorf("%w: trend domain %q has no color (group absent or chart not colored by group)", ErrBadConfig, t.Domain)
			}
			col = c
			dashed = false
		}
		x0, x1, ok := clipTrend(t, cfg.Range)
		if !ok {
			// Line lies entirely outside the window; nothing to draw.
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    trendName(t),
			XValues: []float64{x0, x1},
			YValues: []float64{t.At(x0), t.At(x1)},
			Style:   lineStyle(col, dashed),
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: nothing drawable inside the axis range", ErrBadConfig)
	}

	padBottom := 28
	if cfg.Labels.Caption != "" {
		padBottom += 18
	}
	title := cfg.Labels.Title
	if cfg.Labels.Subtitle != "" {
		title = fmt.Sprintf("%s (%s)", title, cfg.Labels.Subtitle)
	}
	ch := chart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: padBottom}},
		XAxis: chart.XAxis{
			Name:  cfg.Labels.XLabel,
			Range: &chart.ContinuousRange{Min: cfg.Range.XMin, Max: cfg.Range.XMax},
			Ticks: Ticks(cfg.Range.XMin, cfg.Range.XMax, 6),
		},
		YAxis: chart.YAxis{
			Name:  cfg.Labels.YLabel,
			Range: &chart.ContinuousRange{Min: cfg.Range.YMin, Max: cfg.Range.YMax},
			Ticks: Ticks(cfg.Range.YMin, cfg.Range.YMax, 6),
		},
		Series: series,
	}
	if cfg.Legend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render scatter %q: %w", cfg.Labels.Title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode scatter %q: %w", cfg.Labels.Title, err)
	}
	if cfg.Labels.Caption != "" {
		img = annotateBottom(img, cfg.Labels.Caption)
	}

	return &Chart{
		Image:    img,
		Range:    cfg.Range,
		Labels:   cfg.Labels,
		ColorMap: colorMap,
		Plotted:  plotted,
		Dropped:  dropped,
		Width:    width,
		Height:   height,
	}, nil
}

// trendName labels a trend series for legends.
func trendName(t regress.TrendLine) string {
	if t.Domain == regress.DomainAll {
		return "Pooled trend"
	}
	return t.Domain + " trend"
}

// inRange splits points into coordinates inside the window and a dropped
// count. NaN coordinates count as dropped.
func inRange(pts []regress.Point, r AxisRange) (xs, ys []float64, dropped int) {
	for _, p := range pts {
		if !r.Contains(p.X, p.Y) {
			dropped++
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	return xs, ys, dropped
}

// padSingle duplicates a lone point so the series meets the renderer's
// two-value minimum; with dot-only styling the duplicate is invisible.
func padSingle(xs, ys []float64) ([]float64, []float64) {
	if len(xs) == 1 {
		return []float64{xs[0], xs[0]}, []float64{ys[0], ys[0]}
	}
	return xs, ys
}

// clipTrend returns the x-interval over which the line stays inside the
// window. Trend segments span the full axis x-range, shortened only where
// the line would leave the y-window.
func clipTrend(t regress.TrendLine, r AxisRange) (x0, x1 float64, ok bool) {
	x0, x1 = r.XMin, r.XMax
	if t.Slope == 0 {
		if t.Intercept < r.YMin || t.Intercept > r.YMax {
			return 0, 0, false
		}
		return x0, x1, true
	}
	xa := (r.YMin - t.Intercept) / t.Slope
	xb := (r.YMax - t.Intercept) / t.Slope
	if xa > xb {
		xa, xb = xb, xa
	}
	if xa > x0 {
		x0 = xa
	}
	if xb < x1 {
		x1 = xb
	}
	if x0 >= x1 {
		return 0, 0, false
	}
	return x0, x1, true
}

func sortedKeys(m map[string][]regress.Point) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
