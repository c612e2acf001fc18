package paradox

import (
	"fmt"
	"strings"

	"github.com/iafilius/ParadoxPlot/src/config"
	"github.com/iafilius/ParadoxPlot/src/dataset"
	"github.com/iafilius/ParadoxPlot/src/regress"
	"github.com/iafilius/ParadoxPlot/src/render"
	"github.com/iafilius/ParadoxPlot/src/report"
)

const (
	xLabel = "bill length (mm)"
	yLabel = "bill depth (mm)"
)

// BuildReport renders the three figures and assembles the narrated document.
// All figures share sum.Range; charts destined for the composite are
// re-rendered without their own legends so the composite carries one shared
// legend strip.
func BuildReport(ds *dataset.Dataset, sum Summary, cfg *config.Config) (*report.Builder, error) {
	palette, err := render.ParsePalette(cfg.Palette)
	if err != nil {
		return nil, err
	}
	groups := GroupPoints(ds)

	speciesTrends := make([]regress.TrendLine, 0, len(sum.BySpecies)+1)
	speciesTrends = append(speciesTrends, sum.Pooled)
	for _, label := range sum.Species() {
		speciesTrends = append(speciesTrends, sum.BySpecies[label])
	}

	pooledCfg := render.ScatterConfig{
		Groups: groups,
		Trends: []regress.TrendLine{sum.Pooled},
		Range:  sum.Range,
		Labels: render.Labels{
			Title:   "Bill depth vs bill length",
			Caption: fmt.Sprintf("One pooled fit over all penguins: slope %.2f mm/mm", sum.Pooled.Slope),
			XLabel:  xLabel,
			YLabel:  yLabel,
		},
		Palette: palette,
		Width:   cfg.ChartWidth,
		Height:  cfg.ChartHeight,
		Legend:  true,
	}
	pooledChart, err := render.Scatter(pooledCfg)
	if err != nil {
		return nil, fmt.Errorf("pooled figure: %w", err)
	}

	speciesCfg := render.ScatterConfig{
		Groups:       groups,
		ColorByGroup: true,
		Trends:       speciesTrends,
		Range:        sum.Range,
		Labels: render.Labels{
			Title:   "Bill depth vs bill length, by species",
			Caption: "Per-species fits, pooled fit dashed for comparison",
			XLabel:  xLabel,
			YLabel:  yLabel,
		},
		Palette: palette,
		Width:   cfg.ChartWidth,
		Height:  cfg.ChartHeight,
		Legend:  true,
	}
	speciesChart, err := render.Scatter(speciesCfg)
	if err != nil {
		return nil, fmt.Errorf("species figure: %w", err)
	}

	// Legendless, captionless variants for the composite; the shared legend
	// and caption move to the outer frame.
	leftCfg := pooledCfg
	leftCfg.Legend = false
	leftCfg.Labels.Caption = ""
	leftCfg.Labels.Title = "Pooled"
	left, err := render.Scatter(leftCfg)
	if err != nil {
		return nil, fmt.Errorf("composite left: %w", err)
	}
	rightCfg := speciesCfg
	rightCfg.Legend = false
	rightCfg.Labels.Caption = ""
	rightCfg.Labels.Title = "By species"
	rightCfg.Labels.YLabel = "" // shares the left chart's y scale
	right, err := render.Scatter(rightCfg)
	if err != nil {
		return nil, fmt.Errorf("composite right: %w", err)
	}
	composite, err := render.Compose(render.CompositeConfig{
		Children:     []*render.Chart{left, right},
		Direction:    render.SideBySide,
		Weights:      []float64{1, 1},
		SharedLegend: true,
		Labels: render.Labels{
			Title:    "The same penguins, two opposite trends",
			Subtitle: "identical axes on both panels",
			Caption:  fmt.Sprintf("Pooled slope %.2f mm/mm; within every species the slope is positive", sum.Pooled.Slope),
		},
		Width:  cfg.CompositeWidth,
		Height: cfg.CompositeHeight,
	})
	if err != nil {
		return nil, fmt.Errorf("composite figure: %w", err)
	}

	var b report.Builder
	b.AddMarkdown(intro(ds, sum))
	b.AddFigure("pooled_fit", "Pooled fit over all penguins", pooledChart.Image)
	b.AddMarkdown(pooledProse(sum))
	b.AddFigure("species_fits", "Per-species fits with pooled overlay", speciesChart.Image)
	b.AddMarkdown(speciesProse(sum))
	b.AddFigure("comparison", "Pooled and per-species fits side by side", composite.Image)
	b.AddMarkdown(fitTable(sum))
	b.AddMarkdown(closing(sum))
	return &b, nil
}

func intro(ds *dataset.Dataset, sum Summary) string {
	var sb strings.Builder
	sb.WriteString("# When the trend flips: Simpson's Paradox in penguin bills\n\n")
	fmt.Fprintf(&sb,
		"The bundled table holds %d penguins across %d species; %d rows carry both "+
			"bill measurements and take part in the fits below. The question sounds "+
			"innocent: do penguins with longer bills have deeper bills?\n",
		ds.Len(), len(ds.Species()), len(ds.Valid()))
	if len(sum.Skipped) > 0 {
		fmt.Fprintf(&sb, "\nSpecies without enough data for a fit were left out of the charts: %s.\n",
			strings.Join(sum.Skipped, ", "))
	}
	return sb.String()
}

func pooledProse(sum Summary) string {
	return fmt.Sprintf(
		"Treating every penguin as one population, the least squares line slopes "+
			"the wrong way: %.2f mm of depth per mm of length. Longer bills appear "+
			"to be shallower bills.\n", sum.Pooled.Slope)
}

func speciesProse(sum Summary) string {
	var sb strings.Builder
	sb.WriteString("Color the same points by species and the picture inverts. Within every species the relation is positive:\n\n")
	for _, label := range sum.Species() {
		line := sum.BySpecies[label]
		fmt.Fprintf(&sb, "- %s: slope %.2f mm/mm over %d penguins\n", label, line.Slope, line.N)
	}
	sb.WriteString("\nThe dashed pooled line cuts across the species clusters instead of following any of them.\n")
	return sb.String()
}

func fitTable(sum Summary) string {
	var sb strings.Builder
	sb.WriteString("| domain | slope (mm/mm) | intercept (mm) | points |\n")
	sb.WriteString("|--------|---------------|----------------|--------|\n")
	fmt.Fprintf(&sb, "| pooled | %.3f | %.2f | %d |\n", sum.Pooled.Slope, sum.Pooled.Intercept, sum.Pooled.N)
	for _, label := range sum.Species() {
		line := sum.BySpecies[label]
		fmt.Fprintf(&sb, "| %s | %.3f | %.2f | %d |\n", label, line.Slope, line.Intercept, line.N)
	}
	return sb.String()
}

func closing(sum Summary) string {
	return "Species is the confounder here: it correlates with both bill length and " +
		"bill depth, so pooling across species lets the between-species differences " +
		"overwhelm the within-species trend. Aggregated data answered a different " +
		"question than the one asked. Whenever groups differ in both the predictor " +
		"and the outcome, fit within groups before trusting the pooled line.\n"
}
