// Package paradox computes the pooled and per-species bill trend fits and
// assembles the generated document that narrates their disagreement.
package paradox

import (
	"fmt"
	"math"
	"sort"

	"github.com/iafilius/ParadoxPlot/src/dataset"
	"github.com/iafilius/ParadoxPlot/src/logging"
	"github.com/iafilius/ParadoxPlot/src/regress"
	"github.com/iafilius/ParadoxPlot/src/render"
)

// Summary holds every fit over the bundled dataset plus the shared axis
// window all comparison charts must use.
type Summary struct {
	Pooled    regress.TrendLine
	BySpecies map[string]regress.TrendLine
	// Skipped lists species excluded from the charts because their fit
	// failed (too few rows or constant bill length), sorted.
	Skipped []string
	Range   render.AxisRange
}

// Species returns the successfully fitted species labels, sorted.
func (s Summary) Species() []string {
	out := make([]string, 0, len(s.BySpecies))
	for label := range s.BySpecies {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Points converts observations to fit/plot coordinates: bill length on x,
// bill depth on y.
func Points(obs []dataset.Observation) []regress.Point {
	out := make([]regress.Point, 0, len(obs))
	for _, o := range obs {
		out = append(out, regress.Point{X: o.BillLengthMm, Y: o.BillDepthMm})
	}
	return out
}

// GroupPoints partitions the valid observations into per-species points.
func GroupPoints(ds *dataset.Dataset) map[string][]regress.Point {
	out := map[string][]regress.Point{}
	for label, obs := range ds.BySpecies() {
		out[label] = Points(obs)
	}
	return out
}

// Analyze computes the pooled fit, the per-species fits, and the shared axis
// window. A pooled-fit failure is fatal; a per-species failure only excludes
// that species from the charts.
func Analyze(ds *dataset.Dataset) (Summary, error) {
	valid := ds.Valid()
	pooled, err := regress.Fit(Points(valid), regress.DomainAll)
	if err != nil {
		return Summary{}, fmt.Errorf("pooled fit: %w", err)
	}

	fits, errs := regress.FitByGroup(GroupPoints(ds))
	skipped := make([]string, 0, len(errs))
	for label, ferr := range errs {
		logging.Warnf("species %s excluded from charts: %v", label, ferr)
		skipped = append(skipped, label)
	}
	sort.Strings(skipped)

	return Summary{
		Pooled:    pooled,
		BySpecies: fits,
		Skipped:   skipped,
		Range:     sharedRange(valid),
	}, nil
}

// sharedRange pads the data extent outward to round bounds. Every chart in
// the document uses this one window so the figures stay comparable.
func sharedRange(obs []dataset.Observation) render.AxisRange {
	xMin, xMax := math.MaxFloat64, -math.MaxFloat64
	yMin, yMax := math.MaxFloat64, -math.MaxFloat64
	for _, o := range obs {
		if o.BillLengthMm < xMin {
			xMin = o.BillLengthMm
		}
		if o.BillLengthMm > xMax {
			xMax = o.BillLengthMm
		}
		if o.BillDepthMm < yMin {
			yMin = o.BillDepthMm
		}
		if o.BillDepthMm > yMax {
			yMax = o.BillDepthMm
		}
	}
	xLo, xHi := render.NiceBounds(xMin, xMax)
	yLo, yHi := render.NiceBounds(yMin, yMax)
	return render.AxisRange{XMin: xLo, XMax: xHi, YMin: yLo, YMax: yHi}
}
