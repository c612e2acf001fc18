// Package regress computes ordinary least squares trend lines, either pooled
// over a whole point set or independently per group partition.
package regress

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// DomainAll labels a trend line fitted over all observations, ignoring groups.
const DomainAll = "ALL"

var (
	// ErrInsufficientData signals a fit requested over fewer than 2 usable points.
	ErrInsufficientData = errors.New("regress: need at least 2 observations")
	// ErrDegenerateFit signals a fit over points whose x values are all equal.
	ErrDegenerateFit = errors.New("regress: zero variance in x")
)

// Point is one (x, y) observation.
type Point struct {
	X, Y float64
}

// TrendLine is a fitted line y = Intercept + Slope*x over the named domain.
type TrendLine struct {
	Slope     float64
	Intercept float64
	Domain    string // group label, or DomainAll for the pooled fit
	N         int    // points the line was fitted over
}

// At evaluates the line at x.
func (t TrendLine) At(x float64) float64 { return t.Intercept + t.Slope*x }

// Fit computes the least squares line over points for the given domain label.
// Points with a NaN coordinate are skipped. Callers must treat failure as
// "no line", never as a zero-slope line.
func Fit(points []Point, domain string) (TrendLine, error) {
	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	if len(xs) < 2 {
		return TrendLine{}, fmt.Errorf("%w: domain %q has %d usable point(s)", ErrInsufficientData, domain, len(xs))
	}
	if stat.Variance(xs, nil) == 0 {
		return TrendLine{}, fmt.Errorf("%w: domain %q", ErrDegenerateFit, domain)
	}
	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	return TrendLine{Slope: slope, Intercept: intercept, Domain: domain, N: len(xs)}, nil
}

// FitByGroup applies Fit independently to each partition. A group with an
// invalid fit is reported in the returned error map and omitted from the
// fits; it never aborts the remaining groups.
func FitByGroup(groups map[string][]Point) (map[string]TrendLine, map[string]error) {
	fits := make(map[string]TrendLine, len(groups))
	errs := map[string]error{}
	for label, pts := range groups {
		line, err := Fit(pts, label)
		if err != nil {
			errs[label] = err
			continue
		}
		fits[label] = line
	}
	return fits, errs
}
