package render

import (
	"fmt"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// AxisRange is the explicit, mandatory plotting window of a chart. Charts
// meant for visual comparison must share an identical range; differing
// scales invalidate the comparison.
type AxisRange struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Validate rejects empty or inverted windows.
func (r AxisRange) Validate() error {
	for _, v := range []float64{r.XMin, r.XMax, r.YMin, r.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: axis range has non-finite bound", ErrBadConfig)
		}
	}
	if r.XMax <= r.XMin || r.YMax <= r.YMin {
		return fmt.Errorf("%w: axis range must have positive extent (got x [%g,%g] y [%g,%g])",
			ErrBadConfig, r.XMin, r.XMax, r.YMin, r.YMax)
	}
	return nil
}

// Contains reports whether the point lies inside the window.
func (r AxisRange) Contains(x, y float64) bool {
	return x >= r.XMin && x <= r.XMax && y >= r.YMin && y <= r.YMax
}

// NiceBounds expands [min,max] outward to boundaries of a 1/2/2.5/5*10^k
// step so axis labels land on round numbers.
func NiceBounds(min, max float64) (float64, float64) {
	if max < min {
		min, max = max, min
	}
	if max == min {
		max = min + 1
	}
	step := niceStep((max - min) / 4)
	lo := math.Floor(min/step) * step
	hi := math.Ceil(max/step) * step
	return round6(lo), round6(hi)
}

// Ticks generates about n ticks spanning [min,max] on the same 1/2/2.5/5
// pattern, each carrying a compact label.
func Ticks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Ceil(min/bestStep) * bestStep
	var out []chart.Tick
	for v := start; v <= max+bestStep*0.5; v += bestStep {
		v = round6(v)
		if v < min || v > max {
			continue
		}
		out = append(out, chart.Tick{Value: v, Label: FormatTick(v)})
	}
	if len(out) < 2 {
		out = []chart.Tick{
			{Value: min, Label: FormatTick(min)},
			{Value: max, Label: FormatTick(max)},
		}
	}
	return out
}

// FormatTick provides a compact numeric label with precision scaled to
// magnitude.
func FormatTick(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

// niceStep normalizes a raw step to the 1,2,2.5,5 * 10^k pattern.
func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag
	switch {
	case norm <= 1:
		return 1 * mag
	case norm <= 2:
		return 2 * mag
	case norm <= 2.5:
		return 2.5 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// round6 rounds to 6 decimal places to stabilize comparisons and labels.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
