package render

import (
	"errors"
	"testing"

	"github.com/iafilius/ParadoxPlot/src/regress"
)

func testGroups() map[string][]regress.Point {
	return map[string][]regress.Point{
		"Adelie":    {{X: 38, Y: 18}, {X: 40, Y: 19}},
		"Chinstrap": {{X: 48, Y: 18}, {X: 50, Y: 19}},
		"Gentoo":    {{X: 46, Y: 14}, {X: 49, Y: 15}},
	}
}

func testRange() AxisRange {
	return AxisRange{XMin: 35, XMax: 52, YMin: 13, YMax: 21}
}

func TestScatter_MetadataRoundTrip(t *testing.T) {
	labels := Labels{
		Title: "Bill depth vs length", Subtitle: "all species",
		Caption: "source: bundled table", XLabel: "bill length (mm)", YLabel: "bill depth (mm)",
	}
	ch, err := Scatter(ScatterConfig{
		Groups: testGroups(), ColorByGroup: true,
		Range: testRange(), Labels: labels, Legend: true,
	})
	if err != nil {
		t.Fatalf("scatter: %v", err)
	}
	if ch.Range != testRange() {
		t.Fatalf("axis range mutated: %+v", ch.Range)
	}
	if ch.Labels != labels {
		t.Fatalf("labels mutated: %+v", ch.Labels)
	}
	if ch.Plotted != 6 || ch.Dropped != 0 {
		t.Fatalf("plotted=%d dropped=%d want 6/0", ch.Plotted, ch.Dropped)
	}
	if ch.Image == nil {
		t.Fatalf("no image rendered")
	}
}

func TestScatter_ColorMapDeterministic(t *testing.T) {
	cfg := ScatterConfig{Groups: testGroups(), ColorByGroup: true, Range: testRange()}
	a, err := Scatter(cfg)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	b, err := Scatter(cfg)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if len(a.ColorMap) != 3 || len(b.ColorMap) != 3 {
		t.Fatalf("expected 3 group colors, got %d and %d", len(a.ColorMap), len(b.ColorMap))
	}
	for label, col := range a.ColorMap {
		if b.ColorMap[label] != col {
			t.Fatalf("color for %s changed between renders", label)
		}
	}
	// Alphabetical order onto the palette.
	pal := DefaultPalette()
	if a.ColorMap["Adelie"] != pal[0] || a.ColorMap["Chinstrap"] != pal[1] || a.ColorMap["Gentoo"] != pal[2] {
		t.Fatalf("color assignment not alphabetical: %+v", a.ColorMap)
	}
}

func TestScatter_OutOfRangePointsDropped(t *testing.T) {
	groups := testGroups()
	groups["Gentoo"] = append(groups["Gentoo"], regress.Point{X: 90, Y: 14}) // outside x window
	ch, err := Scatter(ScatterConfig{Groups: groups, ColorByGroup: true, Range: testRange()})
	if err != nil {
		t.Fatalf("scatter: %v", err)
	}
	if ch.Dropped != 1 {
		t.Fatalf("dropped=%d want 1 (out-of-range points drop from view)", ch.Dropped)
	}
	if ch.Plotted != 6 {
		t.Fatalf("plotted=%d want 6", ch.Plotted)
	}
}

func TestScatter_TrendSpansAxisRange(t *testing.T) {
	// Horizontal line inside the window survives the whole x-range.
	x0, x1, ok := clipTrend(regress.TrendLine{Slope: 0, Intercept: 17}, testRange())
	if !ok || x0 != 35 || x1 != 52 {
		t.Fatalf("flat in-window trend clipped: [%g,%g] ok=%v", x0, x1, ok)
	}
	// Steep line leaves the y-window inside the x-range and must be shortened.
	r := AxisRange{XMin: 0, XMax: 10, YMin: 0, YMax: 10}
	x0, x1, ok = clipTrend(regress.TrendLine{Slope: 2, Intercept: 0}, r)
	if !ok {
		t.Fatalf("steep trend rejected")
	}
	if x0 != 0 || x1 != 5 {
		t.Fatalf("steep trend clipped to [%g,%g], want [0,5]", x0, x1)
	}
	// Line entirely above the window draws nothing.
	if _, _, ok = clipTrend(regress.TrendLine{Slope: 0, Intercept: 99}, r); ok {
		t.Fatalf("out-of-window trend should not draw")
	}
}

func TestScatter_TrendDomainWithoutColorFails(t *testing.T) {
	_, err := Scatter(ScatterConfig{
		Groups:       testGroups(),
		ColorByGroup: true,
		Trends:       []regress.TrendLine{{Slope: 0.3, Intercept: 4, Domain: "Emperor"}},
		Range:        testRange(),
	})
	if !errors.Is(err, ErrBadConfig) {
		t.Fatalf("expected ErrBadConfig for unknown trend domain, got %v", err)
	}
}

func TestScatter_EmptyPaletteRejected(t *testing.T) {
	// Non-nil but empty: must be a validation error, not a divide-by-zero
	// panic in the color assignment.
	_, err := Scatter(ScatterConfig{
		Groups:       testGroups(),
		ColorByGroup: true,
		Palette:      Palette{},
		Range:        testRange(),
	})
	if !errors.Is(err, ErrBadConfig) {
		t.Fatalf("expected ErrBadConfig for empty palette, got %v", err)
	}
}

func TestScatter_MoreGroupsThanColorsRejected(t *testing.T) {
	pal, err := ParsePalette([]string{"112233", "445566"})
	if err != nil {
		t.Fatalf("parse palette: %v", err)
	}
	_, err = Scatter(ScatterConfig{
		Groups:       testGroups(), // three groups, two colors
		ColorByGroup: true,
		Palette:      pal,
		Range:        testRange(),
	})
	if !errors.Is(err, ErrBadConfig) {
		t.Fatalf("expected ErrBadConfig when colors would repeat, got %v", err)
	}
}

func TestScatter_RequiresValidRange(t *testing.T) {
	_, err := Scatter(ScatterConfig{Groups: testGroups(), Range: AxisRange{}})
	if !errors.Is(err, ErrBadConfig) {
		t.Fatalf("expected ErrBadConfig for empty range, got %v", err)
	}
}

func TestScatter_PooledTrendOnUngroupedChart(t *testing.T) {
	ch, err := Scatter(ScatterConfig{
		Groups: testGroups(),
		Trends: []regress.TrendLine{{Slope: -0.07, Intercept: 20.4, Domain: regress.DomainAll}},
		Range:  testRange(),
		Labels: Labels{Title: "Pooled"},
	})
	if err != nil {
		t.Fatalf("scatter: %v", err)
	}
	if len(ch.ColorMap) != 0 {
		t.Fatalf("ungrouped chart must not expose a group color map: %+v", ch.ColorMap)
	}
}
