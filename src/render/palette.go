package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette is an ordered list of series colors. Group labels map onto it by
// alphabetical group order, so the same label set always gets the same
// colors regardless of which chart is being rendered.
type Palette []drawing.Color

// DefaultPalette returns the stock six-color palette.
func DefaultPalette() Palette {
	return Palette{
		drawing.ColorFromHex("1f77b4"), // blue
		drawing.ColorFromHex("ff7f0e"), // orange
		drawing.ColorFromHex("2ca02c"), // green
		drawing.ColorFromHex("d62728"), // red
		drawing.ColorFromHex("9467bd"), // purple
		drawing.ColorFromHex("8c564b"), // brown
	}
}

// ParsePalette builds a palette from RRGGBB hex strings.
func ParsePalette(hex []string) (Palette, error) {
	if len(hex) == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrBadConfig)
	}
	out := make(Palette, 0, len(hex))
	for _, h := range hex {
		h = strings.TrimPrefix(strings.TrimSpace(h), "#")
		if len(h) != 6 {
			return nil, fmt.Errorf("%w: palette color %q is not RRGGBB", ErrBadConfig, h)
		}
		if _, err := strconv.ParseUint(h, 16, 32); err != nil {
			return nil, fmt.Errorf("%w: palette color %q: %v", ErrBadConfig, h, err)
		}
		out = append(out, drawing.ColorFromHex(h))
	}
	return out, nil
}

// ColorMap assigns palette colors to the given group labels in alphabetical
// order. Pure function of the label set; identical across renders. Labels
// beyond the palette length wrap around and repeat colors; Scatter rejects
// that case up front so comparison charts keep groups distinguishable.
func (p Palette) ColorMap(groups []string) map[string]drawing.Color {
	sorted := append([]string(nil), groups...)
	sort.Strings(sorted)
	out := make(map[string]drawing.Color, len(sorted))
	for i, g := range sorted {
		out[g] = p[i%len(p)]
	}
	return out
}
