package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"

	xdraw "golang.org/x/image/draw"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrPaletteMismatch signals that composed charts assign different colors to
// the same group label. With deterministic palette mapping this indicates
// the children were rendered from different palettes.
var ErrPaletteMismatch = errors.New("render: conflicting group colors across composed charts")

// Direction selects the layout axis of a composite.
type Direction int

const (
	StackVertical Direction = iota
	SideBySide
)

const (
	defaultCompositeWidth  = 1280
	defaultCompositeHeight = 540
	titleBandHeight        = 26
	subtitleBandHeight     = 16
	legendBandHeight       = 24
	captionBandHeight      = 22
)

// CompositeConfig lays out already-rendered charts on a shared canvas.
type CompositeConfig struct {
	Children []*Chart
	Direction Direction
	// Weights allocates space along the layout axis proportionally. Nil
	// means equal weights; otherwise one positive weight per child.
	Weights []float64
	// SharedLegend draws one legend strip from the union of the children's
	// color maps. Children intended for a shared legend should be rendered
	// with their own legends disabled.
	SharedLegend bool
	Labels       Labels
	Width        int
	Height       int
}

// Composite is a rendered multi-chart artifact. Slots records the pixel
// rectangle each child was allocated, in child order.
type Composite struct {
	Image     image.Image
	Labels    Labels
	Direction Direction
	Weights   []float64
	ColorMap  map[string]drawing.Color
	Slots     []image.Rectangle
}

// Compose renders the children onto one canvas.
func Compose(cfg CompositeConfig) (*Composite, error) {
	if len(cfg.Children) == 0 {
		return nil, fmt.Errorf("%w: composite needs at least one child", ErrBadConfig)
	}
	for i, c := range cfg.Children {
		if c == nil || c.Image == nil {
			return nil, fmt.Errorf("%w: child %d is not rendered", ErrBadConfig, i)
		}
	}
	weights := cfg.Weights
	if weights == nil {
		weights = make([]float64, len(cfg.Children))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(cfg.Children) {
		return nil, fmt.Errorf("%w: %d weights for %d children", ErrBadConfig, len(weights), len(cfg.Children))
	}
	var weightSum float64
	for i, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("%w: weight %d must be positive, got %g", ErrBadConfig, i, w)
		}
		weightSum += w
	}

	colorMap, err := unionColorMaps(cfg.Children)
	if err != nil {
		return nil, err
	}

	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = defaultCompositeWidth
	}
	if height <= 0 {
		height = defaultCompositeHeight
	}

	top := 0
	if cfg.Labels.Title != "" {
		top += titleBandHeight
	}
	if cfg.Labels.Subtitle != "" {
		top += subtitleBandHeight
	}
	bottom := 0
	if cfg.SharedLegend && len(colorMap) > 0 {
		bottom += legendBandHeight
	}
	if cfg.Labels.Caption != "" {
		bottom += captionBandHeight
	}
	content := image.Rect(0, top, width, height-bottom)
	if content.Dx() < 10 || content.Dy() < 10 {
		return nil, fmt.Errorf("%w: composite %dx%d leaves no room for charts", ErrBadConfig, width, height)
	}

	slots := allocateSlots(content, cfg.Direction, weights, weightSum)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	for i, c := range cfg.Children {
		xdraw.ApproxBiLinear.Scale(dst, slots[i], c.Image, c.Image.Bounds(), xdraw.Over, nil)
	}

	y := 0
	if cfg.Labels.Title != "" {
		y += titleBandHeight
		drawText(dst, 14, y-9, cfg.Labels.Title, textBlack)
	}
	if cfg.Labels.Subtitle != "" {
		y += subtitleBandHeight
		drawText(dst, 14, y-4, cfg.Labels.Subtitle, textGray)
	}
	bandY := height
	if cfg.Labels.Caption != "" {
		drawText(dst, 14, bandY-8, cfg.Labels.Caption, textGray)
		bandY -= captionBandHeight
	}
	if cfg.SharedLegend && len(colorMap) > 0 {
		drawLegendStrip(dst, bandY-legendBandHeight, colorMap)
	}

	return &Composite{
		Image:     dst,
		Labels:    cfg.Labels,
		Direction: cfg.Direction,
		Weights:   append([]float64(nil), weights...),
		ColorMap:  colorMap,
		Slots:     slots,
	}, nil
}

// allocateSlots splits the content rect along the layout axis proportionally
// to the weights. The last slot absorbs integer rounding remainder so the
// slots always tile the content exactly.
func allocateSlots(content image.Rectangle, dir Direction, weights []float64, sum float64) []image.Rectangle {
	n := len(weights)
	slots := make([]image.Rectangle, n)
	if dir == SideBySide {
		x := content.Min.X
		for i, w := range weights {
			wpx := int(float64(content.Dx()) * w / sum)
			if i == n-1 {
				wpx = content.Max.X - x
			}
			slots[i] = image.Rect(x, content.Min.Y, x+wpx, content.Max.Y)
			x += wpx
		}
		return slots
	}
	y := content.Min.Y
	for i, w := range weights {
		hpx := int(float64(content.Dy()) * w / sum)
		if i == n-1 {
			hpx = content.Max.Y - y
		}
		slots[i] = image.Rect(content.Min.X, y, content.Max.X, y+hpx)
		y += hpx
	}
	return slots
}

// unionColorMaps merges the children's group colors, rejecting conflicting
// assignments for the same label.
func unionColorMaps(children []*Chart) (map[string]drawing.Color, error) {
	out := map[string]drawing.Color{}
	for _, c := range children {
		for label, col := range c.ColorMap {
			if prev, ok := out[label]; ok && prev != col {
				return nil, fmt.Errorf("%w: group %q", ErrPaletteMismatch, label)
			}
			out[label] = col
		}
	}
	return out, nil
}

// drawLegendStrip renders one swatch-plus-label entry per group, sorted, on
// a single row starting at y.
func drawLegendStrip(dst *image.RGBA, y int, colorMap map[string]drawing.Color) {
	labels := make([]string, 0, len(colorMap))
	for l := range colorMap {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	x := 14
	for _, l := range labels {
		c := colorMap[l]
		swatch := image.Rect(x, y+7, x+10, y+17)
		draw.Draw(dst, swatch, image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}), image.Point{}, draw.Src)
		drawText(dst, x+14, y+16, l, textBlack)
		x += 14 + textWidth(l) + 18
	}
}
