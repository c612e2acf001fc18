package render

import (
	"errors"
	"math"
	"testing"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

func renderChild(t *testing.T, colorByGroup bool) *Chart {
	t.Helper()
	ch, err := Scatter(ScatterConfig{
		Groups:       testGroups(),
		ColorByGroup: colorByGroup,
		Range:        testRange(),
		Width:        320,
		Height:       240,
	})
	if err != nil {
		t.Fatalf("render child: %v", err)
	}
	return ch
}

func TestCompose_WeightsAllocateProportionally(t *testing.T) {
	a := renderChild(t, true)
	b := renderChild(t, true)
	comp, err := Compose(CompositeConfig{
		Children:  []*Chart{a, b},
		Direction: StackVertical,
		Weights:   []float64{1, 1.2},
		Labels:    Labels{Title: "stacked"},
		Width:     640,
		Height:    800,
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(comp.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(comp.Slots))
	}
	h0 := float64(comp.Slots[0].Dy())
	h1 := float64(comp.Slots[1].Dy())
	if h0 <= 0 || h1 <= 0 {
		t.Fatalf("empty slot: %v", comp.Slots)
	}
	// Slots tile the content area exactly.
	if comp.Slots[0].Max.Y != comp.Slots[1].Min.Y {
		t.Fatalf("slots do not tile: %v", comp.Slots)
	}
	ratio := h1 / h0
	if math.Abs(ratio-1.2) > 0.02 {
		t.Fatalf("slot ratio %.4f, want ~1.2", ratio)
	}
}

func TestCompose_SideBySideEqualWeights(t *testing.T) {
	a := renderChild(t, true)
	b := renderChild(t, true)
	comp, err := Compose(CompositeConfig{
		Children:  []*Chart{a, b},
		Direction: SideBySide,
		Width:     1000,
		Height:    400,
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if comp.Slots[0].Dx() != comp.Slots[1].Dx() {
		t.Fatalf("equal weights should split evenly: %v", comp.Slots)
	}
}

func TestCompose_SharedLegendUnionsChildColors(t *testing.T) {
	grouped := renderChild(t, true)
	pooled := renderChild(t, false) // no color map of its own
	comp, err := Compose(CompositeConfig{
		Children:     []*Chart{pooled, grouped},
		Direction:    SideBySide,
		SharedLegend: true,
		Labels:       Labels{Title: "t", Caption: "c"},
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(comp.ColorMap) != 3 {
		t.Fatalf("union color map has %d entries, want 3", len(comp.ColorMap))
	}
	for label, col := range grouped.ColorMap {
		if comp.ColorMap[label] != col {
			t.Fatalf("composite color for %s differs from child", label)
		}
	}
}

func TestCompose_PaletteMismatchRejected(t *testing.T) {
	a := renderChild(t, true)
	b := renderChild(t, true)
	// Forge a conflicting assignment for one label.
	b.ColorMap["Adelie"] = drawing.Color{R: 1, G: 2, B: 3, A: 255}
	_, err := Compose(CompositeConfig{Children: []*Chart{a, b}})
	if !errors.Is(err, ErrPaletteMismatch) {
		t.Fatalf("expected ErrPaletteMismatch, got %v", err)
	}
}

func TestCompose_BadWeightsRejected(t *testing.T) {
	a := renderChild(t, true)
	b := renderChild(t, true)
	if _, err := Compose(CompositeConfig{Children: []*Chart{a, b}, Weights: []float64{1}}); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("weight count mismatch: expected ErrBadConfig, got %v", err)
	}
	if _, err := Compose(CompositeConfig{Children: []*Chart{a, b}, Weights: []float64{1, 0}}); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("non-positive weight: expected ErrBadConfig, got %v", err)
	}
}

func TestCompose_MetadataRoundTrip(t *testing.T) {
	a := renderChild(t, true)
	labels := Labels{Title: "outer", Subtitle: "sub", Caption: "cap"}
	weights := []float64{2}
	comp, err := Compose(CompositeConfig{
		Children: []*Chart{a}, Weights: weights, Labels: labels,
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if comp.Labels != labels {
		t.Fatalf("labels mutated: %+v", comp.Labels)
	}
	if len(comp.Weights) != 1 || comp.Weights[0] != 2 {
		t.Fatalf("weights mutated: %v", comp.Weights)
	}
	// Returned weights are a copy, not an alias.
	weights[0] = 99
	if comp.Weights[0] != 2 {
		t.Fatalf("weights aliased caller slice")
	}
}
